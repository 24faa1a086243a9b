// Package store persists the recipe data set as a single versioned record
// in a diskv-backed directory.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/mise/pkg/recipe"
)

// RecordKey is the fixed, versioned key the whole data set lives under.
const RecordKey = "recipes.v1"

// Persistence is the persistence contract for the recipe data set. Load is
// total: any read or parse failure yields seed data. Save is best-effort;
// callers treat failures as non-fatal.
type Persistence interface {
	Load(ctx context.Context) recipe.AppData
	Save(ctx context.Context, data recipe.AppData) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
// Passing nil loads the default config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// flatTransform keeps the record file directly under the base path.
func flatTransform(string) []string { return []string{} }

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(ctx context.Context) recipe.AppData {
	raw, err := p.d.Read(RecordKey)
	if err != nil {
		// Absent or unreadable record: brand-new store or corrupt disk,
		// either way the user gets the seed set.
		return recipe.Seed()
	}
	return recipe.NormalizeJSON(raw)
}

func (p *persistence) Save(ctx context.Context, data recipe.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.d.Write(RecordKey, raw)
}
