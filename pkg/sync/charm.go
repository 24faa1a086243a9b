package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/charm/kv"
	badger "github.com/dgraph-io/badger/v3"

	"tableflip.dev/mise/pkg/recipe"
)

const (
	// dbName scopes our keys inside the identity's charm cloud account.
	dbName = "mise"
	// recordKey holds the recipe document.
	recordKey = "recipes.v1"
	// stampKey holds the Unix-millisecond time of the last write.
	stampKey = "recipes.v1.updatedAt"
)

// CharmRemote stores the recipe record in Charm Cloud under the keys of
// the linked account, so every machine with the same charm identity sees
// the same collection.
type CharmRemote struct {
	db *kv.KV
}

// OpenCharm links to the local charm identity and opens its key-value
// store.
func OpenCharm() (*CharmRemote, error) {
	db, err := kv.OpenWithDefaults(dbName)
	if err != nil {
		return nil, fmt.Errorf("sync: open charm kv: %w", err)
	}
	return &CharmRemote{db: db}, nil
}

// Identity returns the charm ID of the linked account.
func (c *CharmRemote) Identity() (string, error) {
	id, err := c.db.Client().ID()
	if err != nil {
		return "", fmt.Errorf("sync: charm identity: %w", err)
	}
	return id, nil
}

func (c *CharmRemote) Fetch(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := c.db.Sync(); err != nil {
		return nil, false, fmt.Errorf("sync: pull from charm cloud: %w", err)
	}
	raw, err := c.db.Get([]byte(recordKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sync: read remote record: %w", err)
	}
	return raw, true, nil
}

func (c *CharmRemote) Merge(ctx context.Context, data recipe.AppData) error {
	return c.write(ctx, data)
}

func (c *CharmRemote) Replace(ctx context.Context, data recipe.AppData) error {
	return c.write(ctx, data)
}

// write marshals, sanitizes, and stores the record plus its timestamp.
// The kv store is whole-key last-write-wins, so merge and replace only
// differ in when the syncer chooses to call them.
func (c *CharmRemote) write(ctx context.Context, data recipe.AppData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := marshalSanitized(data)
	if err != nil {
		return err
	}
	if err := c.db.Set([]byte(recordKey), raw); err != nil {
		return fmt.Errorf("sync: write remote record: %w", err)
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := c.db.Set([]byte(stampKey), []byte(stamp)); err != nil {
		return fmt.Errorf("sync: write remote stamp: %w", err)
	}
	return nil
}

// Close releases the kv handle.
func (c *CharmRemote) Close() error {
	return c.db.Close()
}

func marshalSanitized(data recipe.AppData) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("sync: encode record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("sync: reencode record: %w", err)
	}
	raw, err = json.Marshal(Sanitize(doc))
	if err != nil {
		return nil, fmt.Errorf("sync: encode record: %w", err)
	}
	return raw, nil
}
