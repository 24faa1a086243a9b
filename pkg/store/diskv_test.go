package store

import (
	"context"
	"reflect"
	"testing"

	"tableflip.dev/mise/pkg/recipe"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string  { return c.path }
func (c *testConfig) ResetRemote() bool { return false }

func newTestPersistence(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestLoadMissingRecordYieldsSeed(t *testing.T) {
	p := newTestPersistence(t)
	got := p.Load(context.Background())
	want := recipe.Seed()
	if len(got.Categories) != len(want.Categories) {
		t.Fatalf("expected seed categories, got %d", len(got.Categories))
	}
	if len(got.Recipes) == 0 {
		t.Fatalf("expected seed recipes, got none")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	data := recipe.AppData{
		Categories: []recipe.Category{{ID: "c1", Name: "お肉"}},
		Recipes: []recipe.Recipe{{
			ID:         "r1",
			Title:      "唐揚げ",
			CategoryID: "c1",
			Ingredients: []recipe.IngredientLine{
				{ID: "i1", Name: "鶏もも肉", AmountText: "300g"},
			},
			Steps:     []recipe.Step{{ID: "s1", Title: "揚げる"}},
			LastRunAt: 1700000000000,
		}},
	}
	if err := p.Save(ctx, data); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := p.Load(ctx)
	if !reflect.DeepEqual(got, data) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", data, got)
	}
}

func TestLoadCorruptRecordYieldsSeed(t *testing.T) {
	cfg := &testConfig{path: t.TempDir()}
	p, err := Load(cfg)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	inner := p.(*persistence)
	if err := inner.d.Write(RecordKey, []byte("{not json")); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	got := p.Load(context.Background())
	if len(got.Recipes) == 0 || len(got.Categories) == 0 {
		t.Fatalf("corrupt record should fall back to seed, got %+v", got)
	}
}
