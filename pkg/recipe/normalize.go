package recipe

import (
	"encoding/json"
	"strings"
)

// NormalizeJSON decodes raw bytes and normalizes the result. Any parse
// failure degrades to seed data; this function never fails.
func NormalizeJSON(data []byte) AppData {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Seed()
	}
	return Normalize(raw)
}

// Normalize coerces arbitrary decoded JSON into a well-formed AppData. It
// is total: malformed input degrades to best-effort recovery or the seed
// set. It is the only defense against corrupt persisted or remote data, so
// it guarantees the model invariants on its own: steps are never empty,
// ingredient lists are never empty, and every CategoryID references one of
// the returned categories.
func Normalize(raw any) AppData {
	switch v := raw.(type) {
	case []any:
		// Legacy shape: a bare list of recipes with no category catalog.
		categories := []Category{{ID: NewID(), Name: UncategorizedName}}
		recipes := normalizeRecipes(v, categories)
		if len(recipes) == 0 {
			recipes = SeedRecipes(categories)
		}
		return AppData{Categories: categories, Recipes: recipes}
	case map[string]any:
		categories := normalizeCategories(v["categories"])
		if len(categories) == 0 {
			categories = []Category{{ID: NewID(), Name: UncategorizedName}}
		}
		recipes := normalizeRecipes(v["recipes"], categories)
		if len(recipes) == 0 {
			// New or reset users always see example content.
			recipes = SeedRecipes(categories)
		}
		return AppData{Categories: categories, Recipes: recipes}
	default:
		return Seed()
	}
}

func normalizeCategories(raw any) []Category {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Category, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := Category{
			ID:   stringOr(obj["id"], ""),
			Name: stringOr(obj["name"], ""),
		}
		if c.ID == "" {
			c.ID = NewID()
		}
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func normalizeRecipes(raw any, categories []Category) []Recipe {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	fallback := ""
	if len(categories) > 0 {
		fallback = categories[0].ID
	} else {
		fallback = NewID()
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	out := make([]Recipe, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		steps := normalizeSteps(obj["steps"])
		if len(steps) == 0 {
			steps = []Step{BlankStep()}
		}
		ingredients := normalizeIngredients(obj["ingredients"])
		if len(ingredients) == 0 {
			ingredients = []IngredientLine{BlankIngredient()}
		}
		categoryID := stringOr(obj["categoryId"], fallback)
		if !known[categoryID] {
			categoryID = fallback
		}
		// An empty title is a string the user stored; only a missing or
		// non-string title gets the placeholder.
		title, isString := obj["title"].(string)
		if !isString {
			title = UntitledRecipe
		}
		r := Recipe{
			ID:          stringOr(obj["id"], ""),
			Title:       title,
			CategoryID:  categoryID,
			ImageURL:    stringOr(obj["imageUrl"], ""),
			SourceURL:   stringOr(obj["sourceUrl"], ""),
			Ingredients: ingredients,
			Steps:       steps,
			IsFavorite:  boolOr(obj["isFavorite"], false),
			LastRunAt:   int64Or(obj["lastRunAt"]),
		}
		if r.ID == "" {
			r.ID = NewID()
		}
		out = append(out, r)
	}
	return out
}

// normalizeSteps drops steps whose title and note are both empty. Callers
// restore the one-blank-placeholder invariant when the result is empty.
func normalizeSteps(raw any) []Step {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Step, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]any)
		s := Step{
			ID:    stringOr(obj["id"], ""),
			Title: stringOr(obj["title"], ""),
			Note:  stringOr(obj["note"], ""),
		}
		if s.ID == "" {
			s.ID = NewID()
		}
		if s.Title == "" && s.Note == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func normalizeIngredients(raw any) []IngredientLine {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]IngredientLine, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]any)
		l := IngredientLine{
			ID:         stringOr(obj["id"], ""),
			Name:       stringOr(obj["name"], ""),
			AmountText: stringOr(obj["amountText"], ""),
		}
		if l.ID == "" {
			l.ID = NewID()
		}
		if strings.TrimSpace(l.Name) == "" && strings.TrimSpace(l.AmountText) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolOr(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

// int64Or coerces the JSON number forms a timestamp may arrive in.
func int64Or(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		return 0
	default:
		return 0
	}
}
