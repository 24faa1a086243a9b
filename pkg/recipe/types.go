// Package recipe defines the core data model for the recipe manager.
// All other packages depend on recipe; recipe depends on nothing but ids.
package recipe

import "sort"

// FavoritesName identifies the reserved pseudo-category. Membership is
// computed from the IsFavorite flag on recipes, never from CategoryID, and
// the category itself can neither be renamed nor deleted.
const FavoritesName = "お気に入り"

// UntitledRecipe is the placeholder title applied when a stored recipe has
// no usable title.
const UntitledRecipe = "無題レシピ"

// NewRecipeTitle is the starting title of a freshly created draft.
const NewRecipeTitle = "新しいレシピ"

// UncategorizedName names the synthesized fallback category used when no
// category survives normalization.
const UncategorizedName = "未分類"

// Category groups recipes. Name uniqueness is by convention, not enforced.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsFavorites reports whether this is the reserved pseudo-category.
func (c Category) IsFavorites() bool {
	return c.Name == FavoritesName
}

// Step is a single instruction within a recipe. Steps are embedded in
// exactly one recipe; there is no sharing.
type Step struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
}

// IngredientLine is one line of the ingredient list.
type IngredientLine struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AmountText string `json:"amountText,omitempty"`
}

// Recipe is the unit of editing and running. Invariant: Steps is never
// empty; an emptied recipe keeps one blank placeholder step.
type Recipe struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	CategoryID  string           `json:"categoryId"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	SourceURL   string           `json:"sourceUrl,omitempty"`
	Ingredients []IngredientLine `json:"ingredients"`
	Steps       []Step           `json:"steps"`
	IsFavorite  bool             `json:"isFavorite,omitempty"`
	// LastRunAt is epoch milliseconds of the most recent run, 0 if never.
	LastRunAt int64 `json:"lastRunAt,omitempty"`
}

// AppData is the unit of persistence and sync; everything else is derived.
type AppData struct {
	Categories []Category `json:"categories"`
	Recipes    []Recipe   `json:"recipes"`
}

// BlankStep returns a placeholder step with a fresh id.
func BlankStep() Step {
	return Step{ID: NewID()}
}

// BlankIngredient returns a placeholder ingredient line with a fresh id.
func BlankIngredient() IngredientLine {
	return IngredientLine{ID: NewID()}
}

// Clone deep-copies the recipe, including element-level copies of steps and
// ingredients, so a draft can be edited without aliasing the collection.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]IngredientLine(nil), r.Ingredients...)
	out.Steps = append([]Step(nil), r.Steps...)
	return out
}

// Clone deep-copies the data set.
func (d AppData) Clone() AppData {
	out := AppData{
		Categories: append([]Category(nil), d.Categories...),
		Recipes:    make([]Recipe, len(d.Recipes)),
	}
	for i, r := range d.Recipes {
		out.Recipes[i] = r.Clone()
	}
	return out
}

// CategoryByID finds a category in a slice.
func CategoryByID(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// RecipeByID finds a recipe in a slice.
func RecipeByID(recipes []Recipe, id string) (Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// CategoryByID finds a category in the set.
func (d AppData) CategoryByID(id string) (Category, bool) {
	return CategoryByID(d.Categories, id)
}

// RecipeByID finds a recipe in the set.
func (d AppData) RecipeByID(id string) (Recipe, bool) {
	return RecipeByID(d.Recipes, id)
}

// ByRecency orders recipes for list views: most recently run first,
// never-run recipes keep their stored order at the end. The input is not
// mutated.
func ByRecency(recipes []Recipe) []Recipe {
	out := append([]Recipe(nil), recipes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastRunAt > out[j].LastRunAt
	})
	return out
}

// FallbackCategoryID returns the category recipes are reassigned to when
// their own category disappears: the first non-reserved category, else the
// first category, else a fresh id.
func FallbackCategoryID(categories []Category) string {
	for _, c := range categories {
		if !c.IsFavorites() {
			return c.ID
		}
	}
	if len(categories) > 0 {
		return categories[0].ID
	}
	return NewID()
}
