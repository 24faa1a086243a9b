// Package app holds the application state machine: every view transition
// and collection mutation flows through Reduce, and a Machine serializes
// dispatches and publishes state changes to observers (persistence,
// sync, presentation).
package app

import "tableflip.dev/mise/pkg/recipe"

// View names the screen the user is on.
type View string

const (
	// ViewCategories is the category catalog.
	ViewCategories View = "categories"
	// ViewList is the flat list of all recipes.
	ViewList View = "list"
	// ViewCategoryList lists the recipes of the selected category.
	ViewCategoryList View = "category_list"
	// ViewEdit is the draft editor.
	ViewEdit View = "edit"
	// ViewRun is the guided runner.
	ViewRun View = "run"
)

// State is the whole in-memory model. It is treated as immutable: Reduce
// returns a new value and never mutates shared slices in place.
type State struct {
	View       View
	Categories []recipe.Category
	Recipes    []recipe.Recipe

	SelectedCategoryID string
	SelectedRecipeID   string

	// Draft is the scratch copy under edit, nil outside ViewEdit.
	Draft *recipe.Recipe

	// RunIndex is the run cursor: 0 is the ingredients overview, 1..N the
	// steps.
	RunIndex int

	// LastList remembers which list view the user came from so save,
	// delete, and back return there.
	LastList View
}

// NewState builds the initial state from a loaded data set.
func NewState(data recipe.AppData) State {
	return State{
		View:       ViewCategories,
		Categories: data.Categories,
		Recipes:    data.Recipes,
		LastList:   ViewCategories,
	}
}

// Data snapshots the durable slice of the state.
func (s State) Data() recipe.AppData {
	return recipe.AppData{Categories: s.Categories, Recipes: s.Recipes}
}

// SelectedRecipe resolves the current selection, nil if none.
func (s State) SelectedRecipe() *recipe.Recipe {
	for i := range s.Recipes {
		if s.Recipes[i].ID == s.SelectedRecipeID {
			r := s.Recipes[i]
			return &r
		}
	}
	return nil
}

// SelectedCategory resolves the current category selection.
func (s State) SelectedCategory() (recipe.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == s.SelectedCategoryID {
			return c, true
		}
	}
	return recipe.Category{}, false
}

// RecipesIn returns the recipes belonging to a category in list order
// (most recently run first), honoring the reserved Favorites
// pseudo-category whose membership is the IsFavorite flag rather than a
// CategoryID reference.
func (s State) RecipesIn(categoryID string) []recipe.Recipe {
	cat, ok := s.findCategory(categoryID)
	favorites := ok && cat.IsFavorites()
	out := make([]recipe.Recipe, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		if favorites {
			if r.IsFavorite {
				out = append(out, r)
			}
			continue
		}
		if r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return recipe.ByRecency(out)
}

// AllRecipes returns the whole collection in list order.
func (s State) AllRecipes() []recipe.Recipe {
	return recipe.ByRecency(s.Recipes)
}

func (s State) findCategory(id string) (recipe.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return recipe.Category{}, false
}

// firstRecipeIn picks the selection after opening a category: the first
// member recipe, or "" when the category is empty.
func (s State) firstRecipeIn(categoryID string) string {
	members := s.RecipesIn(categoryID)
	if len(members) == 0 {
		return ""
	}
	return members[0].ID
}
