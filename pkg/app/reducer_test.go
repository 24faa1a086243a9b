package app

import (
	"testing"

	"tableflip.dev/mise/pkg/recipe"
)

func fixture() State {
	cats := []recipe.Category{
		{ID: "cat-favorites", Name: recipe.FavoritesName},
		{ID: "cat-meat", Name: "お肉"},
		{ID: "cat-fish", Name: "お魚"},
	}
	recipes := []recipe.Recipe{
		{
			ID:         "r-karaage",
			Title:      "唐揚げ",
			CategoryID: "cat-meat",
			Ingredients: []recipe.IngredientLine{
				{ID: "i-1", Name: "鶏もも肉", AmountText: "300g"},
			},
			Steps: []recipe.Step{
				{ID: "s-1", Title: "下味をつける"},
				{ID: "s-2", Title: "揚げる"},
				{ID: "s-3", Title: "油を切る"},
			},
		},
		{
			ID:          "r-saba",
			Title:       "鯖の味噌煮",
			CategoryID:  "cat-fish",
			Ingredients: []recipe.IngredientLine{{ID: "i-2", Name: "鯖", AmountText: "2切れ"}},
			Steps:       []recipe.Step{{ID: "s-4", Title: "煮る"}},
		},
	}
	return NewState(recipe.AppData{Categories: cats, Recipes: recipes})
}

func TestCreateInsideCategoryKeepsCategory(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenCategory{ID: "cat-meat"})
	if s.View != ViewCategoryList {
		t.Fatalf("view = %q, want %q", s.View, ViewCategoryList)
	}
	if s.SelectedRecipeID != "r-karaage" {
		t.Fatalf("selected = %q, want first recipe of the category", s.SelectedRecipeID)
	}

	s = Reduce(s, CreateRecipe{})
	if s.View != ViewEdit || s.Draft == nil {
		t.Fatalf("expected an open draft editor, got view %q", s.View)
	}
	if s.Draft.CategoryID != "cat-meat" {
		t.Fatalf("draft category = %q, want cat-meat", s.Draft.CategoryID)
	}

	s = Reduce(s, SetDraftTitle{Title: "生姜焼き"})
	s = Reduce(s, SaveDraft{})
	if s.View != ViewCategoryList {
		t.Fatalf("save should return to the category list, got %q", s.View)
	}
	if s.Draft != nil {
		t.Fatal("draft should be closed after save")
	}
	saved, ok := recipe.RecipeByID(s.Recipes, s.SelectedRecipeID)
	if !ok || saved.Title != "生姜焼き" || saved.CategoryID != "cat-meat" {
		t.Fatalf("saved recipe = %+v", saved)
	}
}

func TestCreateFromFavoritesFallsBack(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenCategory{ID: "cat-favorites"})
	s = Reduce(s, CreateRecipe{})
	if s.Draft.CategoryID == "cat-favorites" {
		t.Fatal("new draft must never live in the favorites pseudo-category")
	}
	if s.Draft.CategoryID != "cat-meat" {
		t.Fatalf("draft category = %q, want the first real category", s.Draft.CategoryID)
	}
}

func TestSaveDefaultsTitleAndDropsEmptyLines(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenAllRecipes{})
	s = Reduce(s, CreateRecipe{})
	if s.Draft.Title != recipe.NewRecipeTitle {
		t.Fatalf("fresh draft title = %q, want %q", s.Draft.Title, recipe.NewRecipeTitle)
	}
	ingID := s.Draft.Ingredients[0].ID
	s = Reduce(s, SetDraftTitle{Title: "   "})
	s = Reduce(s, UpdateIngredientName{ID: ingID, Name: "豆腐"})
	s = Reduce(s, AddIngredient{})
	s = Reduce(s, SaveDraft{})

	saved, ok := recipe.RecipeByID(s.Recipes, s.SelectedRecipeID)
	if !ok {
		t.Fatal("saved recipe not found")
	}
	if saved.Title != recipe.UntitledRecipe {
		t.Fatalf("title = %q, want %q", saved.Title, recipe.UntitledRecipe)
	}
	if len(saved.Ingredients) != 1 || saved.Ingredients[0].Name != "豆腐" {
		t.Fatalf("ingredients = %+v, want the single filled line", saved.Ingredients)
	}
	if len(saved.Steps) != 1 {
		t.Fatalf("steps = %+v, want one placeholder", saved.Steps)
	}
}

func TestSaveSelectsRecipeAndCategory(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenCategory{ID: "cat-meat"})
	s = Reduce(s, EditRecipe{ID: "r-karaage"})
	s = Reduce(s, SetDraftCategory{ID: "cat-fish"})
	s = Reduce(s, SaveDraft{})
	if s.SelectedRecipeID != "r-karaage" {
		t.Fatalf("selected recipe = %q, want the saved one", s.SelectedRecipeID)
	}
	if s.SelectedCategoryID != "cat-fish" {
		t.Fatalf("selected category = %q, want the saved recipe's category cat-fish", s.SelectedCategoryID)
	}
}

func TestDeleteSoleLinesLeavesBlanks(t *testing.T) {
	s := fixture()
	s = Reduce(s, EditRecipe{ID: "r-saba"})
	s = Reduce(s, DeleteIngredient{ID: "i-2"})
	if n := len(s.Draft.Ingredients); n != 1 {
		t.Fatalf("ingredients = %d, want one blank", n)
	}
	if s.Draft.Ingredients[0].Name != "" || s.Draft.Ingredients[0].ID == "i-2" {
		t.Fatalf("expected a fresh blank line, got %+v", s.Draft.Ingredients[0])
	}
	s = Reduce(s, DeleteStep{ID: "s-4"})
	if n := len(s.Draft.Steps); n != 1 {
		t.Fatalf("steps = %d, want one blank", n)
	}
	if s.Draft.Steps[0].Title != "" {
		t.Fatalf("expected a blank step, got %+v", s.Draft.Steps[0])
	}
}

func TestImportReplacesDraftLines(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenAllRecipes{})
	s = Reduce(s, CreateRecipe{})
	s = Reduce(s, ImportDraft{
		Ingredients: []recipe.IngredientLine{{ID: "i-new", Name: "にんじん", AmountText: "1本"}},
		Steps:       []recipe.Step{{ID: "s-new", Title: "切る"}, {ID: "s-new2", Title: "煮る"}},
	})
	if n := len(s.Draft.Ingredients); n != 1 || s.Draft.Ingredients[0].Name != "にんじん" {
		t.Fatalf("ingredients = %+v, want the imported line", s.Draft.Ingredients)
	}
	if n := len(s.Draft.Steps); n != 2 {
		t.Fatalf("steps = %d, want the imported steps", n)
	}

	// An import with no steps keeps the existing ones.
	s = Reduce(s, ImportDraft{Ingredients: []recipe.IngredientLine{{ID: "i-x", Name: "玉ねぎ"}}})
	if n := len(s.Draft.Steps); n != 2 {
		t.Fatalf("steps = %d, want untouched by an ingredient-only import", n)
	}
}

func TestRunCursorBounds(t *testing.T) {
	s := fixture()
	s = Reduce(s, Run{ID: "r-karaage", At: 1700000000000})
	if s.View != ViewRun || s.RunIndex != 0 {
		t.Fatalf("view=%q index=%d, want run view at the overview", s.View, s.RunIndex)
	}
	r, _ := recipe.RecipeByID(s.Recipes, "r-karaage")
	if r.LastRunAt != 1700000000000 {
		t.Fatalf("lastRunAt = %d, want the run stamp", r.LastRunAt)
	}

	for i := 0; i < 5; i++ {
		s = Reduce(s, RunNext{})
	}
	if s.RunIndex != 3 {
		t.Fatalf("index = %d, want cap at step count 3", s.RunIndex)
	}
	for i := 0; i < 10; i++ {
		s = Reduce(s, RunPrev{})
	}
	if s.RunIndex != 0 {
		t.Fatalf("index = %d, want floor at 0", s.RunIndex)
	}
}

func TestListOrderFollowsLastRun(t *testing.T) {
	s := fixture()
	s = Reduce(s, Run{ID: "r-saba", At: 1700000000000})
	all := s.AllRecipes()
	if len(all) != 2 || all[0].ID != "r-saba" {
		t.Fatalf("list head = %q, want the just-run recipe first", all[0].ID)
	}
	if all[1].ID != "r-karaage" {
		t.Fatalf("never-run recipes must keep their stored order, got %q", all[1].ID)
	}
	if s.Recipes[0].ID != "r-karaage" {
		t.Fatal("stored order must not change, only the list projection")
	}

	s = Reduce(s, OpenAllRecipes{})
	if s.SelectedRecipeID != "r-saba" {
		t.Fatalf("selection = %q, want the most recently run recipe", s.SelectedRecipeID)
	}
}

func TestToggleFavoriteMembership(t *testing.T) {
	s := fixture()
	s = Reduce(s, ToggleFavorite{ID: "r-saba"})
	favs := s.RecipesIn("cat-favorites")
	if len(favs) != 1 || favs[0].ID != "r-saba" {
		t.Fatalf("favorites = %+v, want r-saba only", favs)
	}
	s = Reduce(s, ToggleFavorite{ID: "r-saba"})
	if favs := s.RecipesIn("cat-favorites"); len(favs) != 0 {
		t.Fatalf("favorites = %+v, want empty after second toggle", favs)
	}
}

func TestFavoritesCategoryIsProtected(t *testing.T) {
	s := fixture()
	before := len(s.Categories)
	s = Reduce(s, RenameCategory{ID: "cat-favorites", Name: "別名"})
	if cat, _ := s.findCategory("cat-favorites"); cat.Name != recipe.FavoritesName {
		t.Fatalf("favorites renamed to %q", cat.Name)
	}
	s = Reduce(s, DeleteCategory{ID: "cat-favorites"})
	if len(s.Categories) != before {
		t.Fatal("favorites category must not be deletable")
	}
}

func TestDeleteCategoryReassignsRecipes(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenCategory{ID: "cat-fish"})
	s = Reduce(s, DeleteCategory{ID: "cat-fish"})
	if s.View != ViewCategories {
		t.Fatalf("view = %q, want categories after deleting the open category", s.View)
	}
	r, _ := recipe.RecipeByID(s.Recipes, "r-saba")
	if r.CategoryID != "cat-meat" {
		t.Fatalf("orphaned recipe moved to %q, want cat-meat", r.CategoryID)
	}
}

func TestDeleteRecipeWhileRunning(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenAllRecipes{})
	s = Reduce(s, Run{ID: "r-saba", At: 1})
	s = Reduce(s, DeleteRecipe{ID: "r-saba"})
	if s.View != ViewList {
		t.Fatalf("view = %q, want back to the list", s.View)
	}
	if _, ok := recipe.RecipeByID(s.Recipes, "r-saba"); ok {
		t.Fatal("recipe still present after delete")
	}
	if s.SelectedRecipeID != "r-karaage" {
		t.Fatalf("selection = %q, want the remaining recipe", s.SelectedRecipeID)
	}
}

func TestLoadDataRepairsSelection(t *testing.T) {
	s := fixture()
	s = Reduce(s, OpenCategory{ID: "cat-fish"})
	s = Reduce(s, LoadData{Data: recipe.AppData{
		Categories: []recipe.Category{{ID: "cat-new", Name: "新着"}},
		Recipes:    []recipe.Recipe{},
	}})
	if s.View != ViewCategories {
		t.Fatalf("view = %q, want categories after the open category vanished", s.View)
	}
	if s.SelectedCategoryID != "" || s.SelectedRecipeID != "" {
		t.Fatalf("stale selection survived: cat=%q recipe=%q", s.SelectedCategoryID, s.SelectedRecipeID)
	}
}

func TestMachineObservesDataChanges(t *testing.T) {
	m := NewMachine(fixture())
	var changes []bool
	m.Subscribe(func(_ State, dataChanged bool) {
		changes = append(changes, dataChanged)
	})

	m.Dispatch(OpenAllRecipes{})
	m.Dispatch(ToggleFavorite{ID: "r-saba"})

	if len(changes) != 2 || changes[0] || !changes[1] {
		t.Fatalf("dataChanged sequence = %v, want [false true]", changes)
	}
}

func TestMachineStampsRunTime(t *testing.T) {
	m := NewMachine(fixture())
	s := m.Dispatch(Run{ID: "r-karaage"})
	r, _ := recipe.RecipeByID(s.Recipes, "r-karaage")
	if r.LastRunAt == 0 {
		t.Fatal("dispatch should stamp the run start time")
	}
}
