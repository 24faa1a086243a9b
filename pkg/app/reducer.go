package app

import (
	"strings"

	"tableflip.dev/mise/pkg/recipe"
)

// Reduce applies one action to a state and returns the next state. It is
// total: an action whose preconditions do not hold returns the state
// unchanged, it never panics and never errors.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case OpenCategories:
		s.View = ViewCategories
		s.LastList = ViewCategories
		s.Draft = nil
		return s

	case OpenAllRecipes:
		s.View = ViewList
		s.LastList = ViewList
		s.Draft = nil
		if all := s.AllRecipes(); len(all) > 0 {
			s.SelectedRecipeID = all[0].ID
		} else {
			s.SelectedRecipeID = ""
		}
		return s

	case OpenCategory:
		if _, ok := s.findCategory(a.ID); !ok {
			return s
		}
		s.SelectedCategoryID = a.ID
		s.View = ViewCategoryList
		s.LastList = ViewCategoryList
		s.Draft = nil
		s.SelectedRecipeID = s.firstRecipeIn(a.ID)
		return s

	case SelectRecipe:
		if _, ok := recipe.RecipeByID(s.Recipes, a.ID); !ok {
			return s
		}
		s.SelectedRecipeID = a.ID
		return s

	case BackToList:
		s.View = s.LastList
		s.Draft = nil
		return s

	case CreateRecipe:
		draft := recipe.Recipe{
			ID:          recipe.NewID(),
			Title:       recipe.NewRecipeTitle,
			CategoryID:  s.draftCategoryID(),
			Ingredients: []recipe.IngredientLine{recipe.BlankIngredient()},
			Steps:       []recipe.Step{recipe.BlankStep()},
		}
		s.Draft = &draft
		s.View = ViewEdit
		return s

	case EditRecipe:
		r, ok := recipe.RecipeByID(s.Recipes, a.ID)
		if !ok {
			return s
		}
		draft := r.Clone()
		s.Draft = &draft
		s.SelectedRecipeID = a.ID
		s.View = ViewEdit
		return s

	case SetDraftTitle:
		return s.withDraft(func(d *recipe.Recipe) { d.Title = a.Title })

	case SetDraftSourceURL:
		return s.withDraft(func(d *recipe.Recipe) { d.SourceURL = a.URL })

	case SetDraftImageURL:
		return s.withDraft(func(d *recipe.Recipe) { d.ImageURL = a.URL })

	case SetDraftCategory:
		cat, ok := s.findCategory(a.ID)
		if !ok || cat.IsFavorites() {
			return s
		}
		return s.withDraft(func(d *recipe.Recipe) { d.CategoryID = a.ID })

	case AddIngredient:
		return s.withDraft(func(d *recipe.Recipe) {
			d.Ingredients = append(d.Ingredients, recipe.BlankIngredient())
		})

	case UpdateIngredientName:
		return s.withDraft(func(d *recipe.Recipe) {
			for i := range d.Ingredients {
				if d.Ingredients[i].ID == a.ID {
					d.Ingredients[i].Name = a.Name
				}
			}
		})

	case UpdateIngredientAmount:
		return s.withDraft(func(d *recipe.Recipe) {
			for i := range d.Ingredients {
				if d.Ingredients[i].ID == a.ID {
					d.Ingredients[i].AmountText = a.Amount
				}
			}
		})

	case DeleteIngredient:
		return s.withDraft(func(d *recipe.Recipe) {
			kept := d.Ingredients[:0:0]
			for _, in := range d.Ingredients {
				if in.ID != a.ID {
					kept = append(kept, in)
				}
			}
			if len(kept) == 0 {
				kept = []recipe.IngredientLine{recipe.BlankIngredient()}
			}
			d.Ingredients = kept
		})

	case AddStep:
		return s.withDraft(func(d *recipe.Recipe) {
			d.Steps = append(d.Steps, recipe.BlankStep())
		})

	case UpdateStepTitle:
		return s.withDraft(func(d *recipe.Recipe) {
			for i := range d.Steps {
				if d.Steps[i].ID == a.ID {
					d.Steps[i].Title = a.Title
				}
			}
		})

	case UpdateStepNote:
		return s.withDraft(func(d *recipe.Recipe) {
			for i := range d.Steps {
				if d.Steps[i].ID == a.ID {
					d.Steps[i].Note = a.Note
				}
			}
		})

	case DeleteStep:
		return s.withDraft(func(d *recipe.Recipe) {
			kept := d.Steps[:0:0]
			for _, st := range d.Steps {
				if st.ID != a.ID {
					kept = append(kept, st)
				}
			}
			if len(kept) == 0 {
				kept = []recipe.Step{recipe.BlankStep()}
			}
			d.Steps = kept
		})

	case ImportDraft:
		return s.withDraft(func(d *recipe.Recipe) {
			if len(a.Ingredients) > 0 {
				d.Ingredients = append([]recipe.IngredientLine{}, a.Ingredients...)
			}
			if len(a.Steps) > 0 {
				d.Steps = append([]recipe.Step{}, a.Steps...)
			}
		})

	case SaveDraft:
		return s.saveDraft()

	case DeleteRecipe:
		if _, ok := recipe.RecipeByID(s.Recipes, a.ID); !ok {
			return s
		}
		kept := make([]recipe.Recipe, 0, len(s.Recipes)-1)
		for _, r := range s.Recipes {
			if r.ID != a.ID {
				kept = append(kept, r)
			}
		}
		s.Recipes = kept
		if s.SelectedRecipeID == a.ID {
			s.SelectedRecipeID = s.reselect()
		}
		if s.View == ViewEdit || s.View == ViewRun {
			s.View = s.LastList
			s.Draft = nil
		}
		return s

	case ToggleFavorite:
		idx := -1
		for i := range s.Recipes {
			if s.Recipes[i].ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		next := append([]recipe.Recipe{}, s.Recipes...)
		next[idx].IsFavorite = !next[idx].IsFavorite
		s.Recipes = next
		return s

	case Run:
		idx := -1
		for i := range s.Recipes {
			if s.Recipes[i].ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		next := append([]recipe.Recipe{}, s.Recipes...)
		next[idx].LastRunAt = a.At
		s.Recipes = next
		s.SelectedRecipeID = a.ID
		s.RunIndex = 0
		s.View = ViewRun
		s.Draft = nil
		return s

	case RunNext:
		if s.View != ViewRun {
			return s
		}
		if r := s.SelectedRecipe(); r != nil && s.RunIndex < len(r.Steps) {
			s.RunIndex++
		}
		return s

	case RunPrev:
		if s.View != ViewRun {
			return s
		}
		if s.RunIndex > 0 {
			s.RunIndex--
		}
		return s

	case AddCategory:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return s
		}
		next := append([]recipe.Category{}, s.Categories...)
		next = append(next, recipe.Category{ID: recipe.NewID(), Name: name})
		s.Categories = next
		return s

	case RenameCategory:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return s
		}
		idx := -1
		for i := range s.Categories {
			if s.Categories[i].ID == a.ID {
				idx = i
				break
			}
		}
		if idx < 0 || s.Categories[idx].IsFavorites() {
			return s
		}
		next := append([]recipe.Category{}, s.Categories...)
		next[idx].Name = name
		s.Categories = next
		return s

	case DeleteCategory:
		cat, ok := s.findCategory(a.ID)
		if !ok || cat.IsFavorites() {
			return s
		}
		keptCats := make([]recipe.Category, 0, len(s.Categories)-1)
		for _, c := range s.Categories {
			if c.ID != a.ID {
				keptCats = append(keptCats, c)
			}
		}
		fallback := recipe.FallbackCategoryID(keptCats)
		nextRecipes := append([]recipe.Recipe{}, s.Recipes...)
		for i := range nextRecipes {
			if nextRecipes[i].CategoryID == a.ID {
				nextRecipes[i].CategoryID = fallback
			}
		}
		s.Categories = keptCats
		s.Recipes = nextRecipes
		if s.SelectedCategoryID == a.ID {
			s.SelectedCategoryID = ""
			if s.View == ViewCategoryList {
				s.View = ViewCategories
				s.LastList = ViewCategories
			}
		}
		return s

	case LoadData:
		s.Categories = a.Data.Categories
		s.Recipes = a.Data.Recipes
		if _, ok := s.findCategory(s.SelectedCategoryID); !ok {
			s.SelectedCategoryID = ""
			if s.View == ViewCategoryList {
				s.View = ViewCategories
				s.LastList = ViewCategories
			}
		}
		if _, ok := recipe.RecipeByID(s.Recipes, s.SelectedRecipeID); !ok {
			s.SelectedRecipeID = s.reselect()
			if s.View == ViewRun {
				s.View = s.LastList
				s.RunIndex = 0
			}
		}
		return s
	}
	return s
}

// withDraft applies an edit to a copy of the draft; no-op when no draft
// is open.
func (s State) withDraft(fn func(*recipe.Recipe)) State {
	if s.Draft == nil {
		return s
	}
	draft := s.Draft.Clone()
	fn(&draft)
	s.Draft = &draft
	return s
}

// draftCategoryID picks the home of a new recipe: the open category when
// the user is inside one (but never Favorites), otherwise the fallback.
func (s State) draftCategoryID() string {
	if s.View == ViewCategoryList || s.LastList == ViewCategoryList {
		if cat, ok := s.findCategory(s.SelectedCategoryID); ok && !cat.IsFavorites() {
			return cat.ID
		}
	}
	return recipe.FallbackCategoryID(s.Categories)
}

// saveDraft commits the open draft: empty lines are dropped, the title
// falls back to the placeholder, and the editor closes back to the list
// the user came from.
func (s State) saveDraft() State {
	if s.Draft == nil {
		return s
	}
	d := s.Draft.Clone()
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = recipe.UntitledRecipe
	}

	ingredients := d.Ingredients[:0:0]
	for _, in := range d.Ingredients {
		if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.AmountText) == "" {
			continue
		}
		ingredients = append(ingredients, in)
	}
	if len(ingredients) == 0 {
		ingredients = []recipe.IngredientLine{recipe.BlankIngredient()}
	}
	d.Ingredients = ingredients

	steps := d.Steps[:0:0]
	for _, st := range d.Steps {
		if strings.TrimSpace(st.Title) == "" && strings.TrimSpace(st.Note) == "" {
			continue
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		steps = []recipe.Step{recipe.BlankStep()}
	}
	d.Steps = steps

	if _, ok := s.findCategory(d.CategoryID); !ok {
		d.CategoryID = recipe.FallbackCategoryID(s.Categories)
	}

	next := append([]recipe.Recipe{}, s.Recipes...)
	replaced := false
	for i := range next {
		if next[i].ID == d.ID {
			next[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, d)
	}
	s.Recipes = next
	s.SelectedRecipeID = d.ID
	s.SelectedCategoryID = d.CategoryID
	s.Draft = nil
	s.View = s.LastList
	return s
}

// reselect picks a replacement selection from the current list context.
func (s State) reselect() string {
	if s.View == ViewCategoryList || s.LastList == ViewCategoryList {
		if s.SelectedCategoryID != "" {
			return s.firstRecipeIn(s.SelectedCategoryID)
		}
	}
	if all := s.AllRecipes(); len(all) > 0 {
		return all[0].ID
	}
	return ""
}
