package app

import "tableflip.dev/mise/pkg/recipe"

// Action is the closed set of inputs the reducer accepts. Every user
// gesture and every data event is one of these values.
type Action interface {
	isAction()
}

// Navigation.

// OpenCategories returns to the category catalog.
type OpenCategories struct{}

// OpenAllRecipes opens the flat recipe list.
type OpenAllRecipes struct{}

// OpenCategory opens the recipe list of one category.
type OpenCategory struct{ ID string }

// SelectRecipe changes the highlighted recipe in the current list.
type SelectRecipe struct{ ID string }

// BackToList leaves the editor or runner and returns to the remembered
// list view.
type BackToList struct{}

// Editing.

// CreateRecipe opens the editor on a fresh draft.
type CreateRecipe struct{}

// EditRecipe opens the editor on a copy of an existing recipe.
type EditRecipe struct{ ID string }

// SetDraftTitle updates the draft title.
type SetDraftTitle struct{ Title string }

// SetDraftSourceURL updates the draft source link.
type SetDraftSourceURL struct{ URL string }

// SetDraftImageURL updates the draft image link.
type SetDraftImageURL struct{ URL string }

// SetDraftCategory moves the draft to another category.
type SetDraftCategory struct{ ID string }

// AddIngredient appends a blank ingredient line to the draft.
type AddIngredient struct{}

// UpdateIngredientName edits one ingredient line by id.
type UpdateIngredientName struct {
	ID   string
	Name string
}

// UpdateIngredientAmount edits one ingredient amount by id.
type UpdateIngredientAmount struct {
	ID     string
	Amount string
}

// DeleteIngredient removes one ingredient line from the draft.
type DeleteIngredient struct{ ID string }

// AddStep appends a blank step to the draft.
type AddStep struct{}

// UpdateStepTitle edits one step title by id.
type UpdateStepTitle struct {
	ID    string
	Title string
}

// UpdateStepNote edits one step note by id.
type UpdateStepNote struct {
	ID   string
	Note string
}

// DeleteStep removes one step from the draft.
type DeleteStep struct{ ID string }

// ImportDraft replaces the draft's ingredients and steps with parsed
// text, leaving the rest of the draft alone.
type ImportDraft struct {
	Ingredients []recipe.IngredientLine
	Steps       []recipe.Step
}

// SaveDraft commits the draft into the collection.
type SaveDraft struct{}

// DeleteRecipe removes a recipe from the collection.
type DeleteRecipe struct{ ID string }

// ToggleFavorite flips a recipe's favorite flag.
type ToggleFavorite struct{ ID string }

// Running.

// Run enters the guided runner for a recipe. At carries the moment the
// run started, in Unix milliseconds; the Machine stamps it on dispatch.
type Run struct {
	ID string
	At int64
}

// RunNext advances the run cursor.
type RunNext struct{}

// RunPrev moves the run cursor back.
type RunPrev struct{}

// Categories.

// AddCategory creates a category.
type AddCategory struct{ Name string }

// RenameCategory renames a category.
type RenameCategory struct {
	ID   string
	Name string
}

// DeleteCategory removes a category; its recipes are reassigned.
type DeleteCategory struct{ ID string }

// Data events.

// LoadData replaces the whole collection, e.g. after a remote pull or a
// file change on disk. The current view survives when it still makes
// sense.
type LoadData struct{ Data recipe.AppData }

func (OpenCategories) isAction()         {}
func (OpenAllRecipes) isAction()         {}
func (OpenCategory) isAction()           {}
func (SelectRecipe) isAction()           {}
func (BackToList) isAction()             {}
func (CreateRecipe) isAction()           {}
func (EditRecipe) isAction()             {}
func (SetDraftTitle) isAction()          {}
func (SetDraftSourceURL) isAction()      {}
func (SetDraftImageURL) isAction()       {}
func (SetDraftCategory) isAction()       {}
func (AddIngredient) isAction()          {}
func (UpdateIngredientName) isAction()   {}
func (UpdateIngredientAmount) isAction() {}
func (DeleteIngredient) isAction()       {}
func (AddStep) isAction()                {}
func (UpdateStepTitle) isAction()        {}
func (UpdateStepNote) isAction()         {}
func (DeleteStep) isAction()             {}
func (ImportDraft) isAction()            {}
func (SaveDraft) isAction()              {}
func (DeleteRecipe) isAction()           {}
func (ToggleFavorite) isAction()         {}
func (Run) isAction()                    {}
func (RunNext) isAction()                {}
func (RunPrev) isAction()                {}
func (AddCategory) isAction()            {}
func (RenameCategory) isAction()         {}
func (DeleteCategory) isAction()         {}
func (LoadData) isAction()               {}
