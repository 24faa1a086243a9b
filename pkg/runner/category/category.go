// Package category manages the category list from the CLI.
package category

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/printers"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
)

// Category lists, adds, renames, or removes categories. With no operation
// set it prints the category overview.
type Category struct {
	ShowID      bool
	Add         string
	Rename      []string // old, new
	Remove      string
	Persistence store.Persistence
}

func (c *Category) Do(ctx context.Context) error {
	if c.Persistence == nil {
		return errors.New("can not manage categories, no persistence")
	}
	data := c.Persistence.Load(ctx)
	pp := printers.PrettyPrint{ShowID: c.ShowID}

	switch {
	case c.Add != "":
		return c.apply(ctx, data, app.AddCategory{Name: c.Add},
			fmt.Sprintf("added category %q", c.Add))

	case len(c.Rename) == 2:
		cat, ok := findCategory(data.Categories, c.Rename[0])
		if !ok {
			return fmt.Errorf("category: no category matching %q", c.Rename[0])
		}
		if cat.IsFavorites() {
			return fmt.Errorf("category: %s cannot be renamed", cat.Name)
		}
		return c.apply(ctx, data, app.RenameCategory{ID: cat.ID, Name: c.Rename[1]},
			fmt.Sprintf("renamed %q to %q", cat.Name, c.Rename[1]))

	case c.Remove != "":
		cat, ok := findCategory(data.Categories, c.Remove)
		if !ok {
			return fmt.Errorf("category: no category matching %q", c.Remove)
		}
		if cat.IsFavorites() {
			return fmt.Errorf("category: %s cannot be deleted", cat.Name)
		}
		return c.apply(ctx, data, app.DeleteCategory{ID: cat.ID},
			fmt.Sprintf("deleted category %q", cat.Name))
	}

	fmt.Println("")
	pp.Categories(data)
	return nil
}

// apply runs one action through the reducer and persists the result.
func (c *Category) apply(ctx context.Context, data recipe.AppData, a app.Action, confirm string) error {
	m := app.NewMachine(app.NewState(data))
	next := m.Dispatch(a)
	if err := c.Persistence.Save(ctx, next.Data()); err != nil {
		return fmt.Errorf("category: saving: %w", err)
	}
	fmt.Println(confirm)
	return nil
}

func findCategory(categories []recipe.Category, q string) (recipe.Category, bool) {
	if c, ok := recipe.CategoryByID(categories, q); ok {
		return c, true
	}
	for _, c := range categories {
		if c.Name == q {
			return c, true
		}
	}
	return recipe.Category{}, false
}
