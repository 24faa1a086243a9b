// Package importer turns pasted recipe text into a stored recipe.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/mise/pkg/paste"
	"tableflip.dev/mise/pkg/printers"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
)

type Import struct {
	Title     string
	Category  string
	SourceURL string
	// Path is the text file to import; "-" or empty reads stdin.
	Path        string
	In          io.Reader
	Persistence store.Persistence
}

func (n *Import) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}

	text, err := n.readText()
	if err != nil {
		return err
	}
	result := paste.Parse(text)
	if len(result.Ingredients) == 0 && len(result.Steps) == 0 {
		return errors.New("import: no ingredients or steps recognized")
	}

	data := n.Persistence.Load(ctx)

	r := recipe.Recipe{
		ID:          recipe.NewID(),
		Title:       strings.TrimSpace(n.Title),
		CategoryID:  n.categoryID(&data),
		SourceURL:   strings.TrimSpace(n.SourceURL),
		Ingredients: result.Ingredients,
		Steps:       result.Steps,
	}
	if r.Title == "" {
		r.Title = recipe.UntitledRecipe
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = []recipe.IngredientLine{recipe.BlankIngredient()}
	}
	if len(r.Steps) == 0 {
		r.Steps = []recipe.Step{recipe.BlankStep()}
	}

	data.Recipes = append(data.Recipes, r)
	if err := n.Persistence.Save(ctx, data); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Recipe(r)
	return nil
}

func (n *Import) readText() (string, error) {
	if n.Path != "" && n.Path != "-" {
		raw, err := os.ReadFile(n.Path)
		if err != nil {
			return "", fmt.Errorf("import: read %s: %w", n.Path, err)
		}
		return string(raw), nil
	}
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("import: read input: %w", err)
	}
	return string(raw), nil
}

// categoryID resolves the target category by name, creating it when it
// does not exist yet. An empty name lands in the fallback category.
func (n *Import) categoryID(data *recipe.AppData) string {
	name := strings.TrimSpace(n.Category)
	if name == "" {
		return recipe.FallbackCategoryID(data.Categories)
	}
	for _, c := range data.Categories {
		if c.Name == name && !c.IsFavorites() {
			return c.ID
		}
	}
	c := recipe.Category{ID: recipe.NewID(), Name: name}
	data.Categories = append(data.Categories, c)
	return c.ID
}
