// Package show provides the CLI view over the stored recipe collection.
package show

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/mise/pkg/printers"
	"tableflip.dev/mise/pkg/recipe"
	"tableflip.dev/mise/pkg/store"
)

type Show struct {
	ShowID      bool
	Category    string
	Favorites   bool
	Recipe      string
	Persistence store.Persistence
}

func (s *Show) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not show, no persistence")
	}
	data := s.Persistence.Load(ctx)
	pp := printers.PrettyPrint{ShowID: s.ShowID}
	fmt.Println("")

	if s.Recipe != "" {
		r, ok := findRecipe(data.Recipes, s.Recipe)
		if !ok {
			return fmt.Errorf("show: no recipe matching %q", s.Recipe)
		}
		pp.Recipe(r)
		return nil
	}

	if s.Favorites {
		favs := make([]recipe.Recipe, 0, len(data.Recipes))
		for _, r := range data.Recipes {
			if r.IsFavorite {
				favs = append(favs, r)
			}
		}
		pp.TitleWithCount(recipe.FavoritesName, len(favs))
		pp.Recipes(recipe.ByRecency(favs), data.Categories)
		return nil
	}

	if s.Category != "" {
		cat, ok := findCategory(data.Categories, s.Category)
		if !ok {
			return fmt.Errorf("show: no category matching %q", s.Category)
		}
		members := make([]recipe.Recipe, 0, len(data.Recipes))
		for _, r := range data.Recipes {
			if cat.IsFavorites() {
				if r.IsFavorite {
					members = append(members, r)
				}
			} else if r.CategoryID == cat.ID {
				members = append(members, r)
			}
		}
		pp.TitleWithCount(cat.Name, len(members))
		pp.Recipes(recipe.ByRecency(members), data.Categories)
		return nil
	}

	pp.Categories(data)
	pp.NewLine()
	pp.TitleWithCount("All recipes", len(data.Recipes))
	pp.Recipes(recipe.ByRecency(data.Recipes), data.Categories)
	return nil
}

// findRecipe matches by id first, then by exact title, then by title
// prefix.
func findRecipe(recipes []recipe.Recipe, q string) (recipe.Recipe, bool) {
	if r, ok := recipe.RecipeByID(recipes, q); ok {
		return r, true
	}
	for _, r := range recipes {
		if r.Title == q {
			return r, true
		}
	}
	for _, r := range recipes {
		if strings.HasPrefix(r.Title, q) {
			return r, true
		}
	}
	return recipe.Recipe{}, false
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
