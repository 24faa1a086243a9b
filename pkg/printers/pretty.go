package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mise/pkg/recipe"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" recipe")
	default:
		_, _ = c.Println(" recipes")
	}
}

// Categories prints the catalog with per-category recipe counts.
func (pp *PrettyPrint) Categories(data recipe.AppData) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Recipes"))
	for _, c := range data.Categories {
		n := 0
		for _, r := range data.Recipes {
			if c.IsFavorites() {
				if r.IsFavorite {
					n++
				}
			} else if r.CategoryID == c.ID {
				n++
			}
		}
		name := c.Name
		if c.IsFavorites() {
			name = faint.Sprint(name)
		}
		tbl.AddRow(name, n)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Recipes prints a recipe listing, one line per recipe.
func (pp *PrettyPrint) Recipes(recipes []recipe.Recipe, categories []recipe.Category) {
	if len(recipes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	star := color.New(color.FgHiYellow)

	for _, r := range recipes {
		if pp.ShowID {
			id := shortID(r.ID)
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		mark := " "
		if r.IsFavorite {
			mark = star.Sprint("★")
		}
		cat := ""
		if c, ok := recipe.CategoryByID(categories, r.CategoryID); ok {
			cat = color.New(color.Faint).Sprintf("  (%s)", c.Name)
		}
		_, _ = t.Printf("%s %s%s\n", mark, r.Title, cat)
	}
	_, _ = t.Println("")
}

// Recipe prints the full detail: ingredient table, then numbered steps.
func (pp *PrettyPrint) Recipe(r recipe.Recipe) {
	pp.Title(r.Title)

	faint := color.New(color.Faint)
	if r.SourceURL != "" {
		_, _ = faint.Printf("source: %s\n", r.SourceURL)
	}
	if r.LastRunAt > 0 {
		at := time.UnixMilli(r.LastRunAt)
		_, _ = faint.Printf("last cooked: %s\n", at.Format("2006-01-02 15:04"))
	}
	fmt.Println("")

	tbl := uitable.New()
	tbl.Separator = "  "
	bold := color.New(color.Bold)
	tbl.AddRow(bold.Sprint("Ingredient"), bold.Sprint("Amount"))
	for _, in := range r.Ingredients {
		if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.AmountText) == "" {
			continue
		}
		tbl.AddRow(in.Name, in.AmountText)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")

	for i, st := range r.Steps {
		if strings.TrimSpace(st.Title) == "" && strings.TrimSpace(st.Note) == "" {
			continue
		}
		_, _ = bold.Printf("%d. %s\n", i+1, st.Title)
		if st.Note != "" {
			_, _ = faint.Printf("   %s\n", st.Note)
		}
	}
	fmt.Println("")
}

func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}
