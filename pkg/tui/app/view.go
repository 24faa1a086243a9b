package teaui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mise/pkg/app"
	"tableflip.dev/mise/pkg/recipe"
)

// View renders the active screen plus the footer.
func (m Model) View() string {
	st := m.machine.State()

	var body string
	switch st.View {
	case app.ViewCategories:
		body = m.catList.View()
	case app.ViewList, app.ViewCategoryList:
		body = m.recList.View()
	case app.ViewEdit:
		body = m.viewEdit(st)
	case app.ViewRun:
		body = m.viewRun(st)
	}

	if m.mode == modeInsert {
		body += "\n\n" + m.input.Placeholder + ": " + m.input.View()
	}
	if m.mode == modeHelp {
		body += "\n\n" + m.theme.Panel.Frame.Render(m.helpText(st))
	}

	return body + "\n\n" + m.footer(st)
}

func (m Model) footer(st app.State) string {
	modeStr := map[mode]string{modeNormal: "NORMAL", modeInsert: "INSERT", modeHelp: "HELP"}[m.mode]
	label := m.theme.Footer.Mode.Render(fmt.Sprintf("[%s]", modeStr))
	status := m.status
	if strings.HasPrefix(status, "ERR") {
		return label + " " + m.theme.Footer.Error.Render(status)
	}
	return label + " " + m.theme.Footer.Status.Render(status)
}

func (m Model) helpText(st app.State) string {
	switch st.View {
	case app.ViewCategories:
		return "enter open, a all recipes, n new category, i rename, dd delete, q quit"
	case app.ViewList, app.ViewCategoryList:
		return "enter cook, n new, i edit, f favorite, dd delete, esc categories, q quit"
	case app.ViewEdit:
		return "j/k move, enter edit field, a edit amount/note, o add ingredient, O add step,\nx delete line, tab cycle category, w save, esc discard"
	case app.ViewRun:
		return "l/space next, h prev, esc stop"
	}
	return ""
}

func (m Model) viewEdit(st app.State) string {
	d := st.Draft
	if d == nil {
		return ""
	}
	rows := editRows(*d)

	catName := ""
	if c, ok := recipe.CategoryByID(st.Categories, d.CategoryID); ok {
		catName = c.Name
	}

	var b strings.Builder
	b.WriteString(m.theme.Panel.Title.Render("Edit recipe"))
	b.WriteString("\n\n")

	section := rowKind(-1)
	for i, row := range rows {
		if row.kind != section && (row.kind == rowIngredient || row.kind == rowStep) {
			section = row.kind
			if row.kind == rowIngredient {
				b.WriteString("\n" + m.theme.Panel.Faint.Render("Ingredients") + "\n")
			} else {
				b.WriteString("\n" + m.theme.Panel.Faint.Render("Steps") + "\n")
			}
		}
		indicator := "  "
		if i == m.editIndex {
			indicator = "→ "
		}
		b.WriteString(indicator + m.editRowLabel(*d, row, catName) + "\n")
	}
	return b.String()
}

func (m Model) editRowLabel(d recipe.Recipe, row editRow, catName string) string {
	faint := m.theme.Panel.Faint
	switch row.kind {
	case rowTitle:
		title := d.Title
		if title == "" {
			title = faint.Render(recipe.UntitledRecipe)
		}
		return "Title:    " + title
	case rowSource:
		return "Source:   " + valueOr(d.SourceURL, faint.Render("none"))
	case rowImage:
		return "Image:    " + valueOr(d.ImageURL, faint.Render("none"))
	case rowCategory:
		return "Category: " + catName
	case rowIngredient:
		for _, in := range d.Ingredients {
			if in.ID == row.id {
				if in.AmountText != "" {
					return fmt.Sprintf("%s  %s", valueOr(in.Name, "·"), faint.Render(in.AmountText))
				}
				return valueOr(in.Name, "·")
			}
		}
	case rowStep:
		n := 0
		for _, s := range d.Steps {
			n++
			if s.ID == row.id {
				label := fmt.Sprintf("%d. %s", n, valueOr(s.Title, "·"))
				if s.Note != "" {
					label += "  " + faint.Render(s.Note)
				}
				return label
			}
		}
	}
	return ""
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (m Model) viewRun(st app.State) string {
	r := st.SelectedRecipe()
	if r == nil {
		return ""
	}
	width := m.termWidth - 8
	if width < 20 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(m.theme.Panel.Title.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(m.theme.Run.Progress.Render(fmt.Sprintf("step %d / %d", st.RunIndex, len(r.Steps))))
	b.WriteString("\n\n")

	if st.RunIndex == 0 {
		b.WriteString(m.theme.Panel.Faint.Render("Mise en place"))
		b.WriteString("\n")
		for _, in := range r.Ingredients {
			if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.AmountText) == "" {
				continue
			}
			line := "· " + in.Name
			if in.AmountText != "" {
				line += "  " + in.AmountText
			}
			b.WriteString(line + "\n")
		}
	} else {
		step := r.Steps[st.RunIndex-1]
		b.WriteString(m.theme.Run.StepTitle.Render(wordwrap.String(step.Title, width)))
		if step.Note != "" {
			b.WriteString("\n\n")
			b.WriteString(m.theme.Run.StepNote.Render(wordwrap.String(step.Note, width)))
		}
		if st.RunIndex == len(r.Steps) {
			b.WriteString("\n\n")
			b.WriteString(m.theme.Run.Done.Render("Last step! いただきます!"))
		}
	}

	return m.theme.Panel.Frame.Render(b.String())
}
