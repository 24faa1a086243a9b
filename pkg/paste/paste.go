// Package paste converts free-form recipe text, as copied from recipe
// sites, into structured ingredient and step lists. The parser is lossy and
// heuristic on purpose: it targets common copy-paste layouts, not general
// text understanding.
package paste

import (
	"regexp"
	"strings"

	"tableflip.dev/mise/pkg/recipe"
)

// Result holds the structured output of a parse. Every produced line and
// step carries a fresh id.
type Result struct {
	Ingredients []recipe.IngredientLine
	Steps       []recipe.Step
}

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionSteps
)

var (
	// Nutrition-facts lines are dropped before any other classification.
	nutritionLine = regexp.MustCompile(`(?i)エネルギー|カロリー|たんぱく質|タンパク質|脂質|炭水化物|食物繊維|energy|protein|fat\b|carbohydrates?|fib(?:er|re)|kcal|kj`)

	ingredientsHeader = regexp.MustCompile(`(?i)^[\[【（(]?\s*(材料|ingredients?)`)
	stepsHeader       = regexp.MustCompile(`(?i)^[\[【（(]?\s*(作り方|手順|調理|ステップ|steps?|method|procedure|directions?|instructions?)`)

	// Numbered list items, including full-width digits and decimal
	// sub-numbers ("2.1"), imply the start of the steps section.
	numberedItem = regexp.MustCompile(`^[0-9０-９]+(?:[.．][0-9０-９]+)?`)
	stepNumber   = regexp.MustCompile(`^[0-9０-９]+(?:[.．-][0-9０-９]+)?[.)）。:：．]?\s*`)
	bulletGlyphs = regexp.MustCompile(`^[・•●○◦▪‣※＊*☆★\-–—]+\s*`)

	separators = strings.NewReplacer("：", " ", ":", " ", "…", " ", "　", " ", "\t", " ")
)

// Parse splits text into ingredient and step lists. It is pure,
// deterministic aside from id generation, and never fails: unparseable
// lines are simply skipped.
func Parse(text string) Result {
	var out Result
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if nutritionLine.MatchString(line) {
			continue
		}
		if ingredientsHeader.MatchString(line) {
			current = sectionIngredients
			continue
		}
		if stepsHeader.MatchString(line) {
			current = sectionSteps
			continue
		}
		if current == sectionNone {
			if !numberedItem.MatchString(line) {
				// Preamble before any recognizable section.
				continue
			}
			current = sectionSteps
		}

		switch current {
		case sectionIngredients:
			if l, ok := parseIngredient(line); ok {
				out.Ingredients = append(out.Ingredients, l)
			}
		case sectionSteps:
			if s, ok := parseStep(line); ok {
				out.Steps = append(out.Steps, s)
			}
		}
	}
	return out
}

// parseIngredient splits a line into name and amount: the first token is
// the name, the remaining tokens joined are the amount text.
func parseIngredient(line string) (recipe.IngredientLine, bool) {
	s := bulletGlyphs.ReplaceAllString(line, "")
	s = separators.Replace(s)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return recipe.IngredientLine{}, false
	}
	return recipe.IngredientLine{
		ID:         recipe.NewID(),
		Name:       fields[0],
		AmountText: strings.Join(fields[1:], " "),
	}, true
}

// parseStep strips the numbering prefix and any leading bullet, keeping the
// remaining text as the step title.
func parseStep(line string) (recipe.Step, bool) {
	s := stepNumber.ReplaceAllString(line, "")
	s = bulletGlyphs.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return recipe.Step{}, false
	}
	return recipe.Step{ID: recipe.NewID(), Title: s}, true
}
