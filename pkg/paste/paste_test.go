package paste

import "testing"

func TestParseSectionedJapaneseRecipe(t *testing.T) {
	got := Parse("【材料】\nにんじん 1本\n【手順】\n1. 切る\n2. 煮る")

	if len(got.Ingredients) != 1 {
		t.Fatalf("expected 1 ingredient, got %d: %+v", len(got.Ingredients), got.Ingredients)
	}
	if got.Ingredients[0].Name != "にんじん" || got.Ingredients[0].AmountText != "1本" {
		t.Fatalf("unexpected ingredient: %+v", got.Ingredients[0])
	}
	if len(got.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d: %+v", len(got.Steps), got.Steps)
	}
	if got.Steps[0].Title != "切る" || got.Steps[1].Title != "煮る" {
		t.Fatalf("unexpected steps: %+v", got.Steps)
	}
	if got.Ingredients[0].ID == "" || got.Steps[0].ID == "" {
		t.Fatalf("parsed items must carry generated ids")
	}
}

func TestParseImplicitNumberedSteps(t *testing.T) {
	got := Parse("カレーの作り方メモ\n１. 玉ねぎを炒める\n2.1 ルーを割り入れる\n・弱火で煮る")

	if len(got.Ingredients) != 0 {
		t.Fatalf("no ingredients section expected, got %+v", got.Ingredients)
	}
	want := []string{"玉ねぎを炒める", "ルーを割り入れる", "弱火で煮る"}
	if len(got.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %d: %+v", len(want), len(got.Steps), got.Steps)
	}
	for i, title := range want {
		if got.Steps[i].Title != title {
			t.Fatalf("step %d: expected %q, got %q", i, title, got.Steps[i].Title)
		}
	}
}

func TestParseSkipsNutritionFacts(t *testing.T) {
	got := Parse("【材料】\nエネルギー 250kcal\nたんぱく質 12g\n鶏もも肉 300g\n【作り方】\n1. 焼く\nProtein 10g")

	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "鶏もも肉" {
		t.Fatalf("nutrition lines leaked into ingredients: %+v", got.Ingredients)
	}
	if len(got.Steps) != 1 || got.Steps[0].Title != "焼く" {
		t.Fatalf("nutrition lines leaked into steps: %+v", got.Steps)
	}
}

func TestParseIngredientBulletsAndSeparators(t *testing.T) {
	got := Parse("Ingredients\n・小麦粉：200g\n- butter 50 g\n・\nSteps\n1) mix\n2) \n3. bake")

	if len(got.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %+v", got.Ingredients)
	}
	if got.Ingredients[0].Name != "小麦粉" || got.Ingredients[0].AmountText != "200g" {
		t.Fatalf("unexpected first ingredient: %+v", got.Ingredients[0])
	}
	if got.Ingredients[1].Name != "butter" || got.Ingredients[1].AmountText != "50 g" {
		t.Fatalf("unexpected second ingredient: %+v", got.Ingredients[1])
	}
	want := []string{"mix", "bake"}
	if len(got.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %+v", len(want), got.Steps)
	}
	for i, title := range want {
		if got.Steps[i].Title != title {
			t.Fatalf("step %d: expected %q, got %q", i, title, got.Steps[i].Title)
		}
	}
}

func TestParsePreambleSkippedBeforeAnySection(t *testing.T) {
	got := Parse("おいしいレシピ\nhttps://example.com\n\n【材料】\n卵 2個")

	if len(got.Steps) != 0 {
		t.Fatalf("preamble should not produce steps: %+v", got.Steps)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Name != "卵" {
		t.Fatalf("unexpected ingredients: %+v", got.Ingredients)
	}
}

func TestParseEmptyInput(t *testing.T) {
	got := Parse("")
	if len(got.Ingredients) != 0 || len(got.Steps) != 0 {
		t.Fatalf("empty input should yield empty result, got %+v", got)
	}
}
