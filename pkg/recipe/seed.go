package recipe

// Seed returns the built-in sample data set shown to new users and used as
// the recovery fallback when no valid persisted or remote data exists.
func Seed() AppData {
	categories := SeedCategories()
	return AppData{
		Categories: categories,
		Recipes:    SeedRecipes(categories),
	}
}

// SeedCategories returns the default category catalog. The reserved
// Favorites pseudo-category comes first.
func SeedCategories() []Category {
	return []Category{
		{ID: "cat-favorites", Name: FavoritesName},
		{ID: "cat-meat", Name: "お肉"},
		{ID: "cat-seafood", Name: "魚介"},
		{ID: "cat-eggs", Name: "卵"},
		{ID: "cat-salad", Name: "サラダ"},
		{ID: "cat-soup", Name: "スープ"},
		{ID: "cat-rice", Name: "ご飯物"},
		{ID: "cat-noodles", Name: "麺"},
		{ID: "cat-bento", Name: "お弁当"},
		{ID: "cat-bread", Name: "パン"},
		{ID: "cat-sweets", Name: "お菓子"},
		{ID: "cat-others", Name: "その他"},
	}
}

// SeedRecipes returns the sample recipes keyed against the provided
// categories. Category resolution is by name so the samples survive
// re-keying when the caller's catalog uses generated ids.
func SeedRecipes(categories []Category) []Recipe {
	byName := func(name string) string {
		for _, c := range categories {
			if c.Name == name {
				return c.ID
			}
		}
		if len(categories) > 0 {
			return categories[0].ID
		}
		return NewID()
	}

	build := func(id, title, category, image string, favorite bool, ingredients []IngredientLine, steps []Step) Recipe {
		return Recipe{
			ID:          id,
			Title:       title,
			CategoryID:  byName(category),
			ImageURL:    image,
			Ingredients: ingredients,
			Steps:       steps,
			IsFavorite:  favorite,
		}
	}

	return []Recipe{
		build("sample-meat-1", "ジューシー唐揚げ", "お肉",
			"https://images.unsplash.com/photo-1555939594-58d7cb561ad1?auto=format&fit=crop&w=1200&q=80", true,
			[]IngredientLine{
				{ID: "i1", Name: "鶏もも肉", AmountText: "300g"},
				{ID: "i2", Name: "醤油", AmountText: "大さじ2"},
				{ID: "i3", Name: "にんにく", AmountText: "1片"},
			},
			[]Step{
				{ID: "s1", Title: "鶏肉に下味をつける"},
				{ID: "s2", Title: "片栗粉をまぶして揚げる"},
			}),
		build("sample-meat-2", "ポークジンジャー", "お肉",
			"https://images.unsplash.com/photo-1604908554169-6e7a3c3d3f52?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "豚ロース", AmountText: "2枚"},
				{ID: "i2", Name: "生姜", AmountText: "1片"},
			},
			[]Step{
				{ID: "s1", Title: "豚肉を焼く"},
				{ID: "s2", Title: "生姜だれを絡める"},
			}),
		build("sample-sea-1", "サーモンのムニエル", "魚介",
			"https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "サーモン", AmountText: "2切れ"},
				{ID: "i2", Name: "バター", AmountText: "10g"},
			},
			[]Step{
				{ID: "s1", Title: "塩胡椒で下味をつける"},
				{ID: "s2", Title: "バターで焼く"},
			}),
		build("sample-egg-1", "ふわとろオムライス", "卵",
			"https://images.unsplash.com/photo-1543353071-873f17a7a088?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "卵", AmountText: "2個"},
				{ID: "i2", Name: "ご飯", AmountText: "茶碗1杯"},
				{ID: "i3", Name: "ケチャップ", AmountText: "大さじ2"},
			},
			[]Step{
				{ID: "s1", Title: "チキンライスを作る"},
				{ID: "s2", Title: "卵で包む"},
			}),
		build("sample-salad-1", "シーザーサラダ", "サラダ",
			"https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "レタス", AmountText: "3枚"},
				{ID: "i2", Name: "クルトン", AmountText: "適量"},
			},
			[]Step{
				{ID: "s1", Title: "野菜を切る"},
				{ID: "s2", Title: "ドレッシングで和える"},
			}),
		build("sample-soup-1", "ミネストローネ", "スープ",
			"https://images.unsplash.com/photo-1547592180-85f173990554?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "トマト缶", AmountText: "1/2缶"},
				{ID: "i2", Name: "野菜", AmountText: "適量"},
			},
			[]Step{
				{ID: "s1", Title: "野菜を炒める"},
				{ID: "s2", Title: "煮込む"},
			}),
		build("sample-rice-1", "親子丼", "ご飯物",
			"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "鶏もも肉", AmountText: "120g"},
				{ID: "i2", Name: "卵", AmountText: "2個"},
			},
			[]Step{
				{ID: "s1", Title: "鶏肉と玉ねぎを煮る"},
				{ID: "s2", Title: "卵でとじる"},
			}),
		build("sample-noodles-1", "醤油ラーメン", "麺",
			"https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "中華麺", AmountText: "1玉"},
				{ID: "i2", Name: "スープ", AmountText: "300ml"},
			},
			[]Step{
				{ID: "s1", Title: "麺を茹でる"},
				{ID: "s2", Title: "スープに合わせる"},
			}),
		build("sample-bento-1", "彩りお弁当", "お弁当",
			"https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "ご飯", AmountText: "1人前"},
				{ID: "i2", Name: "おかず", AmountText: "数種類"},
			},
			[]Step{
				{ID: "s1", Title: "おかずを作る"},
				{ID: "s2", Title: "詰める"},
			}),
		build("sample-bread-1", "ガーリックトースト", "パン",
			"https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "食パン", AmountText: "1枚"},
				{ID: "i2", Name: "バター", AmountText: "10g"},
			},
			[]Step{
				{ID: "s1", Title: "バターを塗る"},
				{ID: "s2", Title: "トーストする"},
			}),
		build("sample-sweets-1", "チョコブラウニー", "お菓子",
			"https://images.unsplash.com/photo-1541781286675-42b85d8e5a5a?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "チョコ", AmountText: "100g"},
				{ID: "i2", Name: "卵", AmountText: "1個"},
			},
			[]Step{
				{ID: "s1", Title: "材料を混ぜる"},
				{ID: "s2", Title: "焼く"},
			}),
		build("sample-others-1", "簡単おつまみ", "その他",
			"https://images.unsplash.com/photo-1473093226795-af9932fe5856?auto=format&fit=crop&w=1200&q=80", false,
			[]IngredientLine{
				{ID: "i1", Name: "チーズ", AmountText: "適量"},
				{ID: "i2", Name: "ナッツ", AmountText: "適量"},
			},
			[]Step{
				{ID: "s1", Title: "盛り付ける"},
				{ID: "s2", Title: "ハーブを添える"},
			}),
	}
}
