package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSection(t *testing.T) {
	t.Run("bold headings", func(t *testing.T) {
		text := "**Ingredients:**\n- 1 cup rice\n- 2 cups water\n\n**Instructions:**\n1. Rinse the rice well.\n2. Boil water and add the rice."

		body, ok := ExtractSection(text, SectionIngredients)
		require.True(t, ok)
		assert.Equal(t, "- 1 cup rice\n- 2 cups water", body)

		body, ok = ExtractSection(text, SectionInstructions)
		require.True(t, ok)
		assert.Equal(t, "1. Rinse the rice well.\n2. Boil water and add the rice.", body)
	})

	t.Run("bare headings", func(t *testing.T) {
		text := "Ingredients:\n- 1 cup rice\nInstructions:\n1. Cook rice."

		body, ok := ExtractSection(text, SectionIngredients)
		require.True(t, ok)
		assert.Equal(t, "- 1 cup rice", body)

		body, ok = ExtractSection(text, SectionInstructions)
		require.True(t, ok)
		assert.Equal(t, "1. Cook rice.", body)
	})

	t.Run("bold section ends at any bold line", func(t *testing.T) {
		text := "**Ingredients:**\n- 2 eggs\n- 1 tbsp butter\n**Difficulty:** Easy enough for anyone\n**Chef Secret:** Use a nonstick pan always"

		body, ok := ExtractSection(text, SectionIngredients)
		require.True(t, ok)
		assert.Equal(t, "- 2 eggs\n- 1 tbsp butter", body)
	})

	t.Run("missing section", func(t *testing.T) {
		body, ok := ExtractSection("no sections here", SectionTips)
		assert.False(t, ok)
		assert.Empty(t, body)
	})
}

func TestParseLines(t *testing.T) {
	body := "- **2 cups** flour\n* salt\n• pepper\n1. Mix well\n2) Bake\n\n**Note**\nshort\nThis line has no bullet but is long enough"

	assert.Equal(t, []string{
		"2 cups flour",
		"salt",
		"pepper",
		"Mix well",
		"Bake",
		"This line has no bullet but is long enough",
	}, ParseLines(body))

	assert.Equal(t, []string{"Mix well", "Bake at 350F", "2.5 cups flour"},
		ParseLines("1.Mix well\n2)Bake at 350F\n2.5 cups flour"))

	assert.NotNil(t, ParseLines(""))
	assert.Empty(t, ParseLines(""))
}

func TestExtractNutrition(t *testing.T) {
	t.Run("canonical line", func(t *testing.T) {
		got := ExtractNutrition("**Total per serving:** 650 cal, 35g protein, 48g carbs, 22g fat")
		require.NotNil(t, got)
		assert.Equal(t, 650, *got.Calories)
		assert.Equal(t, 35, *got.Protein)
		assert.Equal(t, 48, *got.Carbs)
		assert.Equal(t, 22, *got.Fat)
		assert.Nil(t, got.Fiber)
		assert.Nil(t, got.Sugar)
		assert.Empty(t, got.Rating)
	})

	t.Run("canonical variants", func(t *testing.T) {
		got := ExtractNutrition("Total: 500 kcal, 20 g of protein, 60g carbohydrates, 15g fats")
		require.NotNil(t, got)
		assert.Equal(t, 500, *got.Calories)
		assert.Equal(t, 20, *got.Protein)
		assert.Equal(t, 60, *got.Carbs)
		assert.Equal(t, 15, *got.Fat)
	})

	t.Run("individual nutrients", func(t *testing.T) {
		got := ExtractNutrition("Nutrition:\nCalories: 420\nProtein: 30g\n12g fiber\nSugar: 5.6g")
		require.NotNil(t, got)
		assert.Equal(t, 420, *got.Calories)
		assert.Equal(t, 30, *got.Protein)
		assert.Nil(t, got.Carbs)
		assert.Nil(t, got.Fat)
		assert.Equal(t, 12, *got.Fiber)
		assert.Equal(t, 6, *got.Sugar)
	})

	t.Run("one nutrient per line", func(t *testing.T) {
		got := ExtractNutrition("Nutrition:\nCalories: 500\nProtein: 30g\nCarbs: 40g\nFat: 10g\nFiber: 5g\nSugar: 3g\nRating: C")
		require.NotNil(t, got)
		assert.Equal(t, 500, *got.Calories)
		assert.Equal(t, 30, *got.Protein)
		assert.Equal(t, 40, *got.Carbs)
		assert.Equal(t, 10, *got.Fat)
		assert.Equal(t, 5, *got.Fiber)
		assert.Equal(t, 3, *got.Sugar)
		assert.Equal(t, "C", got.Rating)
	})

	t.Run("rating", func(t *testing.T) {
		got := ExtractNutrition("Total per serving: 400 calories, 20g protein, 30g carbs, 10g fat\nNutrition rating: a")
		require.NotNil(t, got)
		assert.Equal(t, "A", got.Rating)
	})

	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, ExtractNutrition("Just some text"))
		assert.Nil(t, ExtractNutrition("**Nutrition Rating:** B"))
	})

	t.Run("zero calories treated as missing", func(t *testing.T) {
		assert.Nil(t, ExtractNutrition("Calories: 0"))
	})
}

func TestGenerateTags(t *testing.T) {
	got := GenerateTags("A grilled Mexican dinner, gluten free and vegan. Sauteed peppers on the side.")
	assert.Equal(t, []string{"mexican", "dinner", "vegan", "gluten-free", "grilled", "sautéed"}, got)

	assert.Equal(t, []string{"italian"}, GenerateTags("Italian italian ITALIAN"))
	assert.Equal(t, []string{"vegetarian"}, GenerateTags("a vegetarian lasagna"))
	assert.Equal(t, []string{"thai", "snack", "dessert", "appetizer", "keto"},
		GenerateTags("Great for snacks and desserts, ketogenic friendly, Thailand street food, appetizers"))

	assert.NotNil(t, GenerateTags("nothing to see"))
	assert.Empty(t, GenerateTags("nothing to see"))
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bold line", "**Lemon Pasta**\n\nIngredients: lemons", "Lemon Pasta"},
		{"skips section headings", "## Ingredients\n- rice\n## Beef Stew", "Beef Stew"},
		{"recipe prefix", "Recipe: Banana Bread\nIngredients: bananas", "Banana Bread"},
		{"recipe suffix", "Classic Pancakes Recipe\nserves 2", "Classic Pancakes"},
		{"heading with prefix", "# Recipe: Tomato Soup", "Tomato Soup"},
		{"first line", "Garden Salad\nmix everything", "Garden Salad"},
		{
			"phrase heuristic",
			"Let me walk you through how to make a fluffy omelette. It takes a couple of eggs and a little bit of patience to get it just right!",
			"Fluffy omelette",
		},
		{"too short", "abc", DefaultTitle},
		{"skips bullet lines", "Ingredients:\n- 2 eggs\n- 1 tbsp butter", DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveTitle(tt.text))
		})
	}
}
