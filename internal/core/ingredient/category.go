package ingredient

import "strings"

// Category 購物清單分類
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryProtein Category = "protein"
	CategoryDairy   Category = "dairy"
	CategoryGrains  Category = "grains"
	CategorySpices  Category = "spices"
	CategoryOther   Category = "other"
)

// CategoryOrder 購物清單的分類排列順序
var CategoryOrder = []Category{
	CategoryProduce,
	CategoryProtein,
	CategoryDairy,
	CategoryGrains,
	CategorySpices,
	CategoryOther,
}

var categoryEmoji = map[Category]string{
	CategoryProduce: "🥬",
	CategoryProtein: "🥩",
	CategoryDairy:   "🥛",
	CategoryGrains:  "🌾",
	CategorySpices:  "🧂",
	CategoryOther:   "📦",
}

type categoryRule struct {
	category Category
	keywords []string
}

// 依序比對，第一個命中的分類勝出
var categoryRules = []categoryRule{
	{CategoryProduce, []string{
		"tomato", "onion", "garlic", "lettuce", "spinach", "carrot", "bell pepper", "jalapeno",
		"potato", "apple", "banana", "lemon", "lime", "orange", "berry", "berries", "grape",
		"avocado", "cucumber", "celery", "mushroom", "broccoli", "cauliflower", "zucchini",
		"squash", "eggplant", "kale", "cabbage", "corn", "peas", "green bean", "scallion",
		"shallot", "leek", "ginger", "basil", "cilantro", "parsley", "mint", "dill", "herb",
		"mango", "pineapple", "peach", "pear", "fruit", "vegetable", "arugula", "radish",
	}},
	{CategoryProtein, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "fish", "salmon", "tuna", "cod", "shrimp",
		"prawn", "crab", "bacon", "sausage", "ham", "steak", "egg", "tofu", "tempeh", "bean",
		"lentil", "chickpea", "meat",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "parmesan", "mozzarella",
		"cheddar", "feta", "ricotta", "ghee",
	}},
	{CategoryGrains, []string{
		"rice", "pasta", "spaghetti", "noodle", "bread", "flour", "oat", "quinoa", "tortilla",
		"couscous", "barley", "cereal", "cracker", "bun", "bagel", "grain",
	}},
	{CategorySpices, []string{
		"salt", "pepper", "cumin", "paprika", "oregano", "thyme", "rosemary", "cinnamon",
		"nutmeg", "turmeric", "curry", "chili powder", "chili flakes", "spice", "seasoning",
		"bay leaf", "clove", "cardamom", "coriander", "vanilla",
	}},
}

// Categorize 依關鍵字判斷食材分類，並回傳對應的 emoji
func Categorize(name string) (Category, string) {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category, categoryEmoji[rule.category]
			}
		}
	}
	return CategoryOther, categoryEmoji[CategoryOther]
}

// Emoji 取得分類的 emoji，未知分類使用 other 的 emoji
func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return categoryEmoji[CategoryOther]
}
