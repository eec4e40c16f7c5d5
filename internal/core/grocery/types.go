// Package grocery 將多份食譜的食材彙整成分類購物清單
package grocery

import "recipe-assistant/internal/core/ingredient"

// Meal 餐點計畫中的一道菜，IngredientLines 為 nil 表示資料缺失
type Meal struct {
	RecipeID        string   `json:"recipeId"`
	RecipeTitle     string   `json:"recipeTitle"`
	IngredientLines []string `json:"ingredientLines"`
}

// AggregatedIngredient 合併後的食材
type AggregatedIngredient struct {
	Name      string   `json:"name"`
	Quantity  string   `json:"quantity"`
	RecipeIDs []string `json:"recipeIds"`
	Recipes   []string `json:"recipes"`
}

// CategoryBucket 同一分類的食材
type CategoryBucket struct {
	Category ingredient.Category     `json:"category"`
	Emoji    string                  `json:"emoji"`
	Items    []*AggregatedIngredient `json:"items"`
}

// List 購物清單回應
type List struct {
	PlanID     string            `json:"planId"`
	Categories []*CategoryBucket `json:"categories"`
	TotalItems int               `json:"totalItems"`
}
