// Package storage 保存食譜與餐點計畫，並提供購物清單需要的食材資料
package storage

import (
	"context"
	"time"

	"recipe-assistant/internal/core/grocery"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/infrastructure/config"
)

// MealPlan 餐點計畫
type MealPlan struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Entries   []MealPlanEntry `json:"entries"`
}

// MealPlanEntry 計畫中的一餐
type MealPlanEntry struct {
	ID          string `json:"id" db:"id"`
	PlanID      string `json:"planId" db:"plan_id"`
	RecipeID    string `json:"recipeId" db:"recipe_id"`
	RecipeTitle string `json:"recipeTitle" db:"title"`
	Day         string `json:"day" db:"day"`
	MealType    string `json:"mealType" db:"meal_type"`
	Position    int    `json:"position" db:"position"`
}

// NewEntry 新增餐點的參數
type NewEntry struct {
	RecipeID string `json:"recipe_id" binding:"required"`
	Day      string `json:"day"`
	MealType string `json:"meal_type"`
}

// Store 儲存層介面
type Store interface {
	SaveRecipe(ctx context.Context, r *recipe.ParsedRecipe) (*recipe.StoredRecipe, error)
	GetRecipe(ctx context.Context, id string) (*recipe.StoredRecipe, error)
	CreateMealPlan(ctx context.Context, name string) (*MealPlan, error)
	AddMealPlanEntry(ctx context.Context, planID string, entry NewEntry) (*MealPlanEntry, error)
	GetMealPlan(ctx context.Context, id string) (*MealPlan, error)
	ListPlanMeals(ctx context.Context, planID string) ([]grocery.Meal, error)
	Ping(ctx context.Context) error
	Close() error
}

// New 依設定建立 SQL 儲存
func New(cfg *config.DatabaseConfig) (Store, error) {
	store, err := NewSQLStore(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return store, nil
}
