package grocery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipe-assistant/internal/pkg/common"
)

// MealSource 讀取餐點計畫中每道菜的食材
type MealSource interface {
	ListPlanMeals(ctx context.Context, planID string) ([]Meal, error)
}

// Service 購物清單服務
type Service struct {
	source MealSource
}

// NewService 創建購物清單服務
func NewService(source MealSource) *Service {
	return &Service{source: source}
}

// BuildList 彙整餐點計畫的購物清單
func (s *Service) BuildList(ctx context.Context, planID string) (*List, error) {
	meals, err := s.source.ListPlanMeals(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list meals for plan %s: %w", planID, err)
	}

	buckets := Aggregate(meals)
	total := 0
	for _, b := range buckets {
		total += len(b.Items)
	}

	common.LogInfo("購物清單已產生",
		zap.String("plan_id", planID),
		zap.Int("meals", len(meals)),
		zap.Int("items", total),
	)

	return &List{
		PlanID:     planID,
		Categories: buckets,
		TotalItems: total,
	}, nil
}
