package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/pkg/common"
)

// StoredRecipe 已儲存的食譜
type StoredRecipe struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	*ParsedRecipe
}

// Store 食譜服務需要的儲存操作
type Store interface {
	SaveRecipe(ctx context.Context, r *ParsedRecipe) (*StoredRecipe, error)
	GetRecipe(ctx context.Context, id string) (*StoredRecipe, error)
}

// Generator 產生模型回覆
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string) (*aiservice.Response, error)
}

// GenerateRequest 生成食譜的請求
type GenerateRequest struct {
	DishName            string   `json:"dish_name" binding:"required"`
	Cuisine             string   `json:"cuisine"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Notes               string   `json:"notes"`
}

// Service 食譜服務
type Service struct {
	ai          Generator
	store       Store
	maxAttempts int
}

// NewService 創建新的食譜服務
func NewService(ai Generator, store Store, maxAttempts int) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		ai:          ai,
		store:       store,
		maxAttempts: maxAttempts,
	}
}

// Generate 請模型產生食譜，缺少營養資訊時重試，最後儲存
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*StoredRecipe, error) {
	if strings.TrimSpace(req.DishName) == "" {
		return nil, common.NewValidationError("dish_name is required")
	}

	var parsed *ParsedRecipe
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err := s.ai.ProcessRequest(ctx, buildPrompt(req, attempt))
		if err != nil {
			return nil, err
		}

		p, ok := Parse(resp.Content)
		if !ok {
			common.LogWarn("模型回覆不像食譜，使用最小輸出",
				zap.String("dish_name", req.DishName),
				zap.Int("attempt", attempt),
			)
			p = Fallback(resp.Content)
		}
		parsed = p

		if p.Nutrition.HasNutrients() {
			break
		}
		common.LogWarn("食譜缺少營養資訊",
			zap.String("dish_name", req.DishName),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
		)
	}

	stored, err := s.store.SaveRecipe(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("save recipe: %w", err)
	}
	common.LogInfo("食譜已儲存",
		zap.String("recipe_id", stored.ID),
		zap.String("title", stored.Title),
	)
	return stored, nil
}

// Import 解析使用者提供的文字並儲存
func (s *Service) Import(ctx context.Context, text string) (*StoredRecipe, error) {
	parsed, ok := Parse(text)
	if !ok {
		return nil, common.ErrNotARecipe
	}

	stored, err := s.store.SaveRecipe(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("save recipe: %w", err)
	}
	return stored, nil
}

// Get 取得已儲存的食譜
func (s *Service) Get(ctx context.Context, id string) (*StoredRecipe, error) {
	return s.store.GetRecipe(ctx, id)
}

func buildPrompt(req GenerateRequest, attempt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a single-serving recipe for %s.", strings.TrimSpace(req.DishName))
	if req.Cuisine != "" {
		fmt.Fprintf(&b, " Cuisine: %s.", req.Cuisine)
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, " Dietary restrictions: %s.", strings.Join(req.DietaryRestrictions, ", "))
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, " Notes: %s.", req.Notes)
	}
	// 重試時 prompt 不同，不會拿到同一份快取
	if attempt > 1 {
		fmt.Fprintf(&b, " (attempt %d) Include the Nutrition section with the **Total per serving:** line.", attempt)
	}
	return b.String()
}
