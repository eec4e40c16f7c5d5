package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipe-assistant/internal/core/grocery"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"
)

type memoryRecipe struct {
	title     string
	content   []byte
	createdAt time.Time
}

// MemoryStore 記憶體儲存，內容以 JSON 保存，行為與 SQLStore 一致
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]*memoryRecipe
	plans   map[string]*MealPlan
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes: make(map[string]*memoryRecipe),
		plans:   make(map[string]*MealPlan),
	}
}

// SaveRecipe 儲存食譜
func (m *MemoryStore) SaveRecipe(_ context.Context, r *recipe.ParsedRecipe) (*recipe.StoredRecipe, error) {
	content, _, _, err := encodeRecipe(r)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Millisecond)

	m.mu.Lock()
	m.recipes[id] = &memoryRecipe{title: r.Title, content: []byte(content), createdAt: createdAt}
	m.mu.Unlock()

	return &recipe.StoredRecipe{ID: id, CreatedAt: createdAt, ParsedRecipe: r}, nil
}

// GetRecipe 依 ID 取得食譜
func (m *MemoryStore) GetRecipe(_ context.Context, id string) (*recipe.StoredRecipe, error) {
	m.mu.RLock()
	stored, ok := m.recipes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, common.ErrRecipeNotFound
	}

	parsed, err := decodeRecipe(stored.content)
	if err != nil {
		return nil, err
	}
	return &recipe.StoredRecipe{ID: id, CreatedAt: stored.createdAt, ParsedRecipe: parsed}, nil
}

// CreateMealPlan 建立餐點計畫
func (m *MemoryStore) CreateMealPlan(_ context.Context, name string) (*MealPlan, error) {
	plan := &MealPlan{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Entries:   []MealPlanEntry{},
	}

	m.mu.Lock()
	m.plans[plan.ID] = plan
	m.mu.Unlock()

	return copyPlan(plan), nil
}

// AddMealPlanEntry 在計畫末尾加入一餐
func (m *MemoryStore) AddMealPlanEntry(_ context.Context, planID string, entry NewEntry) (*MealPlanEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.plans[planID]
	if !ok {
		return nil, common.ErrMealPlanNotFound
	}
	stored, ok := m.recipes[entry.RecipeID]
	if !ok {
		return nil, common.ErrRecipeNotFound
	}

	created := MealPlanEntry{
		ID:          uuid.NewString(),
		PlanID:      planID,
		RecipeID:    entry.RecipeID,
		RecipeTitle: stored.title,
		Day:         entry.Day,
		MealType:    entry.MealType,
		Position:    len(plan.Entries),
	}
	plan.Entries = append(plan.Entries, created)
	return &created, nil
}

// GetMealPlan 取得計畫
func (m *MemoryStore) GetMealPlan(_ context.Context, id string) (*MealPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, common.ErrMealPlanNotFound
	}
	return copyPlan(plan), nil
}

// ListPlanMeals 讀出計畫中每道菜的食材清單
func (m *MemoryStore) ListPlanMeals(_ context.Context, planID string) ([]grocery.Meal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[planID]
	if !ok {
		return nil, common.ErrMealPlanNotFound
	}

	meals := make([]grocery.Meal, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		stored := m.recipes[e.RecipeID]
		meals = append(meals, grocery.Meal{
			RecipeID:        e.RecipeID,
			RecipeTitle:     stored.title,
			IngredientLines: decodeIngredientLines(e.RecipeID, stored.content),
		})
	}
	return meals, nil
}

// Ping 記憶體儲存永遠可用
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close 無需釋放資源
func (m *MemoryStore) Close() error { return nil }

func copyPlan(p *MealPlan) *MealPlan {
	cp := *p
	cp.Entries = append([]MealPlanEntry{}, p.Entries...)
	return &cp
}
