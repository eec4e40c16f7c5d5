package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"
)

type storeCase struct {
	name string
	open func(t *testing.T) Store
	// putRaw 直接寫入原始 JSON 內容，模擬舊資料或損壞資料
	putRaw func(t *testing.T, s Store, id, title, content string)
}

func storeCases() []storeCase {
	return []storeCase{
		{
			name: "memory",
			open: func(t *testing.T) Store { return NewMemoryStore() },
			putRaw: func(t *testing.T, s Store, id, title, content string) {
				m := s.(*MemoryStore)
				m.mu.Lock()
				defer m.mu.Unlock()
				m.recipes[id] = &memoryRecipe{title: title, content: []byte(content), createdAt: time.Now()}
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) Store {
				s, err := NewSQLStore("sqlite", ":memory:")
				require.NoError(t, err)
				return s
			},
			putRaw: func(t *testing.T, s Store, id, title, content string) {
				db := s.(*SQLStore).db
				_, err := db.Exec(db.Rebind(
					"INSERT INTO recipes (id, title, content_json, tags, created_at) VALUES (?, ?, ?, '[]', ?)"),
					id, title, content, time.Now().UnixMilli())
				require.NoError(t, err)
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func sampleParsed(title string, ingredients ...string) *recipe.ParsedRecipe {
	return &recipe.ParsedRecipe{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: []string{"Cook everything."},
		Tips:         []string{},
		Servings:     1,
		CookTime:     "20 minutes",
		Nutrition:    &recipe.NutritionInfo{Calories: intPtr(420), Protein: intPtr(30), Rating: "B"},
		Tags:         []string{"dinner"},
	}
}

func TestStore_RecipeRoundTrip(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.open(t)
			defer s.Close()
			ctx := context.Background()

			saved, err := s.SaveRecipe(ctx, sampleParsed("Chicken Rice", "1 lb chicken", "2 cups rice"))
			require.NoError(t, err)
			assert.NotEmpty(t, saved.ID)

			got, err := s.GetRecipe(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, got.ID)
			assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, saved.ParsedRecipe, got.ParsedRecipe)

			_, err = s.GetRecipe(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrRecipeNotFound)
		})
	}
}

func TestStore_MealPlanEntriesKeepOrder(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.open(t)
			defer s.Close()
			ctx := context.Background()

			a, err := s.SaveRecipe(ctx, sampleParsed("Pasta", "8 oz pasta"))
			require.NoError(t, err)
			b, err := s.SaveRecipe(ctx, sampleParsed("Salad", "1 head lettuce"))
			require.NoError(t, err)

			plan, err := s.CreateMealPlan(ctx, "Week 1")
			require.NoError(t, err)
			assert.Empty(t, plan.Entries)

			first, err := s.AddMealPlanEntry(ctx, plan.ID, NewEntry{RecipeID: b.ID, Day: "monday", MealType: "lunch"})
			require.NoError(t, err)
			assert.Equal(t, 0, first.Position)
			assert.Equal(t, "Salad", first.RecipeTitle)

			second, err := s.AddMealPlanEntry(ctx, plan.ID, NewEntry{RecipeID: a.ID, Day: "monday", MealType: "dinner"})
			require.NoError(t, err)
			assert.Equal(t, 1, second.Position)

			got, err := s.GetMealPlan(ctx, plan.ID)
			require.NoError(t, err)
			assert.Equal(t, "Week 1", got.Name)
			require.Len(t, got.Entries, 2)
			assert.Equal(t, *first, got.Entries[0])
			assert.Equal(t, *second, got.Entries[1])

			meals, err := s.ListPlanMeals(ctx, plan.ID)
			require.NoError(t, err)
			require.Len(t, meals, 2)
			assert.Equal(t, b.ID, meals[0].RecipeID)
			assert.Equal(t, []string{"1 head lettuce"}, meals[0].IngredientLines)
			assert.Equal(t, "Pasta", meals[1].RecipeTitle)
		})
	}
}

func TestStore_MealPlanErrors(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.open(t)
			defer s.Close()
			ctx := context.Background()

			_, err := s.GetMealPlan(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrMealPlanNotFound)

			_, err = s.ListPlanMeals(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrMealPlanNotFound)

			r, err := s.SaveRecipe(ctx, sampleParsed("Soup", "1 onion"))
			require.NoError(t, err)
			_, err = s.AddMealPlanEntry(ctx, "missing", NewEntry{RecipeID: r.ID})
			assert.ErrorIs(t, err, common.ErrMealPlanNotFound)

			plan, err := s.CreateMealPlan(ctx, "Empty")
			require.NoError(t, err)
			_, err = s.AddMealPlanEntry(ctx, plan.ID, NewEntry{RecipeID: "missing"})
			assert.ErrorIs(t, err, common.ErrRecipeNotFound)

			meals, err := s.ListPlanMeals(ctx, plan.ID)
			require.NoError(t, err)
			assert.Empty(t, meals)
		})
	}
}

func TestStore_ListPlanMealsToleratesBadContent(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.open(t)
			defer s.Close()
			ctx := context.Background()

			tc.putRaw(t, s, "broken", "Broken", `{"title": "Broken", "ingredients": [`)
			tc.putRaw(t, s, "no-ingredients", "Bare", `{"title": "Bare"}`)
			tc.putRaw(t, s, "mixed", "Mixed", `{"title": "Mixed", "ingredients": ["2 eggs", 3, null, "1 cup milk"]}`)

			plan, err := s.CreateMealPlan(ctx, "Legacy")
			require.NoError(t, err)
			for _, id := range []string{"broken", "no-ingredients", "mixed"} {
				_, err := s.AddMealPlanEntry(ctx, plan.ID, NewEntry{RecipeID: id})
				require.NoError(t, err)
			}

			meals, err := s.ListPlanMeals(ctx, plan.ID)
			require.NoError(t, err)
			require.Len(t, meals, 3)
			assert.Nil(t, meals[0].IngredientLines)
			assert.Nil(t, meals[1].IngredientLines)
			assert.Equal(t, []string{"2 eggs", "1 cup milk"}, meals[2].IngredientLines)
		})
	}
}

func TestStore_Ping(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.open(t)
			defer s.Close()
			assert.NoError(t, s.Ping(context.Background()))
		})
	}
}

func TestNewSQLStore_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLStore("mysql", "whatever")
	assert.Error(t, err)
}
