package recipe

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/pkg/common"
)

type scriptedGenerator struct {
	replies []string
	prompts []string
}

func (g *scriptedGenerator) ProcessRequest(_ context.Context, prompt string) (*aiservice.Response, error) {
	g.prompts = append(g.prompts, prompt)
	i := len(g.prompts) - 1
	if i >= len(g.replies) {
		i = len(g.replies) - 1
	}
	return &aiservice.Response{Content: g.replies[i]}, nil
}

type fakeStore struct {
	mu      sync.Mutex
	recipes map[string]*StoredRecipe
}

func newFakeStore() *fakeStore {
	return &fakeStore{recipes: make(map[string]*StoredRecipe)}
}

func (s *fakeStore) SaveRecipe(_ context.Context, r *ParsedRecipe) (*StoredRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := &StoredRecipe{ID: fmt.Sprintf("r%d", len(s.recipes)+1), CreatedAt: time.Now(), ParsedRecipe: r}
	s.recipes[stored.ID] = stored
	return stored, nil
}

func (s *fakeStore) GetRecipe(_ context.Context, id string) (*StoredRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.recipes[id]; ok {
		return r, nil
	}
	return nil, common.ErrRecipeNotFound
}

const noNutrition = "# Plain Toast\n### Ingredients\n- 1 slice bread\n### Instructions\n1. Toast the bread."

func TestService_GenerateRetriesUntilNutrition(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{noNutrition, sampleRecipe}}
	svc := NewService(gen, newFakeStore(), 3)

	got, err := svc.Generate(context.Background(), GenerateRequest{DishName: "garlic chicken"})
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 2)
	assert.NotEqual(t, gen.prompts[0], gen.prompts[1])
	assert.Equal(t, "Creamy Garlic Chicken", got.Title)
	require.NotNil(t, got.Nutrition)
	assert.Equal(t, 650, *got.Nutrition.Calories)
}

func TestService_GenerateKeepsLastAttempt(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{noNutrition}}
	svc := NewService(gen, newFakeStore(), 2)

	got, err := svc.Generate(context.Background(), GenerateRequest{DishName: "toast"})
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 2)
	assert.Equal(t, "Plain Toast", got.Title)
	assert.Nil(t, got.Nutrition)
}

func TestService_GenerateFallsBackWhenNotARecipe(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"Sorry, I can only talk about the weather."}}
	svc := NewService(gen, newFakeStore(), 1)

	got, err := svc.Generate(context.Background(), GenerateRequest{DishName: "soup"})
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can only talk about the weather.", got.Title)
	assert.NotEmpty(t, got.Ingredients)
}

func TestService_GenerateRequiresDishName(t *testing.T) {
	svc := NewService(&scriptedGenerator{replies: []string{sampleRecipe}}, newFakeStore(), 1)

	_, err := svc.Generate(context.Background(), GenerateRequest{})
	assert.True(t, common.IsValidationError(err))
}

func TestService_ImportAndGet(t *testing.T) {
	svc := NewService(&scriptedGenerator{replies: []string{""}}, newFakeStore(), 1)
	ctx := context.Background()

	stored, err := svc.Import(ctx, sampleRecipe)
	require.NoError(t, err)

	got, err := svc.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.Import(ctx, "The weather today is sunny.")
	assert.ErrorIs(t, err, common.ErrNotARecipe)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestBuildPrompt(t *testing.T) {
	req := GenerateRequest{DishName: " pad thai ", Cuisine: "thai", DietaryRestrictions: []string{"vegan", "gluten-free"}}

	first := buildPrompt(req, 1)
	assert.Contains(t, first, "pad thai.")
	assert.Contains(t, first, "Cuisine: thai.")
	assert.Contains(t, first, "vegan, gluten-free")
	assert.NotContains(t, first, "attempt")

	assert.Contains(t, buildPrompt(req, 2), "(attempt 2)")
}
