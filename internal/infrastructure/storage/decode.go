package storage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"
)

func encodeRecipe(r *recipe.ParsedRecipe) (content, nutrition, tags string, err error) {
	if content, err = common.ToJSON(r); err != nil {
		return "", "", "", fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if r.Nutrition != nil {
		if nutrition, err = common.ToJSON(r.Nutrition); err != nil {
			return "", "", "", fmt.Errorf("failed to marshal nutrition: %w", err)
		}
	}
	if tags, err = common.ToJSON(r.Tags); err != nil {
		return "", "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return content, nutrition, tags, nil
}

func decodeRecipe(content []byte) (*recipe.ParsedRecipe, error) {
	var r recipe.ParsedRecipe
	if err := common.ParseJSONBytes(content, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &r, nil
}

// decodeIngredientLines 只取出食材清單，資料損壞時回傳 nil，非字串元素捨棄
func decodeIngredientLines(recipeID string, content []byte) []string {
	var doc struct {
		Ingredients json.RawMessage `json:"ingredients"`
	}
	if err := common.ParseJSONBytes(content, &doc); err != nil {
		common.LogWarn("食譜內容無法解析",
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return nil
	}
	if len(doc.Ingredients) == 0 || string(doc.Ingredients) == "null" {
		common.LogWarn("食譜缺少食材清單", zap.String("recipe_id", recipeID))
		return nil
	}

	var items []interface{}
	if err := common.ParseJSONBytes(doc.Ingredients, &items); err != nil {
		common.LogWarn("食材清單格式錯誤",
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return nil
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			common.LogWarn("略過非字串食材",
				zap.String("recipe_id", recipeID),
				zap.Int("index", i),
			)
			continue
		}
		lines = append(lines, s)
	}
	return lines
}
