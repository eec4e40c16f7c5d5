package grocery

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"recipe-assistant/internal/core/ingredient"
	"recipe-assistant/internal/pkg/common"
)

// entry 彙整過程中的單一食材
type entry struct {
	item     *AggregatedIngredient
	category ingredient.Category
}

// Aggregate 合併所有餐點的食材，依分類與名稱排序後回傳
func Aggregate(meals []Meal) []*CategoryBucket {
	byKey := make(map[string]*entry)
	// 保留第一次出現的順序，讓未知分類的排列可以重現
	keys := make([]string, 0)

	for _, meal := range meals {
		if meal.IngredientLines == nil {
			common.LogWarn("餐點缺少食材資料，略過",
				zap.String("recipe_id", meal.RecipeID),
			)
			continue
		}
		for i, line := range meal.IngredientLines {
			key, added, err := addLine(byKey, meal, line)
			if err != nil {
				common.LogWarn("食材解析失敗，略過",
					zap.String("recipe_id", meal.RecipeID),
					zap.Int("line", i),
					zap.Error(err),
				)
				continue
			}
			if added {
				keys = append(keys, key)
			}
		}
	}

	return bucketize(byKey, keys)
}

// addLine 將一行食材併入 byKey，added 表示新增了一個鍵
func addLine(byKey map[string]*entry, meal Meal, line string) (key string, added bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse ingredient %q: %v", line, r)
		}
	}()

	if strings.TrimSpace(line) == "" {
		return "", false, fmt.Errorf("empty ingredient line")
	}

	parsed := ingredient.Parse(line)
	key = strings.ToLower(parsed.Name)

	if existing, ok := byKey[key]; ok {
		existing.item.Quantity = MergeQuantity(existing.item.Quantity, parsed.Quantity)
		existing.item.RecipeIDs = appendUnique(existing.item.RecipeIDs, meal.RecipeID)
		existing.item.Recipes = appendUnique(existing.item.Recipes, meal.RecipeTitle)
		return key, false, nil
	}

	category, _ := ingredient.Categorize(parsed.Name)
	byKey[key] = &entry{
		item: &AggregatedIngredient{
			Name:      parsed.Name,
			Quantity:  parsed.Quantity,
			RecipeIDs: appendUnique(nil, meal.RecipeID),
			Recipes:   appendUnique(nil, meal.RecipeTitle),
		},
		category: category,
	}
	return key, true, nil
}

func bucketize(byKey map[string]*entry, keys []string) []*CategoryBucket {
	grouped := make(map[ingredient.Category][]*AggregatedIngredient)
	seen := make([]ingredient.Category, 0)
	for _, key := range keys {
		e := byKey[key]
		if _, ok := grouped[e.category]; !ok {
			seen = append(seen, e.category)
		}
		grouped[e.category] = append(grouped[e.category], e.item)
	}

	order := make([]ingredient.Category, 0, len(seen))
	known := make(map[ingredient.Category]bool, len(ingredient.CategoryOrder))
	for _, c := range ingredient.CategoryOrder {
		known[c] = true
		if _, ok := grouped[c]; ok {
			order = append(order, c)
		}
	}
	for _, c := range seen {
		if !known[c] {
			order = append(order, c)
		}
	}

	col := collate.New(language.English, collate.IgnoreCase)
	buckets := make([]*CategoryBucket, 0, len(order))
	for _, c := range order {
		items := grouped[c]
		sortByName(col, items)
		buckets = append(buckets, &CategoryBucket{
			Category: c,
			Emoji:    c.Emoji(),
			Items:    items,
		})
	}
	return buckets
}

func sortByName(col *collate.Collator, items []*AggregatedIngredient) {
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(items[i].Name, items[j].Name) < 0
	})
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
