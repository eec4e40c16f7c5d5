package recipe

import "regexp"

type tagRule struct {
	tag     string
	pattern *regexp.Regexp
}

// keyword 不加字界，"snacks"、"ketogenic" 也算命中
func keyword(tag, pattern string) tagRule {
	return tagRule{tag: tag, pattern: regexp.MustCompile(`(?i)(?:` + pattern + `)`)}
}

// 依序輸出：料理風格、餐別、飲食限制、烹調方式
var tagRules = []tagRule{
	keyword("italian", "italian"),
	keyword("chinese", "chinese"),
	keyword("mexican", "mexican"),
	keyword("indian", "indian"),
	keyword("french", "french"),
	keyword("thai", "thai"),
	keyword("japanese", "japanese"),
	keyword("mediterranean", "mediterranean"),
	keyword("american", "american"),

	keyword("breakfast", "breakfast"),
	keyword("lunch", "lunch"),
	keyword("dinner", "dinner"),
	keyword("snack", "snack"),
	keyword("dessert", "dessert"),
	keyword("appetizer", "appetizer"),

	keyword("vegetarian", "vegetarian"),
	keyword("vegan", "vegan"),
	keyword("gluten-free", `gluten[\s-]?free`),
	keyword("keto", "keto"),
	keyword("paleo", "paleo"),
	keyword("dairy-free", `dairy[\s-]?free`),

	keyword("baked", "baked"),
	keyword("grilled", "grilled"),
	keyword("fried", "fried"),
	keyword("steamed", "steamed"),
	keyword("roasted", "roasted"),
	keyword("sautéed", `saut(?:é|e)ed`),
}

// GenerateTags 依關鍵字產生標籤，順序固定且不重複
func GenerateTags(text string) []string {
	tags := []string{}
	for _, rule := range tagRules {
		if rule.pattern.MatchString(text) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}
