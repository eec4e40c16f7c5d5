package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"recipe-assistant/internal/pkg/common"
)

// ParsedRecipe 從模型輸出還原的結構化食譜
type ParsedRecipe struct {
	Title        string         `json:"title"`
	Ingredients  []string       `json:"ingredients"`
	Instructions []string       `json:"instructions"`
	Tips         []string       `json:"tips"`
	Servings     int            `json:"servings"`
	PrepTime     string         `json:"prepTime,omitempty"`
	CookTime     string         `json:"cookTime,omitempty"`
	TotalTime    string         `json:"totalTime,omitempty"`
	Nutrition    *NutritionInfo `json:"nutrition,omitempty"`
	Tags         []string       `json:"tags"`
}

// 本服務只產生單人份食譜
const maxServings = 1

var recipeKeywords = regexp.MustCompile(`(?i)\b(?:ingredients?|instructions?|directions?|steps?|recipes?|cook(?:ing|ed)?|preparation|prep|serves|servings?|yield|calories|kcal|proteins?|carbs?|carbohydrates?|fats?|bake|simmer|boil|tablespoons?|teaspoons?|tbsp|tsp|cups?)\b`)

var servingsPattern = regexp.MustCompile(`(?i)\b(?:servings?|serves|yield)\b[\s*:]*(?:about\s+)?(\d+)`)

type timeRule struct {
	assign  func(r *ParsedRecipe, v string)
	pattern *regexp.Regexp
}

var timeRules = []timeRule{
	{
		assign:  func(r *ParsedRecipe, v string) { r.PrepTime = v },
		pattern: regexp.MustCompile(`(?i)\bprep(?:aration)?\s*time\b[\s*:]*([^\n|;,]+)`),
	},
	{
		assign:  func(r *ParsedRecipe, v string) { r.CookTime = v },
		pattern: regexp.MustCompile(`(?i)\bcook(?:ing)?\s*time\b[\s*:]*([^\n|;,]+)`),
	},
	{
		assign:  func(r *ParsedRecipe, v string) { r.TotalTime = v },
		pattern: regexp.MustCompile(`(?i)\btotal\s*time\b[\s*:]*([^\n|;,]+)`),
	},
}

// IsLikelyRecipe 文字中是否出現任何食譜相關關鍵字
func IsLikelyRecipe(text string) bool {
	return recipeKeywords.MatchString(text)
}

// Parse 將模型輸出解析為食譜，第二個回傳值為 false 表示文字不像食譜
func Parse(text string) (parsed *ParsedRecipe, ok bool) {
	if !IsLikelyRecipe(text) {
		return nil, false
	}

	defer func() {
		if r := recover(); r != nil {
			common.LogError("食譜解析失敗，改用最小輸出",
				zap.Any("panic", r),
				zap.Int("text_length", len(text)),
			)
			parsed, ok = Fallback(text), true
		}
	}()

	parsed = &ParsedRecipe{
		Title:        resolveTitle(text),
		Ingredients:  sectionItems(text, SectionIngredients),
		Instructions: sectionItems(text, SectionInstructions),
		Tips:         sectionItems(text, SectionTips),
		Servings:     extractServings(text),
		Nutrition:    ExtractNutrition(text),
		Tags:         GenerateTags(text),
	}
	for _, rule := range timeRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			if v := cleanTime(m[1]); v != "" {
				rule.assign(parsed, v)
			}
		}
	}
	return parsed, true
}

// Fallback 產生最小可用的食譜，標題取第一行
func Fallback(text string) *ParsedRecipe {
	title := DefaultTitle
	for _, line := range strings.Split(text, "\n") {
		if candidate := cleanTitle(line); candidate != "" {
			if validTitle(candidate) {
				title = candidate
			}
			break
		}
	}
	return &ParsedRecipe{
		Title:        title,
		Ingredients:  []string{"See full response for ingredients"},
		Instructions: []string{"See full response for instructions"},
		Tips:         []string{},
		Servings:     maxServings,
		Tags:         []string{},
	}
}

func sectionItems(text string, section Section) []string {
	body, ok := ExtractSection(text, section)
	if !ok {
		return []string{}
	}
	return ParseLines(body)
}

func extractServings(text string) int {
	m := servingsPattern.FindStringSubmatch(text)
	if m == nil {
		return maxServings
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > maxServings {
		return maxServings
	}
	return n
}

func cleanTime(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*.:"))
}

// String 方便日誌輸出
func (r *ParsedRecipe) String() string {
	return fmt.Sprintf("%s (%d ingredients, %d steps)", r.Title, len(r.Ingredients), len(r.Instructions))
}
