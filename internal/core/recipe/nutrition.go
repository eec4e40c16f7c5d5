package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NutritionInfo 每份營養資訊，缺少的欄位不輸出
type NutritionInfo struct {
	Calories *int   `json:"calories,omitempty"`
	Protein  *int   `json:"protein,omitempty"`
	Carbs    *int   `json:"carbs,omitempty"`
	Fat      *int   `json:"fat,omitempty"`
	Fiber    *int   `json:"fiber,omitempty"`
	Sugar    *int   `json:"sugar,omitempty"`
	Rating   string `json:"rating,omitempty"`
}

// HasNutrients 是否至少含有一項數值
func (n *NutritionInfo) HasNutrients() bool {
	if n == nil {
		return false
	}
	return n.Calories != nil || n.Protein != nil || n.Carbs != nil ||
		n.Fat != nil || n.Fiber != nil || n.Sugar != nil
}

const amount = `(\d+(?:\.\d+)?)`

const (
	caloriesUnit = `k?cal(?:orie)?s?`
	proteinWord  = `proteins?`
	carbsWord    = `carb(?:ohydrate)?s?`
	fatWord      = `fats?`
	fiberWord    = `fib(?:er|re)`
	sugarWord    = `sugars?`
)

// 每日總量行：Total per serving: 650 cal, 45g protein, 30g carbs, 22g fat
var canonicalTotals = regexp.MustCompile(`(?i)(?:total(?:\s*per\s*serving)?|per\s*serving)[\s*:]*` +
	amount + `\s*` + caloriesUnit + `\b[\s,]*` +
	amount + `\s*g\s*(?:of\s+)?` + proteinWord + `\b[\s,]*` +
	amount + `\s*g\s*(?:of\s+)?` + carbsWord + `\b[\s,]*(?:and\s+)?` +
	amount + `\s*g\s*(?:of\s+)?` + fatWord + `\b`)

var nutritionRating = regexp.MustCompile(`(?i)rating[\s*:]*([A-D])\b`)

type nutrientRule struct {
	assign   func(n *NutritionInfo, v int)
	patterns []*regexp.Regexp
}

// 數值在前的樣式只允許同一行內的空白，避免 "Protein: 30g\nCarbs: 40g" 把 30 配給 carbs
func gramsPatterns(word string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + amount + `[ \t]*g[ \t]*(?:of[ \t]+)?` + word + `\b`),
		regexp.MustCompile(`(?i)\b` + word + `\b[\s*:]*` + amount),
	}
}

var nutrientRules = []nutrientRule{
	{
		assign: func(n *NutritionInfo, v int) { n.Calories = &v },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)` + amount + `[ \t]*` + caloriesUnit + `\b`),
			regexp.MustCompile(`(?i)\bcalories\b[\s*:]*` + amount),
		},
	},
	{assign: func(n *NutritionInfo, v int) { n.Protein = &v }, patterns: gramsPatterns(proteinWord)},
	{assign: func(n *NutritionInfo, v int) { n.Carbs = &v }, patterns: gramsPatterns(carbsWord)},
	{assign: func(n *NutritionInfo, v int) { n.Fat = &v }, patterns: gramsPatterns(fatWord)},
	{assign: func(n *NutritionInfo, v int) { n.Fiber = &v }, patterns: gramsPatterns(fiberWord)},
	{assign: func(n *NutritionInfo, v int) { n.Sugar = &v }, patterns: gramsPatterns(sugarWord)},
}

// ExtractNutrition 從原始文字中取出營養資訊，完全沒有數值時回傳 nil
func ExtractNutrition(text string) *NutritionInfo {
	scope := text
	if section, ok := ExtractSection(text, SectionNutrition); ok {
		scope = section
	}

	info := &NutritionInfo{}
	if !applyCanonical(info, scope) && !(scope != text && applyCanonical(info, text)) {
		for _, rule := range nutrientRules {
			for _, p := range rule.patterns {
				if v, ok := firstAmount(p, scope); ok {
					rule.assign(info, v)
					break
				}
			}
		}
	}

	// 熱量為 0 或負值視為缺少
	if info.Calories != nil && *info.Calories <= 0 {
		info.Calories = nil
	}
	if !info.HasNutrients() {
		return nil
	}

	if m := nutritionRating.FindStringSubmatch(text); m != nil {
		info.Rating = strings.ToUpper(m[1])
	}
	return info
}

func applyCanonical(info *NutritionInfo, text string) bool {
	m := canonicalTotals.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	values := make([]int, 0, 4)
	for _, s := range m[1:5] {
		v, ok := roundAmount(s)
		if !ok {
			return false
		}
		values = append(values, v)
	}
	info.Calories = &values[0]
	info.Protein = &values[1]
	info.Carbs = &values[2]
	info.Fat = &values[3]
	return true
}

func firstAmount(p *regexp.Regexp, text string) (int, bool) {
	m := p.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return roundAmount(m[1])
}

func roundAmount(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}
