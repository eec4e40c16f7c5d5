package recipe

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"recipe-assistant/internal/core/ingredient"
)

// DefaultTitle 所有候選都不合格時使用的標題
const DefaultTitle = "AI Generated Recipe"

const (
	minTitleLength = 3
	maxTitleLength = 100
)

// titleRules 依序嘗試，第一個通過長度檢查的候選勝出
var titleRules = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*#[ \t]+(.+?)[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*\*\*([^*\n:]+)\*\*[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*##[ \t]+(.+?)[ \t]*$`),
	regexp.MustCompile(`\*\*([^*\n:]+)\*\*`),
	regexp.MustCompile(`(?im)\brecipe[ \t]*:[ \t]*(.+?)[ \t]*$`),
	regexp.MustCompile(`(?im)^[ \t]*(.+?)[ \t]+recipe[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*(\S.*?)[ \t]*$`),
}

var (
	titlePrefix = regexp.MustCompile(`(?i)^(?:recipe|cook|make)[ \t]*:[ \t]*`)
	titleSuffix = regexp.MustCompile(`(?i)[ \t]+recipe$`)

	// 次要推測：how to make X / recipe for X
	titlePhrase = regexp.MustCompile(`(?i)\b(?:how\s+to\s+(?:make|cook)|recipe\s+for|let'?s\s+(?:make|cook))\s+(?:an?\s+|the\s+|some\s+)?([^.!?\n:]+)`)
)

// resolveTitle 依序嘗試各種標題樣式
func resolveTitle(text string) string {
	for _, rule := range titleRules {
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			candidate := cleanTitle(m[1])
			// 區段標題與清單項目不是食譜名稱，繼續看同一樣式的下一個
			if headingLine.MatchString(candidate) || bulletLine.MatchString(strings.TrimSpace(m[1])) {
				continue
			}
			if validTitle(candidate) {
				return candidate
			}
			break
		}
	}

	if m := titlePhrase.FindStringSubmatch(text); m != nil {
		if candidate := cleanTitle(m[1]); validTitle(candidate) {
			return ingredient.Capitalize(candidate)
		}
	}
	return DefaultTitle
}

func cleanTitle(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "#* \t")
	s = titlePrefix.ReplaceAllString(s, "")
	s = titleSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}

func validTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > minTitleLength && n < maxTitleLength
}
