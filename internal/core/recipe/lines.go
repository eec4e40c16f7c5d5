package recipe

import (
	"regexp"
	"strings"
)

// 散文行至少要超過此長度才會被視為項目
const minProseLength = 10

var (
	// 編號後可不接空白 ("1.Mix")，但 "2.5 cups" 這類小數不算編號
	bulletLine   = regexp.MustCompile(`^(?:(?:[-*•]|\d+[.)])\s+(.+)|\d+[.)]([^\d\s].*))$`)
	boldOnlyLine = regexp.MustCompile(`^\*\*[^*]+\*\*:?$`)
	headingLine  = regexp.MustCompile(`(?i)^[#*\s]*(?:` + structuralHeadings + `|` + timingHeadings + `)` +
		parenthetical + `[\s*:#]*$`)
)

// ParseLines 將區段內容拆成項目清單，保留原本順序，不做去重
func ParseLines(body string) []string {
	items := []string{}
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || headingLine.MatchString(line) {
			continue
		}

		if text, ok := bulletItem(line); ok {
			if item := cleanItem(text); item != "" && !headingLine.MatchString(item) {
				items = append(items, item)
			}
			continue
		}

		// 無項目符號時，只接受夠長且不是粗體標題的散文行
		if len(line) > minProseLength && !boldOnlyLine.MatchString(line) && strings.ContainsAny(line, " \t") {
			if item := cleanItem(line); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// bulletItem 回傳項目符號後的文字
func bulletItem(line string) (string, bool) {
	m := bulletLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

func cleanItem(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
