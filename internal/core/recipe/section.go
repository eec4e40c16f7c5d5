package recipe

import (
	"regexp"
	"strings"
)

// Section 食譜區段
type Section string

const (
	SectionIngredients  Section = "ingredients"
	SectionInstructions Section = "instructions"
	SectionTips         Section = "tips"
	SectionNutrition    Section = "nutrition"
)

const (
	// 結構性標題，用來判斷區段結束
	structuralHeadings = `ingredients?|instructions?|directions?|method|steps|tips?|variations?|notes?|nutrition(?:al)?|equipment`
	// 時間與份量類標題
	timingHeadings = `prep(?:aration)?\s*time|cook(?:ing)?\s*time|total\s*time|servings?|serves|yield`
	// 標題後可接的括號說明，例如 (per serving)
	parenthetical = `(?:\s*\([^)\n]*\))?`
)

var sectionAliases = map[Section]string{
	SectionIngredients:  `ingredients?`,
	SectionInstructions: `(?:(?:step[- ]by[- ]step|cooking)\s+)?(?:instructions?|directions?)|steps?|method|preparation`,
	SectionTips:         `tips?(?:\s*(?:&|and)\s*variations?)?|variations?|notes?`,
	SectionNutrition:    `nutrition(?:al)?(?:\s+(?:info(?:rmation)?|facts|breakdown))?`,
}

// sectionRules 每個區段依序嘗試的樣式，由最結構化到最寬鬆
var sectionRules = map[Section][]*regexp.Regexp{
	SectionIngredients:  buildSectionRules(sectionAliases[SectionIngredients], false),
	SectionInstructions: buildSectionRules(sectionAliases[SectionInstructions], false),
	SectionTips:         buildSectionRules(sectionAliases[SectionTips], false),
	// 營養區段內的每日總量本身就是粗體行，只在其他結構性標題處停止
	SectionNutrition: buildSectionRules(sectionAliases[SectionNutrition], true),
}

func buildSectionRules(alias string, nutrition bool) []*regexp.Regexp {
	stops := structuralHeadings + "|" + timingHeadings
	// 任何以粗體字開頭的行都視為下一個標題
	boldStop := `\n[ \t]*\*\*[A-Za-z]`
	if nutrition {
		// 不在自己的標題名稱上停止
		stops = `ingredients?|instructions?|directions?|method|steps|tips?|variations?|notes?|equipment`
		boldStop = `\n[ \t]*\*\*[ \t]*(?:` + stops + `)`
	}
	heading := `(?:` + alias + `)` + parenthetical

	markdown := `(?is)(?:^|\n)[ \t]*#{2,4}[ \t]*` + heading + `[^\n]*\n(.*?)` +
		`(?:\n[ \t]*#{1,4}[ \t]|\n[ \t]*\*\*[ \t]*(?:` + stops + `)|\z)`
	bold := `(?is)\*\*[ \t]*` + heading + `[ \t]*:?[ \t]*\*\*[ \t]*:?(.*?)` +
		`(?:` + boldStop + `|\n[ \t]*#{1,4}[ \t]|\n[ \t]*\n[ \t]*\n|\z)`
	bare := `(?is)(?:^|\n)[ \t]*` + heading + `[ \t]*:(.*?)` +
		`(?:\n[ \t]*[#*]*[ \t]*(?:` + stops + `)[^\n:]*:|\n[ \t]*#{1,4}[ \t]|\z)`

	return []*regexp.Regexp{
		regexp.MustCompile(markdown),
		regexp.MustCompile(bold),
		regexp.MustCompile(bare),
	}
}

// ExtractSection 從原始文字中找出指定區段的內容，找不到時回傳 false
func ExtractSection(text string, section Section) (string, bool) {
	for _, rule := range sectionRules[section] {
		m := rule.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if body := strings.TrimSpace(m[1]); body != "" {
			return body, true
		}
	}
	return "", false
}
