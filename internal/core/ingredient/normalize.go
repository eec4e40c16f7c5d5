// Package ingredient 提供食材行的解析與分類，食譜解析與購物清單彙整共用同一份實作。
package ingredient

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultQuantity 無法判斷數量時的預設值
const DefaultQuantity = "1"

// Parsed 解析後的食材
type Parsed struct {
	Original string `json:"original"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

const vulgarFractions = `½¼¾⅓⅔⅛⅜⅝⅞⅕⅖⅗⅘⅙⅚`

var (
	numberPattern   = `(?:\d+(?:\.\d+)?(?:\s*/\s*\d+)?|[` + vulgarFractions + `])`
	quantityPattern = numberPattern + `(?:\s*` + numberPattern + `)?(?:\s*-\s*` + numberPattern + `)?`
	unitPattern     = `(?:cups?|tbsps?|tsps?|lbs?|oz|g|kg|ml|l|pieces?|slices?|cloves?|cans?|packages?)\b`

	// 數量（可含單位）+ 名稱
	compositePattern = regexp.MustCompile(`(?i)^(` + quantityPattern + `(?:\s*` + unitPattern + `)?)?\s*(.+)$`)

	// 純數字或分數的 token
	numericToken = regexp.MustCompile(`^(?:\d+(?:\.\d+)?(?:/\d+)?|[` + vulgarFractions + `]+)$`)
)

// Parse 將一行食材文字拆成名稱與數量，永遠不會失敗
func Parse(line string) Parsed {
	original := line
	cleaned := strings.TrimSpace(stripNotes(line))
	if cleaned == "" {
		cleaned = strings.TrimSpace(line)
	}

	if m := compositePattern.FindStringSubmatch(cleaned); m != nil {
		name := strings.TrimSpace(m[2])
		if name != "" {
			quantity := strings.TrimSpace(m[1])
			if quantity == "" {
				quantity = DefaultQuantity
			}
			return Parsed{Original: original, Name: Capitalize(name), Quantity: quantity}
		}
	}

	// 正則失敗時，檢查第一個 token 是否為數字
	fields := strings.Fields(cleaned)
	if len(fields) > 1 && numericToken.MatchString(fields[0]) {
		return Parsed{
			Original: original,
			Name:     Capitalize(strings.Join(fields[1:], " ")),
			Quantity: fields[0],
		}
	}

	return Parsed{Original: original, Name: Capitalize(cleaned), Quantity: DefaultQuantity}
}

// stripNotes 逗號或括號之後是處理方式，不屬於名稱或數量
func stripNotes(line string) string {
	if i := strings.IndexAny(line, ",("); i >= 0 {
		return line[:i]
	}
	return line
}

// Capitalize 將第一個字元轉為大寫，其餘保持不變
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
