package grocery

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 字串開頭的數字部分，其餘文字忽略
var leadingNumber = regexp.MustCompile(`^\s*[+-]?(?:Infinity|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`)

// MergeQuantity 兩邊都是正數時相加，否則以逗號串接；相加時不保留單位
func MergeQuantity(existing, incoming string) string {
	a, okA := leadingFloat(existing)
	b, okB := leadingFloat(incoming)
	if okA && okB && a > 0 && b > 0 {
		return formatNumber(a + b)
	}
	return existing + ", " + incoming
}

func leadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	// 超出範圍時 ParseFloat 仍回傳 ±Inf 或 0
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, !math.IsNaN(f)
}

// formatNumber 輸出最短可還原的十進位表示，極大或極小值改用指數形式 (1e+21、2e-7)
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
