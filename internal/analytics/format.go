package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency is the display currency for all money KPIs.
const Currency = "AED"

// FormatMoneyM renders money scaled to millions: "AED 12.3M".
func FormatMoneyM(v float64) string {
	return fmt.Sprintf("%s %.1fM", Currency, v/1e6)
}

// FormatMoneyK renders money scaled to thousands: "AED 85K".
func FormatMoneyK(v float64) string {
	return fmt.Sprintf("%s %.0fK", Currency, v/1e3)
}

// FormatMoney picks the scale by magnitude: millions at or above one
// million, thousands at or above one thousand, comma-grouped otherwise.
func FormatMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e6:
		return FormatMoneyM(v)
	case abs >= 1e3:
		return FormatMoneyK(v)
	default:
		return fmt.Sprintf("%s %s", Currency, FormatCount(v))
	}
}

// FormatPercent renders a percentage with one decimal: "72.4%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatCount renders an integer with comma grouping: "12,345".
func FormatCount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// TruncateLabel shortens long dimension labels for axis readability.
func TruncateLabel(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
