// Package numfmt converts between ledger display strings and decimal values.
//
// Display strings use thousands separators and two fraction digits; negative
// values are written either with a leading minus sign or, in summary rows,
// wrapped in parentheses. Malformed input never raises: it degrades to zero.
package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a display string to a decimal. Thousands separators are
// stripped; "(n)" or a leading "-" mark a negative. Unparsable input returns
// zero.
func Parse(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero
	}
	neg := (strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")) || strings.HasPrefix(s, "-")
	clean := strings.NewReplacer(",", "", "(", "", ")", "", "-", "").Replace(s)

	d, err := decimal.NewFromString(numericPrefix(clean))
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return d.Neg()
	}
	return d
}

// numericPrefix returns the longest leading run of digits with at most one
// decimal point. Trailing garbage after a number is ignored.
func numericPrefix(s string) string {
	dot := false
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	p := s[:i]
	if p == "" || p == "." {
		return "0"
	}
	return p
}

// Format renders a value with two fraction digits and thousands separators.
// The absolute value is formatted first; if parenthesize is set and the value
// is negative the result is wrapped in parentheses, otherwise the sign is
// dropped entirely.
func Format(v decimal.Decimal, parenthesize bool) string {
	s := groupThousands(v.Abs().StringFixed(2))
	if parenthesize && v.IsNegative() {
		return "(" + s + ")"
	}
	return s
}

// FormatCell re-formats an editable cell for display. An empty cell stays
// empty; everything else is parsed and formatted like Format. Columns that
// render missing values as "0.00" instead call Format(Parse(text), ...)
// directly.
func FormatCell(text string, parenthesize bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return Format(Parse(text), parenthesize)
}

// groupThousands inserts comma separators into the integer part of a fixed
// two-decimal string like "1234567.89".
func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + frac
}
