package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a locale-formatted currency string into a positive
// decimal. It accepts currency symbols, thousands separators, and either
// comma- or dot-decimal convention. Unparseable input yields zero; callers
// treat zero as "reject this transaction".
//
// When only commas are present the trailing group length decides their role:
// a two-digit final group means a decimal comma ("1.234,56" style), anything
// else means thousands separators. This is a known approximation: a genuine
// "12,34" thousands value would be misread. Kept for compatibility with the
// statements it was tuned on.
func ParseAmount(raw string) decimal.Decimal {
	d, _ := ParseAmountOK(raw)
	return d
}

// ParseAmountOK is ParseAmount plus a flag reporting whether the input
// actually parsed. A false return means the zero value is a substitution,
// not a real amount.
func ParseAmountOK(raw string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		// Whichever separator appears last is the decimal point, so both
		// "1,234.56" and "1.234,56" come out as 1234.56.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		parts := strings.Split(cleaned, ",")
		if len(parts[len(parts)-1]) == 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	// A separator with no digits after it ("1.2.3.4," reduces to "1234.")
	// is malformed input, even though the decimal library would accept the
	// trailing point.
	if strings.HasSuffix(cleaned, ".") || strings.HasSuffix(cleaned, ",") {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Abs(), true
}
