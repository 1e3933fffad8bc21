package base

import (
	"regexp"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/shopspring/decimal"
)

const Rupee = "₹"

var percentPattern = regexp.MustCompile(`(\d+)%`)

// Amount passes a price through unchanged: numbers stay numeric, strings
// stay text. Anything else is treated as absent.
func Amount(v any) (models.Amount, bool) {
	if d, ok := AsNumber(v); ok {
		return models.NumberAmount(d), true
	}
	if s, ok := v.(string); ok {
		return models.TextAmount(s), true
	}
	return models.Amount{}, false
}

// FormatRupees renders a numeric price as "₹N" and passes strings through.
func FormatRupees(v any) (models.Amount, bool) {
	if d, ok := AsNumber(v); ok {
		return models.TextAmount(Rupee + d.String()), true
	}
	return Amount(v)
}

// FormatRupeesOff renders a numeric discount as "₹N off" and passes strings
// through.
func FormatRupeesOff(v any) (models.Amount, bool) {
	if d, ok := AsNumber(v); ok {
		return models.TextAmount(Rupee + d.String() + " off"), true
	}
	return Amount(v)
}

// ParsePercent extracts the first run of digits followed by "%".
func ParsePercent(s string) (int, bool) {
	m := percentPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return LeadingInt(m[1])
}

// LeadingInt parses an optional sign and the digits at the start of s,
// ignoring leading whitespace and anything after the digits.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// Percentage returns a discount percentage clamped to 0..100.
func Percentage(v any) (*int, bool) {
	var n int
	switch {
	case IsNumber(v):
		d, _ := AsNumber(v)
		n = int(d.IntPart())
	default:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		if n, ok = LeadingInt(s); !ok {
			return nil, false
		}
	}
	n = max(0, min(100, n))
	return &n, true
}

// DeriveSellingPrice computes round(mrp * (1 - pct/100)) where pct is the
// first "N%" found in discount. mrp must be numeric or a plain numeric
// string.
func DeriveSellingPrice(mrp, discount any) (decimal.Decimal, bool) {
	base, ok := AsNumber(mrp)
	if !ok {
		s, isText := mrp.(string)
		if !isText {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Decimal{}, false
		}
		base = d
	}
	label, ok := discount.(string)
	if !ok {
		return decimal.Decimal{}, false
	}
	pct, ok := ParsePercent(label)
	if !ok {
		return decimal.Decimal{}, false
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100)))
	return base.Mul(factor).Round(0), true
}
