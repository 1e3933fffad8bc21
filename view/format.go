// Package view turns a Product into display-ready values: grouped prices,
// a bounded specification list, plain-text descriptions and a terminal
// rendering used by scrapectl.
package view

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
)

// MaxSpecifications bounds the specification list shown for a product.
const MaxSpecifications = 10

// Spec is one displayed specification row.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FormatPrice renders an amount without the currency symbol. Numbers use
// Indian digit grouping (1,23,456). Text has any ₹ and commas stripped and
// each run of digits regrouped in threes. A missing amount renders as "0".
func FormatPrice(a models.Amount) string {
	if a.IsZero() {
		return "0"
	}
	if d, ok := a.Decimal(); ok {
		return groupIndian(d.Round(3).String())
	}
	s := strings.NewReplacer(base.Rupee, "", ",", "").Replace(a.String())
	return groupRuns(s)
}

// FormatPricePtr is FormatPrice for optional amounts; nil renders as "".
func FormatPricePtr(a *models.Amount) string {
	if a == nil {
		return ""
	}
	return FormatPrice(*a)
}

func groupIndian(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

// groupRuns inserts a comma every three digits, counting from the right of
// each maximal run of ASCII digits.
func groupRuns(s string) string {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		if !isDigit(s[i]) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		run := s[i:j]
		for k, c := range []byte(run) {
			if k > 0 && (len(run)-k)%3 == 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(c)
		}
		i = j
	}
	return sb.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// SpecificationList returns up to MaxSpecifications rows ordered by key.
func SpecificationList(specs map[string]string) []Spec {
	if len(specs) == 0 {
		return []Spec{}
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > MaxSpecifications {
		keys = keys[:MaxSpecifications]
	}
	out := make([]Spec, 0, len(keys))
	for _, k := range keys {
		out = append(out, Spec{Key: k, Value: specs[k]})
	}
	return out
}

// SafeRender turns an arbitrary carried value into one display string.
// Objects are reduced through their text, value, description, totalRatings
// or totalReviews member, in that order, and JSON-encoded otherwise.
func SafeRender(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return fmt.Sprint(t)
	case json.Number, float64, int, int64:
		return base.AsText(t)
	}
	if m := base.AsMap(v); m != nil {
		for _, k := range []string{"text", "value", "description", "totalRatings", "totalReviews"} {
			if val, present := m[k]; present {
				return plain(val)
			}
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// plain mirrors String(x): nested objects do not recurse.
func plain(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return fmt.Sprint(t)
	}
	if s := base.AsText(v); s != "" {
		return s
	}
	if base.AsMap(v) != nil {
		return "[object Object]"
	}
	if arr, ok := v.([]any); ok {
		parts := make([]string, len(arr))
		for i, e := range arr {
			if e != nil {
				parts[i] = plain(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
