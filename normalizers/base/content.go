package base

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// Strings converts an array into text lines. Non-text entries are rendered
// through their text, value or description field when they have one.
func Strings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := AsText(item); s != "" {
			out = append(out, s)
			continue
		}
		if m := AsMap(item); m != nil {
			if s := m.FirstText("text", "value", "description", "title"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Specifications flattens the shapes sites use for specification tables into
// a key/value map. It accepts an object (nested objects contribute their own
// entries), an array of "key: value" strings, or an array of {key, value}
// objects. The first occurrence of a key wins. The result is never nil.
func Specifications(v any) map[string]string {
	out := map[string]string{}
	if m := AsMap(v); m != nil {
		flattenSpecs(m, out)
		return out
	}
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				key, value, found := strings.Cut(s, ":")
				if !found {
					continue
				}
				addSpec(out, strings.TrimSpace(key), strings.TrimSpace(value))
				continue
			}
			if m := AsMap(item); m != nil {
				addSpec(out, m.FirstText("key", "name", "label"), m.Text("value"))
			}
		}
	}
	return out
}

// flattenSpecs adds top-level entries before descending into groups, each
// level in key order, so collisions resolve the same way every time.
func flattenSpecs(doc Document, out map[string]string) {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var groups []Document
	for _, key := range keys {
		value := doc[key]
		if nested := AsMap(value); nested != nil {
			groups = append(groups, nested)
			continue
		}
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok {
			addSpec(out, key, s)
			continue
		}
		if s := AsText(value); s != "" {
			addSpec(out, key, s)
			continue
		}
		if raw, err := json.Marshal(value); err == nil {
			addSpec(out, key, string(raw))
		}
	}
	for _, g := range groups {
		flattenSpecs(g, out)
	}
}

func addSpec(out map[string]string, key, value string) {
	if key == "" {
		return
	}
	if _, exists := out[key]; exists {
		return
	}
	out[key] = value
}

// OfferList wraps each entry of a list of offer strings as
// {type: offerType, description: entry}. It reports false when v is not a
// list.
func OfferList(v any, offerType string) ([]models.Offer, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]models.Offer, 0, len(list))
	for _, item := range list {
		out = append(out, models.Offer{Type: offerType, Description: item})
	}
	return out, true
}
