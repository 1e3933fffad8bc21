// Package base holds the shared pieces every site adapter builds on: safe
// access to schema-less upstream records and the common price, image and
// specification conversions.
package base

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/shopspring/decimal"
)

// Document is one raw product record as the scraping backend sent it.
type Document map[string]any

// Decode parses a JSON object, keeping numbers as json.Number so no
// precision is lost before an adapter looks at them.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode product record: %w", err)
	}
	return doc, nil
}

// Value returns the value under key when it is present and not null.
func (d Document) Value(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Get returns the value under key, or nil.
func (d Document) Get(key string) any {
	v, _ := d.Value(key)
	return v
}

// Text returns the value under key as text. Strings are returned as is and
// numbers and booleans are formatted. Anything else yields "".
func (d Document) Text(key string) string {
	return AsText(d.Get(key))
}

// Number returns the value under key when it is numeric.
func (d Document) Number(key string) (decimal.Decimal, bool) {
	return AsNumber(d.Get(key))
}

// Map returns the nested object under key, or nil.
func (d Document) Map(key string) Document {
	return AsMap(d.Get(key))
}

// Slice returns the array under key, or nil.
func (d Document) Slice(key string) []any {
	s, _ := d.Get(key).([]any)
	return s
}

// First returns the first value among keys that is truthy.
func (d Document) First(keys ...string) (any, bool) {
	for _, k := range keys {
		if v := d.Get(k); Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// FirstText is First followed by AsText.
func (d Document) FirstText(keys ...string) string {
	v, _ := d.First(keys...)
	return AsText(v)
}

func AsText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// AsNumber reports v as a decimal when v is a JSON number. Strings are not
// coerced.
func AsNumber(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	}
	return decimal.Decimal{}, false
}

func IsNumber(v any) bool {
	_, ok := AsNumber(v)
	return ok
}

func AsMap(v any) Document {
	switch t := v.(type) {
	case Document:
		return t
	case map[string]any:
		return Document(t)
	}
	return nil
}

// Truthy follows JavaScript truthiness, which is what the scraping backend
// assumes when it leaves fields empty: null, false, 0, NaN and "" are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}

// Identity decodes a record into the canonical shape without reinterpreting
// it. The result encodes back to the same record.
func Identity(doc Document) *models.Product {
	if doc == nil {
		doc = Document{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return &models.Product{}
	}
	p := &models.Product{}
	if err := json.Unmarshal(raw, p); err != nil {
		return &models.Product{Raw: raw}
	}
	p.Raw = raw
	return p
}

// FromProduct encodes a product and decodes it back as a raw record.
func FromProduct(p *models.Product) (Document, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}
