package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a price-like value that upstream sites send either as a display
// string ("₹1,299") or as a bare number (1299).
type Amount struct {
	text    string
	number  decimal.Decimal
	literal string
	numeric bool
}

// TextAmount wraps a display string.
func TextAmount(s string) Amount {
	return Amount{text: s}
}

// NumberAmount wraps a numeric value.
func NumberAmount(d decimal.Decimal) Amount {
	return Amount{number: d, numeric: true}
}

func (a Amount) IsNumeric() bool {
	return a.numeric
}

func (a Amount) IsZero() bool {
	return !a.numeric && a.text == ""
}

// Decimal returns the numeric value and whether the amount is numeric.
func (a Amount) Decimal() (decimal.Decimal, bool) {
	return a.number, a.numeric
}

// String returns the display text, or the number in plain notation.
func (a Amount) String() string {
	if a.numeric {
		if a.literal != "" {
			return a.literal
		}
		return a.number.String()
	}
	return a.text
}

// Ptr returns a pointer to a copy of a, or nil when a is zero.
func (a Amount) Ptr() *Amount {
	if a.IsZero() {
		return nil
	}
	return &a
}

func (a Amount) Equal(b Amount) bool {
	if a.numeric != b.numeric {
		return false
	}
	if a.numeric {
		return a.number.Equal(b.number)
	}
	return a.text == b.text
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.numeric {
		if a.literal != "" {
			return []byte(a.literal), nil
		}
		return []byte(a.number.String()), nil
	}
	return json.Marshal(a.text)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Amount{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAmount(s)
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("amount must be a string or a number: %w", err)
	}
	*a = Amount{number: d, literal: string(data), numeric: true}
	return nil
}
