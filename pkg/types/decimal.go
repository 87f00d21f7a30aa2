package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a money string coming from the admin console into a
// decimal. Empty strings mean zero, and the legacy console submits comma
// decimal separators.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return value, nil
}

// Amount is a decimal that tolerates every money format the console sends:
// bare numbers, numeric strings, comma separators, and "" or null for zero.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		value, err := ParseAmount(raw)
		if err != nil {
			return err
		}
		a.Decimal = value
		return nil
	}

	return a.Decimal.UnmarshalJSON(data)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}
