package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexDecimal is a decimal that can be unmarshaled from either a JSON number
// or a JSON string. Quantity fields arrive both ways from the web forms.
type FlexDecimal struct {
	decimal.Decimal
	set bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" || s == `""` {
		return nil
	}

	// Try unmarshaling as a number first
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err == nil {
		f.Decimal = d
		f.set = true
		return nil
	}

	// Try unmarshaling as a string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		val, err := decimal.NewFromString(str)
		if err != nil {
			return fmt.Errorf("FlexDecimal: invalid decimal string %q: %w", str, err)
		}
		f.Decimal = val
		f.set = true
		return nil
	}

	return fmt.Errorf("FlexDecimal: expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return f.Decimal.MarshalJSON()
}

// Valid reports whether a non-empty value was supplied.
func (f FlexDecimal) Valid() bool {
	return f.set
}
