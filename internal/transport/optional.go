package transport

import (
	"encoding/json"
	"strconv"
)

// PriceValue keeps the literal price text from the request body, whether the
// client sent a JSON number or a string. Rounding it half-up needs the exact
// digits; a float64 would already have lost them for inputs like 1.005.
type PriceValue string

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceValue(n.String())
	return nil
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(p))), nil
}

// OptionalString tells a field that was absent from the body apart from one
// that was sent as null. Absent leaves the stored value alone, explicit null
// (or an empty string) clears it.
type OptionalString struct {
	Defined bool
	Value   *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Defined = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
