package record

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric record field decoded with a "parse or default to 0" rule.
// Backends are not consistent about numbers: they may arrive as JSON numbers, as numeric strings
// (optionally using a decimal comma), as null or as garbage. Anything that cannot be parsed into a
// finite value becomes 0 instead of failing the whole record.
type Number float64

// Float returns the number as a float64
func (number Number) Float() float64 {
	return float64(number)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (number *Number) UnmarshalJSON(data []byte) error {
	*number = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		*number = ParseNumber(raw)
		return nil
	}

	*number = ParseNumber(string(data))
	return nil
}

// MarshalJSON implements the json.Marshaler interface
func (number Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(sanitize(float64(number)), 'f', -1, 64)), nil
}

// ParseNumber parses a raw string into a Number, defaulting to 0
func ParseNumber(raw string) Number {
	parsed, ok := ParseDecimal(raw)
	if !ok {
		return 0
	}
	return Number(parsed)
}

// ParseDecimal parses a finite number written as '1234.56', '1.234,56', '1,234.56' or '12,5'.
// The separator appearing last is the decimal separator. NaN and infinities are rejected.
func ParseDecimal(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if comma := strings.LastIndex(raw, ","); comma >= 0 {
		if comma > strings.LastIndex(raw, ".") {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.ReplaceAll(raw, ",", ".")
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

func sanitize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
