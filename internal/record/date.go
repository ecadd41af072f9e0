package record

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format dates are sent to the backend in
const DateLayout = "2006-01-02"

var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Date is a calendar date record field.
// Unparsable or missing values decode into the zero Date, which renders as a placeholder.
type Date struct {
	time.Time
}

// NewDate creates a new date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a raw string using every accepted layout; the boolean reports success
func ParseDate(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, false
	}
	for _, layout := range acceptedLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return Date{parsed}, true
		}
	}
	return Date{}, false
}

// Timestamp returns the underlying time value
func (date Date) Timestamp() time.Time {
	return date.Time
}

// String returns the wire representation of the date or an empty string for the zero date
func (date Date) String() string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (date *Date) UnmarshalJSON(data []byte) error {
	*date = Date{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	parsed, _ := ParseDate(raw)
	*date = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface
func (date Date) MarshalJSON() ([]byte, error) {
	if date.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(date.Format(DateLayout))
}
