package filter

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/agrosuite/dashboard/internal/record"
)

// Kind describes how a filter parameter is matched against a record
type Kind int

const (
	// Equal matches case-insensitively on strings and numerically on numbers
	Equal Kind = iota
	// Contains matches a case-insensitive substring in any of the rule's fields
	Contains
	// Min matches numbers greater than or equal to the parameter
	Min
	// Max matches numbers smaller than or equal to the parameter
	Max
	// From matches dates on or after the parameter
	From
	// To matches dates on or before the parameter
	To
)

func (kind Kind) String() string {
	switch kind {
	case Equal:
		return "equal"
	case Contains:
		return "contains"
	case Min:
		return "min"
	case Max:
		return "max"
	case From:
		return "from"
	case To:
		return "to"
	default:
		return "unknown"
	}
}

// Rule binds a filter parameter to one or more record fields (addressed by their JSON names)
type Rule struct {
	Param  string
	Kind   Kind
	Fields []string
}

// Schema describes every filter parameter an entity list understands
type Schema []Rule

// Params returns the parameter names of the schema
func (schema Schema) Params() []string {
	params := make([]string, 0, len(schema))
	for _, rule := range schema {
		params = append(params, rule.Param)
	}
	return params
}

// Rule looks up the rule of a parameter
func (schema Schema) Rule(param string) (Rule, bool) {
	for _, rule := range schema {
		if rule.Param == param {
			return rule, true
		}
	}
	return Rule{}, false
}

// Match reports whether a record satisfies every constraint of the set.
// Constraints whose parameter is unknown to the schema are ignored.
func (schema Schema) Match(rec any, set Set) bool {
	for _, key := range set.Keys() {
		rule, ok := schema.Rule(key)
		if !ok {
			continue
		}
		if !rule.match(rec, set[key]) {
			return false
		}
	}
	return true
}

// Apply returns the records matching the set, preserving their order
func Apply[T any](schema Schema, records []T, set Set) []T {
	matching := make([]T, 0, len(records))
	for _, rec := range records {
		if schema.Match(rec, set) {
			matching = append(matching, rec)
		}
	}
	return matching
}

func (rule Rule) match(rec any, param string) bool {
	switch rule.Kind {
	case Contains:
		needle := strings.ToLower(param)
		for _, field := range rule.Fields {
			value, ok := FieldValue(rec, field)
			if ok && strings.Contains(strings.ToLower(stringify(value)), needle) {
				return true
			}
		}
		return false
	default:
		if len(rule.Fields) == 0 {
			return true
		}
		value, ok := FieldValue(rec, rule.Fields[0])
		if !ok {
			return false
		}
		return compare(rule.Kind, value, param)
	}
}

func compare(kind Kind, value any, param string) bool {
	switch kind {
	case Equal:
		if number, ok := numeric(value); ok {
			expected, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
			if err != nil {
				return false
			}
			return math.Abs(number-expected) < 1e-9
		}
		if date, ok := timestamp(value); ok {
			expected, ok := record.ParseDate(param)
			return ok && !date.IsZero() && date.Equal(expected.Time)
		}
		return strings.EqualFold(strings.TrimSpace(stringify(value)), strings.TrimSpace(param))
	case Min, Max:
		number, ok := numeric(value)
		if !ok {
			return false
		}
		bound, ok := record.ParseDecimal(param)
		if !ok {
			return false
		}
		if kind == Min {
			return number >= bound
		}
		return number <= bound
	case From, To:
		date, ok := timestamp(value)
		if !ok || date.IsZero() {
			return false
		}
		bound, ok := record.ParseDate(param)
		if !ok {
			return false
		}
		if kind == From {
			return !date.Before(bound.Time)
		}
		return !date.After(bound.Time)
	default:
		return false
	}
}

type timestamped interface {
	Timestamp() time.Time
}

func numeric(value any) (float64, bool) {
	ref := reflect.ValueOf(value)
	switch {
	case ref.CanFloat():
		return ref.Float(), true
	case ref.CanInt():
		return float64(ref.Int()), true
	case ref.CanUint():
		return float64(ref.Uint()), true
	default:
		return 0, false
	}
}

func timestamp(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case timestamped:
		return typed.Timestamp(), true
	default:
		return time.Time{}, false
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		if number, ok := numeric(value); ok {
			return strconv.FormatFloat(number, 'f', -1, 64)
		}
		return fmt.Sprint(value)
	}
}

// FieldValue extracts the value of a struct field by its JSON name.
// Pointer fields are dereferenced; nil pointers report no value.
func FieldValue(rec any, name string) (any, bool) {
	ref := reflect.ValueOf(rec)
	for ref.Kind() == reflect.Pointer {
		if ref.IsNil() {
			return nil, false
		}
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, false
	}
	typ := ref.Type()
	for i := 0; i < typ.NumField(); i++ {
		def := typ.Field(i)
		if !def.IsExported() || jsonName(def) != name {
			continue
		}
		field := ref.Field(i)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return nil, false
			}
			field = field.Elem()
		}
		return field.Interface(), true
	}
	return nil, false
}

func jsonName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	if name == "" {
		return def.Name
	}
	return name
}
