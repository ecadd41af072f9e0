package form

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/agrosuite/dashboard/internal/record"
)

// Field describes a form field for display
type Field struct {
	Name     string
	Label    string
	Input    string
	Required bool
	Min      string
	Max      string
	Options  []string
	Value    string
	Error    string
}

// Fields describes the fields of form T, filled with values and errors
func Fields[T any](values map[string]string, errs []*FieldError) []Field {
	var zero T
	defs, err := fieldsOf(reflect.TypeOf(zero))
	if err != nil {
		return nil
	}
	messages := Errors(errs)
	fields := make([]Field, 0, len(defs))
	for _, def := range defs {
		fields = append(fields, Field{
			Name:     def.Name,
			Label:    def.Label,
			Input:    def.Input,
			Required: def.Required,
			Min:      def.Min,
			Max:      def.Max,
			Options:  def.Options,
			Value:    values[def.Name],
			Error:    messages[def.Name],
		})
	}
	return fields
}

// Submitted converts submitted values into the value map Fields displays
func Submitted(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key := range values {
		out[key] = values.Get(key)
	}
	return out
}

// Values extracts the form values of a struct (usually a record) by the JSON names of its fields
func Values(rec any) map[string]string {
	out := make(map[string]string)
	ref := reflect.ValueOf(rec)
	for ref.Kind() == reflect.Pointer {
		if ref.IsNil() {
			return out
		}
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return out
	}
	typ := ref.Type()
	for i := 0; i < typ.NumField(); i++ {
		def := typ.Field(i)
		name := fieldName(def)
		if !def.IsExported() || name == "" {
			continue
		}
		value := ref.Field(i)
		if value.Kind() == reflect.Pointer {
			if value.IsNil() {
				continue
			}
			value = value.Elem()
		}
		if text, ok := format(value); ok {
			out[name] = text
		}
	}
	return out
}

func format(value reflect.Value) (string, bool) {
	switch typed := value.Interface().(type) {
	case record.Date:
		return typed.String(), true
	case record.Number:
		return strconv.FormatFloat(typed.Float(), 'f', -1, 64), true
	case string:
		return typed, true
	}
	switch {
	case value.CanInt():
		return strconv.FormatInt(value.Int(), 10), true
	case value.CanFloat():
		return strconv.FormatFloat(value.Float(), 'f', -1, 64), true
	case value.Kind() == reflect.Bool:
		return strconv.FormatBool(value.Bool()), true
	case value.Kind() == reflect.Struct, value.Kind() == reflect.Slice, value.Kind() == reflect.Map:
		return "", false
	default:
		return fmt.Sprint(value.Interface()), true
	}
}
