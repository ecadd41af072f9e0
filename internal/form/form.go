package form

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/agrosuite/dashboard/internal/record"
)

// Input types of form fields
const (
	InputText     = "text"
	InputNumber   = "number"
	InputDate     = "date"
	InputSelect   = "select"
	InputTextarea = "textarea"
	InputEmail    = "email"
)

var (
	numberType = reflect.TypeOf(record.Number(0))
	dateType   = reflect.TypeOf(record.Date{})
)

// Extension is implemented by forms that decode additional values the tag-driven decoding skips
// (fields tagged 'form:"-"')
type Extension interface {
	DecodeForm(values url.Values) []*FieldError
}

// field is the parsed description of a single struct field.
// Supported struct tags:
//
//	json:"name"        the form parameter and payload key
//	label:"Nome"       the displayed label
//	required:"true"    the value must not be blank
//	min:"0" max:"100"  numeric bounds
//	options:"A|B"      the value must be one of the options
//	input:"textarea"   overrides the derived input type
//	form:"-"           skips the field
type field struct {
	Index    int
	Name     string
	Label    string
	Input    string
	Required bool
	Min      string
	Max      string
	Options  []string
}

func fieldsOf(typ reflect.Type) ([]*field, error) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, errors.New("forms have to be structs")
	}

	var fields []*field
	for i := 0; i < typ.NumField(); i++ {
		def := typ.Field(i)
		if !def.IsExported() || def.Tag.Get("form") == "-" {
			continue
		}
		f := &field{
			Index:    i,
			Name:     fieldName(def),
			Label:    def.Tag.Get("label"),
			Required: strings.EqualFold(def.Tag.Get("required"), "true"),
			Min:      def.Tag.Get("min"),
			Max:      def.Tag.Get("max"),
			Input:    def.Tag.Get("input"),
		}
		if f.Name == "" {
			continue
		}
		if f.Label == "" {
			f.Label = f.Name
		}
		if options := def.Tag.Get("options"); options != "" {
			f.Options = strings.Split(options, "|")
		}
		if f.Input == "" {
			f.Input = inputOf(def.Type, f.Options)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func inputOf(typ reflect.Type, options []string) string {
	if len(options) > 0 {
		return InputSelect
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	switch {
	case typ == dateType:
		return InputDate
	case typ == numberType, typ.Kind() >= reflect.Int && typ.Kind() <= reflect.Float64:
		return InputNumber
	default:
		return InputText
	}
}

func fieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok {
		return def.Name
	}
	if jsonVal == "-" {
		return ""
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	if name == "" {
		return def.Name
	}
	return name
}

// Decode decodes and validates submitted form values into a new T.
// Validation failures are returned as field errors; the error is reserved for forms that cannot be decoded at all.
func Decode[T any](values url.Values) (*T, []*FieldError, error) {
	target := new(T)
	fields, err := fieldsOf(reflect.TypeOf(target))
	if err != nil {
		return nil, nil, err
	}

	ref := reflect.ValueOf(target).Elem()
	var errs []*FieldError
	for _, f := range fields {
		raw := strings.TrimSpace(values.Get(f.Name))
		if raw == "" {
			if f.Required {
				errs = append(errs, errFieldMissing(f))
			}
			continue
		}
		if fieldErr := f.assign(ref.Field(f.Index), raw); fieldErr != nil {
			errs = append(errs, fieldErr)
		}
	}

	if ext, ok := any(target).(Extension); ok {
		errs = append(errs, ext.DecodeForm(values)...)
	}
	return target, errs, nil
}

func (f *field) assign(dst reflect.Value, raw string) *FieldError {
	if dst.Kind() == reflect.Pointer {
		dst.Set(reflect.New(dst.Type().Elem()))
		dst = dst.Elem()
	}

	if len(f.Options) > 0 && !contains(f.Options, raw) {
		return errFieldInvalidOption(f)
	}

	switch {
	case dst.Type() == dateType:
		date, ok := record.ParseDate(raw)
		if !ok {
			return errFieldInvalidDate(f)
		}
		dst.Set(reflect.ValueOf(date))
		return nil
	case dst.Type() == numberType, dst.CanFloat():
		number, ok := ParseNumber(raw)
		if !ok {
			return errFieldInvalidNumber(f)
		}
		if err := f.checkBounds(number); err != nil {
			return err
		}
		dst.SetFloat(number)
		return nil
	case dst.CanInt():
		number, ok := ParseNumber(raw)
		if !ok || number != float64(int64(number)) {
			return errFieldInvalidNumber(f)
		}
		if err := f.checkBounds(number); err != nil {
			return err
		}
		dst.SetInt(int64(number))
		return nil
	case dst.Kind() == reflect.Bool:
		dst.SetBool(raw == "on" || strings.EqualFold(raw, "true") || raw == "1")
		return nil
	case dst.Kind() == reflect.String:
		dst.SetString(raw)
		return nil
	default:
		return errFieldInvalidNumber(f)
	}
}

func (f *field) checkBounds(number float64) *FieldError {
	if min, err := strconv.ParseFloat(f.Min, 64); err == nil && number < min {
		return errFieldBelowMin(f)
	}
	if max, err := strconv.ParseFloat(f.Max, 64); err == nil && number > max {
		return errFieldAboveMax(f)
	}
	return nil
}

// ParseNumber parses a submitted number, accepting a decimal comma; NaN and infinities are rejected
func ParseNumber(raw string) (float64, bool) {
	return record.ParseDecimal(raw)
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
