package form

import (
	"fmt"
	"strings"
)

// FieldError describes why the submitted value of a single field was rejected
type FieldError struct {
	Field   string
	Label   string
	Message string
}

func (err *FieldError) Error() string {
	return err.Field + ": " + err.Message
}

var (
	errFieldMissing = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' é obrigatório.", f.Label),
		}
	}
	errFieldInvalidNumber = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' precisa ser um número.", f.Label),
		}
	}
	errFieldInvalidDate = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' precisa ser uma data válida.", f.Label),
		}
	}
	errFieldBelowMin = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' precisa ser no mínimo %s.", f.Label, f.Min),
		}
	}
	errFieldAboveMax = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' precisa ser no máximo %s.", f.Label, f.Max),
		}
	}
	errFieldInvalidOption = func(f *field) *FieldError {
		return &FieldError{
			Field:   f.Name,
			Label:   f.Label,
			Message: fmt.Sprintf("O campo '%s' precisa ser um dos valores: %s.", f.Label, strings.Join(f.Options, ", ")),
		}
	}
)

// Errors indexes field errors by field name, keeping the first error per field
func Errors(errs []*FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// Summary joins every error message into a single line
func Summary(errs []*FieldError) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, " ")
}
