package schema

import "fmt"

var emptyMap = map[string]any{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "Ocorreu um erro interno.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Recurso não encontrado.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Método não permitido.",
		Details: emptyMap,
	}
	ErrBackendUnavailable = func(detail string) *Error {
		return &Error{
			Type:    "backend.unavailable",
			Message: detail,
			Details: emptyMap,
		}
	}
	ErrFormInvalid = func(field, message string) *Error {
		return &Error{
			Type:    "validation.form.field",
			Message: message,
			Details: map[string]any{
				"field": field,
			},
		}
	}
	ErrUnknownAction = func(action string) *Error {
		return &Error{
			Type:    "action.unknown",
			Message: fmt.Sprintf("A ação '%s' não existe.", action),
			Details: map[string]any{
				"action": action,
			},
		}
	}
)

// ErrorResponse represents the response structure sent by JSON endpoints whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func (err *Error) Error() string {
	return err.Type + ": " + err.Message
}
