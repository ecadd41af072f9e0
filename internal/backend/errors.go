package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransportError represents a request that never produced an HTTP response (network failure, timeout)
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", err.Method, err.URL, err.Err.Error())
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// APIError represents a non-2xx backend response.
// Detail holds the human-readable message of the backend's 'detail' field and is meant to be shown verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("backend responded with %d: %s", err.StatusCode, err.Detail)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Detail:     extractDetail(status, body),
	}
}

type validationIssue struct {
	Message string `json:"msg"`
}

func extractDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil && text != "" {
			return text
		}
		var issues []validationIssue
		if err := json.Unmarshal(payload.Detail, &issues); err == nil && len(issues) > 0 {
			messages := make([]string, 0, len(issues))
			for _, issue := range issues {
				if issue.Message != "" {
					messages = append(messages, issue.Message)
				}
			}
			if len(messages) > 0 {
				return strings.Join(messages, "; ")
			}
		}
	}
	return http.StatusText(status)
}

// Detail returns the message that should be presented to the user for a failed backend call
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Não foi possível contatar o servidor. Tente novamente."
	}
	return err.Error()
}

// IsNotFound reports whether err is a 404 backend response
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
