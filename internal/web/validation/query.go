package validation

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agrosuite/dashboard/internal/web/schema"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("O parâmetro '%s' é obrigatório.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("O parâmetro '%s' ('%s') precisa ser do tipo %s.", name, value, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int) *schema.Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [informado] < %d [mínimo]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [informado] > %d [máximo]", value, max)
		}

		return &schema.Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("O parâmetro '%s' está fora do intervalo permitido (%s).", name, comparison),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
)

// QueryNumber extracts and validates an integer value out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, required bool, def, min, max int) (int, *schema.Error) {
	value := strings.TrimSpace(request.URL.Query().Get(key))
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "número")
	}

	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, parsed, min, max)
	}
	return parsed, nil
}

// Paging extracts the 'page' and 'page_size' query parameters
func Paging(request *http.Request, defaultSize, maxSize int) (int, int, []*schema.Error) {
	var errs []*schema.Error
	page, err := QueryNumber(request, "page", false, 1, 1, int(^uint(0)>>1))
	if err != nil {
		errs = append(errs, err)
	}
	size, err := QueryNumber(request, "page_size", false, defaultSize, 1, maxSize)
	if err != nil {
		errs = append(errs, err)
	}
	return page, size, errs
}
