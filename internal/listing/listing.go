package listing

import (
	"context"
	"errors"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
)

var (
	// ErrInvalidPage is returned when a page below 1 is requested
	ErrInvalidPage = errors.New("the page has to be >= 1")
	// ErrInvalidPageSize is returned when a page size below 1 is requested
	ErrInvalidPageSize = errors.New("the page size has to be > 0")
)

// Source reads one page of records from the backend
type Source[T any] interface {
	Fetch(ctx context.Context, filters filter.Set, page, pageSize int) (*envelope.Envelope[T], error)
}

// Fallback builds the envelope substituted for a failed read
type Fallback[T any] interface {
	Envelope(filters filter.Set, page, pageSize int) (*envelope.Envelope[T], error)
}

// Renderer replaces the displayed records
type Renderer[T any] interface {
	Render(records []T) error
}

// RendererFunc is a function implementing Renderer
type RendererFunc[T any] func(records []T) error

// Render calls the function
func (fn RendererFunc[T]) Render(records []T) error {
	return fn(records)
}

// PageRequestFunc is invoked whenever another page is requested using the same filters
type PageRequestFunc func(filters filter.Set, page, pageSize int)

// Paginator replaces the displayed pagination controls
type Paginator interface {
	RenderPagination(meta envelope.Meta, filters filter.Set, onPage PageRequestFunc) error
}

// PaginatorFunc is a function implementing Paginator
type PaginatorFunc func(meta envelope.Meta, filters filter.Set, onPage PageRequestFunc) error

// RenderPagination calls the function
func (fn PaginatorFunc) RenderPagination(meta envelope.Meta, filters filter.Set, onPage PageRequestFunc) error {
	return fn(meta, filters, onPage)
}

// ValidateQuery checks the paging constraints of a load
func ValidateQuery(page, pageSize int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if pageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}
