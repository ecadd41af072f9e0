package fallback

import (
	"fmt"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
)

// Source serves the sample records of one table as page envelopes, applying the same filter semantics
// the backend applies
type Source[T any] struct {
	Store  *Store
	Table  string
	Schema filter.Schema
}

// Records returns every sample record matching the filters, in display order
func (source *Source[T]) Records(filters filter.Set) ([]T, error) {
	status := ""
	if dataset, ok := source.Store.Dataset(source.Table); ok && dataset.StatusField != "" {
		if rule, ok := source.Schema.Rule("status"); ok && rule.Kind == filter.Equal && len(rule.Fields) == 1 && rule.Fields[0] == dataset.StatusField {
			status, _ = filters.Get("status")
		}
	}

	raw, err := source.Store.Query(source.Table, status)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0, len(raw))
	for _, value := range raw {
		typed, ok := value.(T)
		if !ok {
			return nil, fmt.Errorf("fallback table %q holds a %T", source.Table, value)
		}
		records = append(records, typed)
	}
	return filter.Apply(source.Schema, records, filters), nil
}

// Envelope builds the page envelope that replaces a failed list read.
// Filters are re-applied to the samples before counting, and the requested page is clamped into the
// available range (small sample sets always collapse into page 1).
func (source *Source[T]) Envelope(filters filter.Set, page, pageSize int) (*envelope.Envelope[T], error) {
	records, err := source.Records(filters)
	if err != nil {
		return nil, err
	}
	return envelope.Paginate(records, page, pageSize), nil
}

// Lookup returns the sample record with the given ID
func (source *Source[T]) Lookup(id string) (*T, error) {
	value, err := source.Store.Lookup(source.Table, id)
	if err != nil || value == nil {
		return nil, err
	}
	typed, ok := value.(T)
	if !ok {
		return nil, fmt.Errorf("fallback table %q holds a %T", source.Table, value)
	}
	return &typed, nil
}
