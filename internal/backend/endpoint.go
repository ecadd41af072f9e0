package backend

import (
	"context"
	"fmt"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/rs/zerolog/log"
)

// Endpoint provides typed access to the collection of one entity type ('/api/<domain>/<entity>')
type Endpoint[T any] struct {
	Client *Client
	Path   string

	// UseSearch makes list reads use 'POST {path}/search' instead of query string filters
	UseSearch bool
}

// Fetch retrieves one page of records
func (endpoint *Endpoint[T]) Fetch(ctx context.Context, filters filter.Set, page, pageSize int) (*envelope.Envelope[T], error) {
	var response *Response
	var err error
	if endpoint.UseSearch {
		response, err = endpoint.Client.Search(ctx, endpoint.Path, filters, page, pageSize)
	} else {
		response, err = endpoint.Client.List(ctx, endpoint.Path, filters, page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	env, shape, err := envelope.Parse[T](response.Body, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint.Path, err)
	}
	if shape == envelope.ShapeArray {
		log.Warn().Str("path", endpoint.Path).Int("items", len(env.Items)).Msg("the backend answered with a bare array; treating it as a single page")
	}
	return env, nil
}

// Get retrieves a single record by its ID
func (endpoint *Endpoint[T]) Get(ctx context.Context, id string) (*T, error) {
	response, err := endpoint.Client.Get(ctx, endpoint.Path, id)
	if err != nil {
		return nil, err
	}
	obj := new(T)
	if err := response.Decode(obj); err != nil {
		return nil, &envelope.ParseError{Reason: "invalid record", Err: err}
	}
	return obj, nil
}

// Create creates a new record
func (endpoint *Endpoint[T]) Create(ctx context.Context, payload any) error {
	_, err := endpoint.Client.Create(ctx, endpoint.Path, payload)
	return err
}

// Update updates an existing record
func (endpoint *Endpoint[T]) Update(ctx context.Context, id string, payload any) error {
	_, err := endpoint.Client.Update(ctx, endpoint.Path, id, payload)
	return err
}

// Delete removes (or inactivates) a record
func (endpoint *Endpoint[T]) Delete(ctx context.Context, id string) error {
	return endpoint.Client.Delete(ctx, endpoint.Path, id)
}
