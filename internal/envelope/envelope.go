package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope represents the paginated response shape every list endpoint answers with
type Envelope[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Meta represents the pagination metadata of an Envelope without its items
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Shape describes which JSON shape a response body was parsed from
type Shape int

const (
	// ShapeEnvelope means the body was a proper envelope object
	ShapeEnvelope Shape = iota
	// ShapeArray means the body was a bare array and was wrapped into a single page
	ShapeArray
)

func (shape Shape) String() string {
	switch shape {
	case ShapeEnvelope:
		return "envelope"
	case ShapeArray:
		return "array"
	default:
		return "unknown"
	}
}

// ParseError is returned whenever a response body has none of the accepted shapes or violates the
// envelope invariants
type ParseError struct {
	Reason string
	Err    error
}

func (err *ParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("malformed page envelope: %s: %s", err.Reason, err.Err.Error())
	}
	return "malformed page envelope: " + err.Reason
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// TotalPages calculates ceil(totalItems / pageSize)
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// New builds an envelope out of one page of items and the total amount of matching items
func New[T any](items []T, page, pageSize, totalItems int) *Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return &Envelope[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
	}
}

// Single wraps a complete record list into a synthetic single-page envelope.
// fallbackSize is used as the page size of an empty list so the envelope stays valid.
func Single[T any](items []T, fallbackSize int) *Envelope[T] {
	size := len(items)
	if size == 0 {
		size = fallbackSize
	}
	if size <= 0 {
		size = 1
	}
	return New(items, 1, size, len(items))
}

// Paginate slices a complete, already filtered record list into the requested page.
// The page is clamped into [1, total_pages] so the result always contains the closest existing page.
func Paginate[T any](all []T, page, pageSize int) *Envelope[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := TotalPages(len(all), pageSize)
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return New(items, page, pageSize, len(all))
}

// Meta returns the pagination metadata of the envelope
func (env *Envelope[T]) Meta() Meta {
	return Meta{
		Page:       env.Page,
		PageSize:   env.PageSize,
		TotalItems: env.TotalItems,
		TotalPages: env.TotalPages,
	}
}

// Validate checks the envelope invariants
func (env *Envelope[T]) Validate() error {
	if env.Page < 1 {
		return &ParseError{Reason: fmt.Sprintf("page must be >= 1 (got %d)", env.Page)}
	}
	if env.PageSize <= 0 {
		return &ParseError{Reason: fmt.Sprintf("page_size must be > 0 (got %d)", env.PageSize)}
	}
	if len(env.Items) > env.PageSize {
		return &ParseError{Reason: fmt.Sprintf("%d items exceed the page size of %d", len(env.Items), env.PageSize)}
	}
	if env.TotalItems < len(env.Items) {
		return &ParseError{Reason: fmt.Sprintf("total_items (%d) is smaller than the amount of items (%d)", env.TotalItems, len(env.Items))}
	}
	if env.TotalItems > 0 && env.TotalPages != TotalPages(env.TotalItems, env.PageSize) {
		return &ParseError{Reason: fmt.Sprintf("total_pages (%d) does not match ceil(%d / %d)", env.TotalPages, env.TotalItems, env.PageSize)}
	}
	if env.TotalItems == 0 && env.TotalPages > 1 {
		return &ParseError{Reason: fmt.Sprintf("total_pages (%d) is set without any items", env.TotalPages)}
	}
	return nil
}

type rawEnvelope struct {
	Items      *json.RawMessage `json:"items"`
	Page       *int             `json:"page"`
	PageSize   *int             `json:"page_size"`
	TotalItems *int             `json:"total_items"`
	TotalPages *int             `json:"total_pages"`
}

// Parse decodes a response body into the canonical envelope.
// Two shapes are accepted: an envelope object (identified by its 'items' key) and a bare JSON array,
// which is wrapped into a synthetic single page. Every other shape results in a *ParseError.
// requestedSize is used for metadata the body does not carry.
func Parse[T any](body []byte, requestedSize int) (*Envelope[T], Shape, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ShapeEnvelope, &ParseError{Reason: "empty body"}
	}

	switch body[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, ShapeArray, &ParseError{Reason: "invalid item array", Err: err}
		}
		return Single(items, requestedSize), ShapeArray, nil
	case '{':
		env, err := parseObject[T](body, requestedSize)
		return env, ShapeEnvelope, err
	default:
		return nil, ShapeEnvelope, &ParseError{Reason: "body is neither an envelope object nor an array"}
	}
}

func parseObject[T any](body []byte, requestedSize int) (*Envelope[T], error) {
	raw := new(rawEnvelope)
	if err := json.Unmarshal(body, raw); err != nil {
		return nil, &ParseError{Reason: "invalid envelope object", Err: err}
	}
	if raw.Items == nil {
		return nil, &ParseError{Reason: "envelope object has no 'items' key"}
	}

	var items []T
	if err := json.Unmarshal(*raw.Items, &items); err != nil {
		return nil, &ParseError{Reason: "invalid items", Err: err}
	}
	if items == nil {
		items = []T{}
	}

	env := &Envelope[T]{
		Items:      items,
		Page:       valueOr(raw.Page, 1),
		PageSize:   valueOr(raw.PageSize, requestedSize),
		TotalItems: valueOr(raw.TotalItems, len(items)),
	}
	if raw.TotalPages != nil {
		env.TotalPages = *raw.TotalPages
	} else {
		env.TotalPages = TotalPages(env.TotalItems, env.PageSize)
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func valueOr(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}

// IsParseError reports whether err is or wraps a *ParseError
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
