package render

import (
	"net/url"
	"strings"
)

// Layout describes how a list of records is laid out
type Layout int

const (
	// LayoutTable renders one table row per record
	LayoutTable Layout = iota
	// LayoutCards renders one card per record
	LayoutCards
	// LayoutKanban renders one card per record, grouped into status columns
	LayoutKanban
)

// OtherColumn collects kanban cards whose status has no column of its own
const OtherColumn = "Outros"

// Column describes a single displayed field
type Column[T any] struct {
	Header string
	Value  func(formatter *Formatter, rec T) string

	// Numeric right-aligns the values
	Numeric bool
}

// Action describes a row control
type Action struct {
	Name  string
	Label string

	// Navigate makes the control a plain link to the record instead of a posted action
	Navigate bool

	// Confirm, if set, is the question asked before the action is posted
	Confirm string

	// When, if set, decides per record whether the control is shown
	When func(status string) bool
}

// View describes how the records of one entity type are displayed
type View[T any] struct {
	Title    string
	BasePath string
	Layout   Layout
	Columns  []Column[T]
	Actions  []Action

	// ID extracts the record ID the row controls address
	ID func(rec T) string

	// Status extracts the record status; it groups kanban cards and badges cards
	Status func(rec T) string

	// Lanes are the kanban columns, in display order
	Lanes []string

	// Empty is displayed when there are no records
	Empty string
}

// RecordPath returns the path of a single record
func (view *View[T]) RecordPath(id string) string {
	return strings.TrimRight(view.BasePath, "/") + "/" + url.PathEscape(id)
}

// ActionPath returns the path an action on a record is posted to
func (view *View[T]) ActionPath(id, action string) string {
	return view.RecordPath(id) + "/actions/" + url.PathEscape(action)
}

// Headers returns the column headers
func (view *View[T]) Headers() []string {
	headers := make([]string, 0, len(view.Columns))
	for _, column := range view.Columns {
		headers = append(headers, column.Header)
	}
	return headers
}
