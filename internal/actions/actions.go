package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAction is returned when dispatching an action no handler was registered for
var ErrUnknownAction = errors.New("unknown action")

// Result describes what is displayed after an action completed
type Result struct {
	// Redirect is the location the user is sent to; empty means the list the action was triggered from
	Redirect string

	// Notice is the confirmation shown after the redirect
	Notice string
}

// Handler performs an action on a single record
type Handler func(ctx context.Context, id string) (Result, error)

// Table maps action names to their handlers.
// It is filled once while a view is set up and only read afterwards.
type Table struct {
	handlers map[string]Handler
}

// NewTable creates a new empty action table
func NewTable() *Table {
	return &Table{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to an action name.
// Registering the same name twice is a programming error and panics.
func (table *Table) Register(name string, handler Handler) *Table {
	if name == "" || handler == nil {
		panic("actions: an action needs a name and a handler")
	}
	if _, ok := table.handlers[name]; ok {
		panic(fmt.Sprintf("actions: action %q registered twice", name))
	}
	table.handlers[name] = handler
	return table
}

// Has reports whether a handler is bound to the action name
func (table *Table) Has(name string) bool {
	_, ok := table.handlers[name]
	return ok
}

// Names returns the registered action names in lexical order
func (table *Table) Names() []string {
	names := make([]string, 0, len(table.handlers))
	for name := range table.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler bound to the action name for a record
func (table *Table) Dispatch(ctx context.Context, name, id string) (Result, error) {
	handler, ok := table.handlers[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if id == "" {
		return Result{}, errors.New("an action needs a record ID")
	}
	return handler(ctx, id)
}
