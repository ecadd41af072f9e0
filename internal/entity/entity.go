package entity

import (
	"strings"

	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/render"
)

// StatusAction is a row action that moves a record into another status
type StatusAction struct {
	Name   string
	Label  string
	Status string

	// From lists the statuses the action is offered for; empty means every status
	From []string
}

// Allowed reports whether the action is offered for a record in the given status
func (action StatusAction) Allowed(status string) bool {
	if len(action.From) == 0 {
		return true
	}
	for _, from := range action.From {
		if strings.EqualFold(from, status) {
			return true
		}
	}
	return false
}

// Definition describes everything the dashboard needs to know about one entity type
type Definition[T any] struct {
	Domain string
	Name   string
	Title  string

	// Singular names one record in headings and notices, e.g. 'Animal'
	Singular string

	// Resource is the backend collection path, e.g. '/api/cattle/animals'
	Resource string

	// UseSearch makes list reads use 'POST {resource}/search'
	UseSearch bool

	Schema       filter.Schema
	FilterFields []form.Field
	View         render.View[T]

	StatusActions []StatusAction

	Samples     []T
	IDField     string
	StatusField string
}

// Table returns the '<domain>/<entity>' key of the entity type
func (def *Definition[T]) Table() string {
	return def.Domain + "/" + def.Name
}

// Path returns the dashboard path of the entity list
func (def *Definition[T]) Path() string {
	return "/" + def.Table()
}

// Dataset returns the fallback dataset of the entity type
func (def *Definition[T]) Dataset() fallback.Dataset {
	records := make([]any, 0, len(def.Samples))
	for _, sample := range def.Samples {
		records = append(records, sample)
	}
	return fallback.Dataset{
		Table:       def.Table(),
		Records:     records,
		IDField:     def.IDField,
		StatusField: def.StatusField,
	}
}

// Actions returns the standard row actions followed by the status actions
func (def *Definition[T]) Actions() []render.Action {
	actions := []render.Action{
		{Name: ActionView, Label: "Ver", Navigate: true},
	}
	for _, status := range def.StatusActions {
		actions = append(actions, render.Action{
			Name:  status.Name,
			Label: status.Label,
			When:  status.Allowed,
		})
	}
	return append(actions, render.Action{
		Name:    ActionDelete,
		Label:   "Excluir",
		Confirm: "Deseja realmente excluir este registro?",
	})
}

// Names of the standard row actions
const (
	ActionView   = "view"
	ActionDelete = "delete"
)

// Option builds a select filter field
func Option(param, label string, options ...string) form.Field {
	return form.Field{Name: param, Label: label, Input: form.InputSelect, Options: options}
}

// Text builds a free text filter field
func Text(param, label string) form.Field {
	return form.Field{Name: param, Label: label, Input: form.InputText}
}

// Number builds a numeric filter field
func Number(param, label string) form.Field {
	return form.Field{Name: param, Label: label, Input: form.InputNumber}
}

// Date builds a date filter field
func Date(param, label string) form.Field {
	return form.Field{Name: param, Label: label, Input: form.InputDate}
}
