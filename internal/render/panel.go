package render

import (
	"html/template"
	"sync"

	"github.com/agrosuite/dashboard/internal/pagination"
)

// Panel is the container a list is displayed in.
// Every setter replaces the previous content of its slot, so repeated renders never accumulate.
type Panel struct {
	mu         sync.Mutex
	body       template.HTML
	pagination template.HTML
	notice     template.HTML
	widget     *pagination.Widget
}

// Snapshot represents the content of a panel at one point in time
type Snapshot struct {
	Body       template.HTML
	Pagination template.HTML
	Notice     template.HTML
}

// SetBody replaces the displayed records
func (panel *Panel) SetBody(body template.HTML) {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.body = body
}

// SetPagination replaces the displayed pagination controls
func (panel *Panel) SetPagination(controls template.HTML, widget *pagination.Widget) {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.pagination = controls
	panel.widget = widget
}

// SetNotice replaces the displayed notice
func (panel *Panel) SetNotice(notice template.HTML) {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.notice = notice
}

// Widget returns the widget of the displayed pagination controls, if any
func (panel *Panel) Widget() *pagination.Widget {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return panel.widget
}

// Snapshot returns the current content
func (panel *Panel) Snapshot() Snapshot {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return Snapshot{
		Body:       panel.body,
		Pagination: panel.pagination,
		Notice:     panel.notice,
	}
}

// Reset empties every slot
func (panel *Panel) Reset() {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	panel.body = ""
	panel.pagination = ""
	panel.notice = ""
	panel.widget = nil
}
