package render

import (
	"bytes"
	"html/template"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/listing"
	"github.com/agrosuite/dashboard/internal/pagination"
)

type cell struct {
	Header  string
	Text    string
	Numeric bool
}

type actionLink struct {
	Name     string
	Label    string
	Href     string
	Navigate bool
	Confirm  string
}

type row struct {
	ID      string
	Title   string
	Status  string
	Cells   []cell
	Details []cell
	Actions []actionLink
}

type lane struct {
	Name string
	Rows []row
}

type listData struct {
	Headers    []string
	HasActions bool
	Rows       []row
	Lanes      []lane
	Empty      string
}

// Renderer displays records into a panel according to a view
type Renderer[T any] struct {
	View      *View[T]
	Formatter *Formatter
	Panel     *Panel
}

var _ listing.Renderer[struct{}] = (*Renderer[struct{}])(nil)

// Render replaces the panel body with the given records
func (renderer *Renderer[T]) Render(records []T) error {
	html, err := renderer.HTML(records)
	if err != nil {
		return err
	}
	renderer.Panel.SetBody(html)
	return nil
}

// HTML renders the records without touching the panel
func (renderer *Renderer[T]) HTML(records []T) (template.HTML, error) {
	view := renderer.View
	data := listData{
		Headers:    view.Headers(),
		HasActions: len(view.Actions) > 0,
		Empty:      view.Empty,
	}
	if data.Empty == "" {
		data.Empty = "Nenhum registro encontrado."
	}
	for _, rec := range records {
		data.Rows = append(data.Rows, renderer.row(rec))
	}

	name := "table"
	switch view.Layout {
	case LayoutCards:
		name = "cards"
	case LayoutKanban:
		name = "kanban"
		data.Lanes = lanes(view.Lanes, data.Rows)
	}

	buf := new(bytes.Buffer)
	if err := fragments.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Detail is one labelled value of a single record
type Detail struct {
	Header string
	Text   string
}

// Describe returns the formatted column values of a single record
func (renderer *Renderer[T]) Describe(rec T) []Detail {
	cells := renderer.row(rec).Cells
	details := make([]Detail, 0, len(cells))
	for _, c := range cells {
		details = append(details, Detail{Header: c.Header, Text: c.Text})
	}
	return details
}

func (renderer *Renderer[T]) row(rec T) row {
	view := renderer.View
	out := row{}
	if view.ID != nil {
		out.ID = view.ID(rec)
	}
	if view.Status != nil {
		out.Status = view.Status(rec)
	}
	for i, column := range view.Columns {
		value := renderer.Formatter.Text(column.Value(renderer.Formatter, rec))
		c := cell{Header: column.Header, Text: value, Numeric: column.Numeric}
		out.Cells = append(out.Cells, c)
		if i == 0 {
			out.Title = value
		} else {
			out.Details = append(out.Details, c)
		}
	}
	for _, action := range view.Actions {
		if action.When != nil && !action.When(out.Status) {
			continue
		}
		link := actionLink{
			Name:     action.Name,
			Label:    action.Label,
			Navigate: action.Navigate,
			Confirm:  action.Confirm,
		}
		if action.Navigate {
			link.Href = view.RecordPath(out.ID)
		} else {
			link.Href = view.ActionPath(out.ID, action.Name)
		}
		out.Actions = append(out.Actions, link)
	}
	return out
}

func lanes(names []string, rows []row) []lane {
	out := make([]lane, 0, len(names)+1)
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
		out = append(out, lane{Name: name})
	}
	other := lane{Name: OtherColumn}
	for _, r := range rows {
		if i, ok := index[r.Status]; ok {
			out[i].Rows = append(out[i].Rows, r)
			continue
		}
		other.Rows = append(other.Rows, r)
	}
	if len(other.Rows) > 0 {
		out = append(out, other)
	}
	return out
}

type paginationLink struct {
	pagination.Link
	Href string
}

// Pagination displays pagination controls into a panel
type Pagination struct {
	Panel *Panel

	// Href builds the link of a page request
	Href func(filters filter.Set, page, pageSize int) string
}

var _ listing.Paginator = (*Pagination)(nil)

// RenderPagination replaces the panel pagination controls.
// Nothing is displayed when there is at most one page.
func (paginator *Pagination) RenderPagination(meta envelope.Meta, filters filter.Set, onPage listing.PageRequestFunc) error {
	widget := pagination.NewWidget(meta, filters, onPage)
	if len(widget.Links) == 0 {
		paginator.Panel.SetPagination("", nil)
		return nil
	}

	links := make([]paginationLink, 0, len(widget.Links))
	for _, link := range widget.Links {
		out := paginationLink{Link: link}
		if link.Clickable() && paginator.Href != nil {
			out.Href = paginator.Href(widget.Filters, link.Page, meta.PageSize)
		}
		links = append(links, out)
	}

	buf := new(bytes.Buffer)
	if err := fragments.ExecuteTemplate(buf, "pagination", links); err != nil {
		return err
	}
	paginator.Panel.SetPagination(template.HTML(buf.String()), widget)
	return nil
}

// Notice renders a notice box
func Notice(level, message string) template.HTML {
	buf := new(bytes.Buffer)
	if err := fragments.ExecuteTemplate(buf, "notice", map[string]string{"Level": level, "Message": message}); err != nil {
		return template.HTML(template.HTMLEscapeString(message))
	}
	return template.HTML(buf.String())
}
