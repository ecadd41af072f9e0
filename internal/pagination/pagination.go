package pagination

import (
	"net/url"
	"strconv"

	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/listing"
)

// WindowSize is the amount of numbered links centred on the current page
const WindowSize = 5

// Kind describes the role of a pagination link
type Kind int

const (
	// KindPrevious links to the previous page
	KindPrevious Kind = iota
	// KindPage links to a numbered page
	KindPage
	// KindEllipsis separates the window from a first or last page shortcut
	KindEllipsis
	// KindNext links to the next page
	KindNext
)

// Link represents a single pagination control
type Link struct {
	Kind     Kind
	Page     int
	Label    string
	Active   bool
	Disabled bool
}

// Clickable reports whether the link requests a page when clicked
func (link Link) Clickable() bool {
	return link.Kind != KindEllipsis && !link.Active && !link.Disabled
}

// Build lays out the pagination controls of a page.
// No controls are produced when there is at most one page.
func Build(meta envelope.Meta) []Link {
	total := meta.TotalPages
	if total <= 1 {
		return nil
	}
	current := meta.Page
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start, end := window(current, total)
	links := make([]Link, 0, WindowSize+6)
	links = append(links, Link{
		Kind:     KindPrevious,
		Page:     current - 1,
		Label:    "«",
		Disabled: current == 1,
	})
	if start > 1 {
		links = append(links, pageLink(1, current))
		if start > 2 {
			links = append(links, Link{Kind: KindEllipsis, Label: "…", Disabled: true})
		}
	}
	for page := start; page <= end; page++ {
		links = append(links, pageLink(page, current))
	}
	if end < total {
		if end < total-1 {
			links = append(links, Link{Kind: KindEllipsis, Label: "…", Disabled: true})
		}
		links = append(links, pageLink(total, current))
	}
	links = append(links, Link{
		Kind:     KindNext,
		Page:     current + 1,
		Label:    "»",
		Disabled: current == total,
	})
	return links
}

func window(current, total int) (int, int) {
	start := current - WindowSize/2
	end := current + WindowSize/2
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > total {
		start -= end - total
		end = total
	}
	if start < 1 {
		start = 1
	}
	return start, end
}

func pageLink(page, current int) Link {
	return Link{
		Kind:   KindPage,
		Page:   page,
		Label:  strconv.Itoa(page),
		Active: page == current,
	}
}

// Widget binds the controls of one rendered page to the page request callback
type Widget struct {
	Meta    envelope.Meta
	Filters filter.Set
	Links   []Link

	onPage listing.PageRequestFunc
}

// NewWidget creates the widget of a rendered page
func NewWidget(meta envelope.Meta, filters filter.Set, onPage listing.PageRequestFunc) *Widget {
	return &Widget{
		Meta:    meta,
		Filters: filters.Clone(),
		Links:   Build(meta),
		onPage:  onPage,
	}
}

// Click requests the page of a link using the filters the widget was rendered with.
// It reports whether a page was requested; active, disabled and ellipsis links do nothing.
func (widget *Widget) Click(link Link) bool {
	if !link.Clickable() || widget.onPage == nil {
		return false
	}
	widget.onPage(widget.Filters.Clone(), link.Page, widget.Meta.PageSize)
	return true
}

// ClickPage clicks the numbered link of a page, if it is displayed
func (widget *Widget) ClickPage(page int) bool {
	for _, link := range widget.Links {
		if link.Kind == KindPage && link.Page == page {
			return widget.Click(link)
		}
	}
	return false
}

// Query encodes the filters and paging parameters of a page request
func Query(filters filter.Set, page, pageSize int) url.Values {
	values := url.Values{}
	filters.Encode(values)
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(pageSize))
	return values
}

// Href builds the URL of a page request relative to a base path
func Href(base string, filters filter.Set, page, pageSize int) string {
	return base + "?" + Query(filters, page, pageSize).Encode()
}
