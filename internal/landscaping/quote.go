package landscaping

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
)

// Quote statuses
const (
	StatusPending  = "Pendente"
	StatusApproved = "Aprovado"
	StatusRejected = "Rejeitado"
)

// LineItem represents a single quoted service
type LineItem struct {
	Description string        `json:"description"`
	Quantity    record.Number `json:"quantity"`
	UnitPrice   record.Number `json:"unit_price"`
}

// Subtotal returns quantity × unit price
func (item LineItem) Subtotal() float64 {
	return item.Quantity.Float() * item.UnitPrice.Float()
}

// Quote represents a price quote sent to a client
type Quote struct {
	ID         record.ID     `json:"id"`
	ClientID   record.ID     `json:"client_id"`
	ClientName string        `json:"client_name"`
	Items      []LineItem    `json:"items"`
	Discount   record.Number `json:"discount"`
	TotalValue record.Number `json:"total_value"`
	Status     string        `json:"status"`
	IssueDate  record.Date   `json:"issue_date"`
	ValidUntil record.Date   `json:"valid_until"`
}

// GrandTotal returns the sum of every line item subtotal
func GrandTotal(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// ClampDiscount restricts a discount percentage to [0, 100]
func ClampDiscount(discount float64) float64 {
	if math.IsNaN(discount) || discount < 0 {
		return 0
	}
	if discount > 100 {
		return 100
	}
	return discount
}

// Total returns the grand total reduced by the discount percentage
func Total(items []LineItem, discount float64) float64 {
	return GrandTotal(items) * (1 - ClampDiscount(discount)/100)
}

// DisplayTotal returns the value displayed for the quote: the total sent by the backend or, if it is
// missing, the total computed from the line items
func (quote Quote) DisplayTotal() float64 {
	if quote.TotalValue > 0 || len(quote.Items) == 0 {
		return quote.TotalValue.Float()
	}
	return Total(quote.Items, quote.Discount.Float())
}

// QuoteForm represents the create and update payload of a quote.
// Line items are submitted as indexed parameters ('items.0.description', 'items.0.quantity', ...).
type QuoteForm struct {
	ClientID   string        `json:"client_id" label:"Cliente" required:"true"`
	Discount   record.Number `json:"discount" label:"Desconto (%)" min:"0" max:"100"`
	Status     string        `json:"status" label:"Situação" required:"true" options:"Pendente|Aprovado|Rejeitado"`
	IssueDate  record.Date   `json:"issue_date" label:"Emissão" required:"true"`
	ValidUntil *record.Date  `json:"valid_until,omitempty" label:"Validade"`
	Items      []LineItem    `json:"items" form:"-"`
	TotalValue record.Number `json:"total_value" form:"-"`
}

// MaxLineItems bounds the indexed line item parameters of a quote form; indexes run from 0 to MaxLineItems-1
const MaxLineItems = 50

// ItemIndex extracts the line item index of a form key such as 'items.3.quantity'.
// Indexes too large to represent are reported as MaxLineItems.
func ItemIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "items.")
	if !ok {
		return 0, false
	}
	digits, _, _ := strings.Cut(rest, ".")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return 0, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index > MaxLineItems {
		return MaxLineItems, true
	}
	return index, true
}

// DecodeForm implements the form.Extension interface
func (quote *QuoteForm) DecodeForm(values url.Values) []*form.FieldError {
	var errs []*form.FieldError
	for key := range values {
		if index, ok := ItemIndex(key); ok && index >= MaxLineItems {
			errs = append(errs, &form.FieldError{
				Field:   "items",
				Label:   "Itens",
				Message: fmt.Sprintf("O orçamento aceita no máximo %d itens.", MaxLineItems),
			})
			break
		}
	}

	quote.Items = nil
	for i := 0; i < MaxLineItems; i++ {
		prefix := "items." + strconv.Itoa(i) + "."
		description := strings.TrimSpace(values.Get(prefix + "description"))
		rawQuantity := values.Get(prefix + "quantity")
		rawPrice := values.Get(prefix + "unit_price")
		if description == "" && strings.TrimSpace(rawQuantity) == "" && strings.TrimSpace(rawPrice) == "" {
			continue
		}

		item := LineItem{Description: description}
		if description == "" {
			errs = append(errs, lineItemError(i, "description", "precisa de uma descrição"))
		}
		quantity, ok := form.ParseNumber(rawQuantity)
		if !ok || quantity <= 0 {
			errs = append(errs, lineItemError(i, "quantity", "precisa de uma quantidade maior que zero"))
		}
		price, ok := form.ParseNumber(rawPrice)
		if !ok || price < 0 {
			errs = append(errs, lineItemError(i, "unit_price", "precisa de um preço unitário válido"))
		}
		item.Quantity = record.Number(quantity)
		item.UnitPrice = record.Number(price)
		quote.Items = append(quote.Items, item)
	}
	if len(quote.Items) == 0 {
		errs = append(errs, &form.FieldError{
			Field:   "items",
			Label:   "Itens",
			Message: "O orçamento precisa de pelo menos um item.",
		})
	}
	quote.TotalValue = record.Number(Total(quote.Items, quote.Discount.Float()))
	return errs
}

// ItemValues returns the indexed form values of line items, e.g. 'items.0.quantity'
func ItemValues(items []LineItem) map[string]string {
	values := make(map[string]string, len(items)*3)
	for i, item := range items {
		prefix := "items." + strconv.Itoa(i) + "."
		values[prefix+"description"] = item.Description
		values[prefix+"quantity"] = strconv.FormatFloat(item.Quantity.Float(), 'f', -1, 64)
		values[prefix+"unit_price"] = strconv.FormatFloat(item.UnitPrice.Float(), 'f', -1, 64)
	}
	return values
}

func lineItemError(index int, field, message string) *form.FieldError {
	return &form.FieldError{
		Field:   fmt.Sprintf("items.%d.%s", index, field),
		Label:   fmt.Sprintf("Item %d", index+1),
		Message: fmt.Sprintf("O item %d %s.", index+1, message),
	}
}

// Preview represents the calculated values of a quote that is being edited
type Preview struct {
	Subtotals  []string `json:"subtotals"`
	GrandTotal string   `json:"grand_total"`
	Discount   string   `json:"discount"`
	Total      string   `json:"total"`
}

// NewPreview calculates the preview of line items and a discount
func NewPreview(items []LineItem, discount float64) Preview {
	preview := Preview{
		Subtotals:  make([]string, 0, len(items)),
		GrandTotal: render.Decimal(GrandTotal(items)),
		Discount:   render.Decimal(ClampDiscount(discount)),
		Total:      render.Decimal(Total(items, discount)),
	}
	for _, item := range items {
		preview.Subtotals = append(preview.Subtotals, render.Decimal(item.Subtotal()))
	}
	return preview
}
