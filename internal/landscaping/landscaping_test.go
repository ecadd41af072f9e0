package landscaping

import (
	"net/url"
	"testing"

	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemSubtotal(t *testing.T) {
	item := LineItem{Description: "Poda", Quantity: 3, UnitPrice: 150}
	assert.Equal(t, 450.0, item.Subtotal())
	assert.Equal(t, "450.00", NewPreview([]LineItem{item}, 0).Subtotals[0])
}

func TestTotalAppliesDiscount(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, UnitPrice: 150},
		{Quantity: 2, UnitPrice: 25},
	}
	assert.Equal(t, 500.0, GrandTotal(items))
	assert.InDelta(t, 450.0, Total(items, 10), 1e-9)
	assert.InDelta(t, GrandTotal(items)*0.9, Total(items, 10), 1e-9)
	assert.Equal(t, 500.0, Total(items, -5))
	assert.Equal(t, 0.0, Total(items, 150))
}

func TestPreview(t *testing.T) {
	preview := NewPreview([]LineItem{{Quantity: 3, UnitPrice: 150}, {Quantity: 1, UnitPrice: 50}}, 10)
	assert.Equal(t, Preview{
		Subtotals:  []string{"450.00", "50.00"},
		GrandTotal: "500.00",
		Discount:   "10.00",
		Total:      "450.00",
	}, preview)
}

func TestDisplayTotal(t *testing.T) {
	computed := Quote{Items: []LineItem{{Quantity: 2, UnitPrice: 100}}, Discount: 50}
	assert.Equal(t, 100.0, computed.DisplayTotal())

	sent := Quote{Items: []LineItem{{Quantity: 2, UnitPrice: 100}}, TotalValue: 180}
	assert.Equal(t, 180.0, sent.DisplayTotal())
}

func TestQuoteFormDecodesLineItems(t *testing.T) {
	quote, errs, err := form.Decode[QuoteForm](url.Values{
		"client_id":           {"1"},
		"discount":            {"10"},
		"status":              {StatusPending},
		"issue_date":          {"2024-04-02"},
		"items.0.description": {"Poda"},
		"items.0.quantity":    {"3"},
		"items.0.unit_price":  {"150"},
		"items.2.description": {"Adubação"},
		"items.2.quantity":    {"1"},
		"items.2.unit_price":  {"50,00"},
	})
	require.NoError(t, err)
	require.Empty(t, errs)

	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Adubação", quote.Items[1].Description)
	assert.Equal(t, record.Number(50), quote.Items[1].UnitPrice)
	assert.InDelta(t, 450.0, quote.TotalValue.Float(), 1e-9)
}

func TestQuoteFormRejectsInvalidLineItems(t *testing.T) {
	_, errs, err := form.Decode[QuoteForm](url.Values{
		"client_id":           {"1"},
		"status":              {StatusPending},
		"issue_date":          {"2024-04-02"},
		"items.0.description": {"Poda"},
		"items.0.quantity":    {"0"},
		"items.0.unit_price":  {"abc"},
	})
	require.NoError(t, err)

	messages := form.Errors(errs)
	assert.Contains(t, messages, "items.0.quantity")
	assert.Contains(t, messages, "items.0.unit_price")
}

func TestQuoteFormRequiresItems(t *testing.T) {
	_, errs, err := form.Decode[QuoteForm](url.Values{"client_id": {"1"}, "status": {StatusPending}, "issue_date": {"2024-04-02"}})
	require.NoError(t, err)
	assert.Equal(t, "O orçamento precisa de pelo menos um item.", form.Errors(errs)["items"])
}

func source[T any](t *testing.T, def *entity.Definition[T]) *fallback.Source[T] {
	store, err := fallback.New(def.Dataset())
	require.NoError(t, err)
	return &fallback.Source[T]{Store: store, Table: def.Table(), Schema: def.Schema}
}

func TestQuoteSamplesCarryTotals(t *testing.T) {
	quotes := QuoteSamples()
	assert.InDelta(t, 2403.0, quotes[0].TotalValue.Float(), 1e-9)

	env, err := source(t, Quotes()).Envelope(filter.New(map[string]string{"value_min": "2500"}), 1, 10)
	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, record.ID("2"), env.Items[0].ID)
}

func TestFallbackFilters(t *testing.T) {
	clients, err := source(t, Clients()).Envelope(filter.New(map[string]string{"search": "123.456"}), 1, 10)
	require.NoError(t, err)
	assert.Len(t, clients.Items, 1)

	services, err := source(t, Services()).Envelope(filter.New(map[string]string{"price_max": "50", "status": StatusActive}), 1, 10)
	require.NoError(t, err)
	assert.Len(t, services.Items, 1)

	projects, err := source(t, Projects()).Envelope(filter.New(map[string]string{"status": StatusDone}), 1, 10)
	require.NoError(t, err)
	assert.Len(t, projects.Items, 1)

	maintenance, err := source(t, MaintenanceSchedule()).Envelope(filter.New(map[string]string{"date_from": "2024-03-01"}), 1, 10)
	require.NoError(t, err)
	assert.Len(t, maintenance.Items, 1)
}

func TestStatusActions(t *testing.T) {
	actions := Quotes().StatusActions
	require.Len(t, actions, 2)
	assert.True(t, actions[0].Allowed(StatusPending))
	assert.False(t, actions[0].Allowed(StatusApproved))

	complete := MaintenanceSchedule().StatusActions[0]
	assert.Equal(t, StatusCompleted, complete.Status)
	assert.True(t, complete.Allowed(StatusScheduled))
}

func TestItemValuesRoundTripThroughQuoteForm(t *testing.T) {
	items := []LineItem{
		{Description: "Poda", Quantity: 3, UnitPrice: 150},
		{Description: "Adubação", Quantity: 1.5, UnitPrice: 80.25},
	}
	values := ItemValues(items)
	assert.Equal(t, "1.5", values["items.1.quantity"])

	submitted := url.Values{}
	for key, value := range values {
		submitted.Set(key, value)
	}
	quote := new(QuoteForm)
	assert.Empty(t, quote.DecodeForm(submitted))
	assert.Equal(t, items, quote.Items)
}

func TestItemIndex(t *testing.T) {
	cases := []struct {
		key   string
		index int
		ok    bool
	}{
		{"items.0.description", 0, true},
		{"items.49.quantity", 49, true},
		{"items.60.unit_price", MaxLineItems, true},
		{"items.99999999999999999999999.description", MaxLineItems, true},
		{"items.x.description", 0, false},
		{"items..description", 0, false},
		{"discount", 0, false},
	}
	for _, tc := range cases {
		index, ok := ItemIndex(tc.key)
		assert.Equal(t, tc.ok, ok, tc.key)
		assert.Equal(t, tc.index, index, tc.key)
	}
}

func TestQuoteFormRejectsItemsBeyondTheLimit(t *testing.T) {
	quote := new(QuoteForm)
	errs := quote.DecodeForm(url.Values{
		"items.0.description":  {"Poda"},
		"items.0.quantity":     {"1"},
		"items.0.unit_price":   {"150"},
		"items.60.description": {"Plantio"},
	})
	messages := form.Errors(errs)
	assert.Equal(t, "O orçamento aceita no máximo 50 itens.", messages["items"])
	assert.Len(t, quote.Items, 1)
}

func TestQuoteFormRejectsNonFiniteNumbers(t *testing.T) {
	quote := new(QuoteForm)
	errs := quote.DecodeForm(url.Values{
		"items.0.description": {"Poda"},
		"items.0.quantity":    {"NaN"},
		"items.0.unit_price":  {"Inf"},
	})
	messages := form.Errors(errs)
	assert.Contains(t, messages, "items.0.quantity")
	assert.Contains(t, messages, "items.0.unit_price")
}
