package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/agrosuite/dashboard/internal/actions"
	"github.com/agrosuite/dashboard/internal/backend"
	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/landscaping"
	"github.com/agrosuite/dashboard/internal/listing"
	"github.com/agrosuite/dashboard/internal/pagination"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/agrosuite/dashboard/internal/web/schema"
	"github.com/agrosuite/dashboard/internal/web/validation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	sampleNotice  = "Não foi possível carregar os dados do servidor. Exibindo dados de exemplo."
	savedNotice   = "Registro salvo com sucesso."
	deletedNotice = "Registro excluído com sucesso."
)

// entityPage serves the list, form and action endpoints of one entity type
type entityPage[T any, F any] struct {
	service  *Service
	def      *entity.Definition[T]
	view     *render.View[T]
	endpoint *backend.Endpoint[T]
	samples  *fallback.Source[T]
	actions  *actions.Table

	// lineItems enables the line item editor of quotes
	lineItems bool

	// recordValues replaces form.Values when an edit form is prefilled
	recordValues func(rec T) map[string]string

	extend func(router chi.Router)
}

func newEntityPage[T any, F any](service *Service, def *entity.Definition[T]) *entityPage[T, F] {
	view := def.View
	view.BasePath = def.Path()
	view.Actions = def.Actions()

	page := &entityPage[T, F]{
		service: service,
		def:     def,
		view:    &view,
		endpoint: &backend.Endpoint[T]{
			Client:    service.Backend,
			Path:      def.Resource,
			UseSearch: def.UseSearch,
		},
		samples: &fallback.Source[T]{
			Store:  service.Samples,
			Table:  def.Table(),
			Schema: def.Schema,
		},
	}
	page.actions = page.actionTable()
	return page
}

func (page *entityPage[T, F]) entry() navEntry {
	return navEntry{
		Domain: domainLabels[page.def.Domain],
		Title:  page.def.Title,
		Path:   page.def.Path(),
	}
}

func (page *entityPage[T, F]) routes(router chi.Router) {
	router.Route(page.def.Path(), func(router chi.Router) {
		router.Get("/", page.EndpointList)
		router.Post("/", page.EndpointCreate)
		router.Get("/panel", page.EndpointPanel)
		router.Get("/new", page.EndpointNew)
		if page.extend != nil {
			page.extend(router)
		}
		router.Get("/{id}", page.EndpointShow)
		router.Post("/{id}", page.EndpointUpdate)
		router.Post("/{id}/actions/{action}", page.EndpointAction)
	})
}

func (page *entityPage[T, F]) actionTable() *actions.Table {
	table := actions.NewTable()
	table.Register(entity.ActionView, func(_ context.Context, id string) (actions.Result, error) {
		return actions.Result{Redirect: page.view.RecordPath(id)}, nil
	})
	table.Register(entity.ActionDelete, func(ctx context.Context, id string) (actions.Result, error) {
		if err := page.endpoint.Delete(ctx, id); err != nil {
			return actions.Result{}, err
		}
		return actions.Result{Notice: deletedNotice}, nil
	})

	field := page.def.StatusField
	if field == "" {
		field = "status"
	}
	for _, status := range page.def.StatusActions {
		status := status
		table.Register(status.Name, func(ctx context.Context, id string) (actions.Result, error) {
			if err := page.endpoint.Update(ctx, id, map[string]string{field: status.Status}); err != nil {
				return actions.Result{}, err
			}
			return actions.Result{Notice: fmt.Sprintf("Situação alterada para '%s'.", status.Status)}, nil
		})
	}
	return table
}

// controller creates the list controller of a single request; the panel belongs to that request
func (page *entityPage[T, F]) controller(ctx context.Context, panel *render.Panel) *listing.Controller[T] {
	controller := &listing.Controller[T]{
		Name:   page.def.Table(),
		Source: page.endpoint,
		Renderer: &render.Renderer[T]{
			View:      page.view,
			Formatter: page.service.Formatter,
			Panel:     panel,
		},
		Paginator: &render.Pagination{
			Panel: panel,
			Href: func(filters filter.Set, number, size int) string {
				return pagination.Href(page.def.Path(), filters, number, size)
			},
		},
	}
	if page.service.Config.FallbackEnabled {
		controller.Fallback = page.samples
	}
	controller.OnPage = func(filters filter.Set, number, size int) {
		if _, err := controller.Load(ctx, filters, number, size); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("entity", page.def.Table()).Msg("could not load the requested page")
		}
	}
	return controller
}

func (page *entityPage[T, F]) load(writer http.ResponseWriter, request *http.Request) (*render.Panel, *listing.Outcome[T], int, bool) {
	config := page.service.Config
	filters := filter.FromQuery(request.URL.Query(), page.def.Schema)
	number, size, errs := validation.Paging(request, config.DefaultPageSize, config.MaxPageSize)
	if len(errs) > 0 {
		page.service.renderError(writer, request, http.StatusBadRequest, messagesOf(errs)...)
		return nil, nil, 0, false
	}

	panel := &render.Panel{}
	outcome, err := page.controller(request.Context(), panel).Load(request.Context(), filters, number, size)
	if err != nil {
		page.service.renderInternalError(writer, request, err)
		return nil, nil, 0, false
	}
	switch outcome.State {
	case listing.StateRenderedFallback:
		panel.SetNotice(render.Notice("warning", sampleNotice))
	case listing.StateFailed:
		panel.SetNotice(render.Notice("error", "Não foi possível carregar os registros: "+backend.Detail(outcome.Cause)))
	}
	return panel, outcome, size, true
}

func (page *entityPage[T, F]) filterFields(filters filter.Set) []form.Field {
	fields := make([]form.Field, 0, len(page.def.FilterFields))
	for _, field := range page.def.FilterFields {
		field.Value, _ = filters.Get(field.Name)
		fields = append(fields, field)
	}
	return fields
}

// EndpointList handles the 'GET /{domain}/{entity}' endpoint
func (page *entityPage[T, F]) EndpointList(writer http.ResponseWriter, request *http.Request) {
	panel, outcome, size, ok := page.load(writer, request)
	if !ok {
		return
	}
	page.service.renderPage(writer, request, http.StatusOK, "list", map[string]any{
		"Title":    page.def.Title,
		"Path":     page.def.Path(),
		"Filters":  page.filterFields(outcome.Filters),
		"PageSize": size,
		"Panel":    panel.Snapshot(),
	})
}

// EndpointPanel handles the 'GET /{domain}/{entity}/panel' endpoint
func (page *entityPage[T, F]) EndpointPanel(writer http.ResponseWriter, request *http.Request) {
	panel, _, _, ok := page.load(writer, request)
	if !ok {
		return
	}
	buf := new(bytes.Buffer)
	if err := renderPanel(buf, panel.Snapshot()); err != nil {
		page.service.renderInternalError(writer, request, err)
		return
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(writer)
}

// EndpointNew handles the 'GET /{domain}/{entity}/new' endpoint
func (page *entityPage[T, F]) EndpointNew(writer http.ResponseWriter, request *http.Request) {
	page.renderForm(writer, request, formState[T]{status: http.StatusOK})
}

// EndpointCreate handles the 'POST /{domain}/{entity}' endpoint
func (page *entityPage[T, F]) EndpointCreate(writer http.ResponseWriter, request *http.Request) {
	page.submit(writer, request, "")
}

// EndpointUpdate handles the 'POST /{domain}/{entity}/{id}' endpoint
func (page *entityPage[T, F]) EndpointUpdate(writer http.ResponseWriter, request *http.Request) {
	page.submit(writer, request, chi.URLParam(request, "id"))
}

func (page *entityPage[T, F]) submit(writer http.ResponseWriter, request *http.Request, id string) {
	if err := request.ParseForm(); err != nil {
		page.service.renderError(writer, request, http.StatusBadRequest, "O formulário enviado é inválido.")
		return
	}
	values := form.Submitted(request.PostForm)

	payload, fieldErrs, err := form.Decode[F](request.PostForm)
	if err != nil {
		page.service.renderInternalError(writer, request, err)
		return
	}
	if len(fieldErrs) > 0 {
		page.renderForm(writer, request, formState[T]{
			status: http.StatusUnprocessableEntity,
			id:     id,
			values: values,
			errs:   fieldErrs,
			notice: render.Notice("error", form.Summary(fieldErrs)),
		})
		return
	}

	if id == "" {
		err = page.endpoint.Create(request.Context(), payload)
	} else {
		err = page.endpoint.Update(request.Context(), id, payload)
	}
	if err != nil {
		hlog.FromRequest(request).Warn().Err(err).Str("entity", page.def.Table()).Msg("could not save a record")
		page.renderForm(writer, request, formState[T]{
			status: statusOf(err),
			id:     id,
			values: values,
			notice: render.Notice("error", backend.Detail(err)),
		})
		return
	}

	page.service.notices.Push(writer, notice{Level: "success", Message: savedNotice})
	http.Redirect(writer, request, page.def.Path(), http.StatusSeeOther)
}

// EndpointShow handles the 'GET /{domain}/{entity}/{id}' endpoint
func (page *entityPage[T, F]) EndpointShow(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	rec, err := page.endpoint.Get(request.Context(), id)
	state := formState[T]{status: http.StatusOK, id: id, record: rec}
	if err != nil {
		if backend.IsNotFound(err) {
			page.service.renderError(writer, request, http.StatusNotFound, page.def.Singular+" não encontrado(a).")
			return
		}
		if page.service.Config.FallbackEnabled {
			sample, lookupErr := page.samples.Lookup(id)
			if lookupErr != nil {
				page.service.renderInternalError(writer, request, lookupErr)
				return
			}
			if sample != nil {
				state.record = sample
				state.sample = true
				state.notice = render.Notice("warning", sampleNotice)
			}
		}
		if state.record == nil {
			page.service.renderError(writer, request, statusOf(err), backend.Detail(err))
			return
		}
	}

	if page.recordValues != nil {
		state.values = page.recordValues(*state.record)
	} else {
		state.values = form.Values(*state.record)
	}
	page.renderForm(writer, request, state)
}

// EndpointAction handles the 'POST /{domain}/{entity}/{id}/actions/{action}' endpoint
func (page *entityPage[T, F]) EndpointAction(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	name := chi.URLParam(request, "action")

	result, err := page.actions.Dispatch(request.Context(), name, id)
	if err != nil {
		if errors.Is(err, actions.ErrUnknownAction) {
			page.service.renderError(writer, request, http.StatusNotFound, schema.ErrUnknownAction(name).Message)
			return
		}
		hlog.FromRequest(request).Warn().Err(err).Str("entity", page.def.Table()).Str("action", name).Msg("a row action failed")
		page.service.notices.Push(writer, notice{Level: "error", Message: backend.Detail(err)})
		http.Redirect(writer, request, page.def.Path(), http.StatusSeeOther)
		return
	}

	if result.Notice != "" {
		page.service.notices.Push(writer, notice{Level: "success", Message: result.Notice})
	}
	target := result.Redirect
	if target == "" {
		target = page.def.Path()
	}
	http.Redirect(writer, request, target, http.StatusSeeOther)
}

type formState[T any] struct {
	status int
	id     string
	values map[string]string
	errs   []*form.FieldError
	notice template.HTML
	record *T
	sample bool
}

func (page *entityPage[T, F]) renderForm(writer http.ResponseWriter, request *http.Request, state formState[T]) {
	values := state.values
	if values == nil {
		values = map[string]string{}
	}
	title := page.def.Singular + ": novo registro"
	action := page.def.Path()
	if state.id != "" {
		title = page.def.Singular + " " + state.id
		action = page.view.RecordPath(state.id)
	}

	var details []render.Detail
	if state.record != nil {
		renderer := &render.Renderer[T]{View: page.view, Formatter: page.service.Formatter, Panel: &render.Panel{}}
		details = renderer.Describe(*state.record)
	}

	data := map[string]any{
		"Title":      title,
		"Path":       page.def.Path(),
		"Action":     action,
		"Fields":     form.Fields[F](values, state.errs),
		"Notice":     state.notice,
		"Details":    details,
		"Sample":     state.sample,
		"LineItems":  []lineItemRow(nil),
		"ItemsTotal": "",
		"ItemsError": "",
	}
	if page.lineItems {
		rows, total := lineItemRows(values)
		data["LineItems"] = rows
		data["ItemsTotal"] = total
		data["ItemsError"] = itemErrors(state.errs)
	}
	page.service.renderPage(writer, request, state.status, "form", data)
}

type lineItemRow struct {
	Index       int
	Description string
	Quantity    string
	UnitPrice   string
	Subtotal    string
}

// lineItemRows reads the indexed line item values and appends an empty row for a new item
func lineItemRows(values map[string]string) ([]lineItemRow, string) {
	var rows []lineItemRow
	var items []landscaping.LineItem
	next := 0
	for key := range values {
		if index, ok := landscaping.ItemIndex(key); ok && index >= next {
			next = min(index+1, landscaping.MaxLineItems)
		}
	}
	for i := 0; i < next; i++ {
		prefix := "items." + strconv.Itoa(i) + "."
		description := values[prefix+"description"]
		rawQuantity := values[prefix+"quantity"]
		rawPrice := values[prefix+"unit_price"]
		if description == "" && rawQuantity == "" && rawPrice == "" {
			continue
		}
		quantity, _ := form.ParseNumber(rawQuantity)
		price, _ := form.ParseNumber(rawPrice)
		item := landscaping.LineItem{
			Description: description,
			Quantity:    record.Number(quantity),
			UnitPrice:   record.Number(price),
		}
		items = append(items, item)
		rows = append(rows, lineItemRow{
			Index:       i,
			Description: description,
			Quantity:    rawQuantity,
			UnitPrice:   rawPrice,
			Subtotal:    render.Decimal(item.Subtotal()),
		})
	}
	if next < landscaping.MaxLineItems {
		rows = append(rows, lineItemRow{Index: next})
	}

	discount, _ := form.ParseNumber(values["discount"])
	return rows, render.Decimal(landscaping.Total(items, discount))
}

func itemErrors(errs []*form.FieldError) string {
	var messages []string
	for _, err := range errs {
		if err.Field == "items" || strings.HasPrefix(err.Field, "items.") {
			messages = append(messages, err.Message)
		}
	}
	return strings.Join(messages, " ")
}

// EndpointQuotePreview handles the 'POST /landscaping/quotes/preview' endpoint
func (service *Service) EndpointQuotePreview(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrFormInvalid("items", "O formulário enviado é inválido."))
		return
	}
	quote := new(landscaping.QuoteForm)
	_ = quote.DecodeForm(request.PostForm)
	discount, _ := form.ParseNumber(request.PostForm.Get("discount"))
	service.writer.WriteJSON(writer, landscaping.NewPreview(quote.Items, discount))
}

// statusOf maps a backend failure to the status code of the page reporting it
func statusOf(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

func messagesOf(errs []*schema.Error) []string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return messages
}
