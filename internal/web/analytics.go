package web

import (
	"net/http"

	"github.com/agrosuite/dashboard/internal/dairy"
	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/listing"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// analytics serves the milk production chart built from every page of the production list
type analytics struct {
	service *Service
	page    *entityPage[dairy.Production, dairy.ProductionForm]
}

type analyticsResult struct {
	panel   *render.Panel
	filters filter.Set
	state   listing.State
	rows    []dairy.Production
}

func (a *analytics) routes(router chi.Router) {
	router.Get("/dairy/analytics", a.EndpointPage)
	router.Group(func(router chi.Router) {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.service.Config.ChartAllowedOrigins,
			AllowedMethods: []string{http.MethodHead, http.MethodGet},
			AllowedHeaders: []string{"*"},
		}))
		router.Get("/dairy/analytics/chart.json", a.EndpointChart)
	})
}

// drain reads every page of the production list matching the request filters
func (a *analytics) drain(request *http.Request) (*analyticsResult, error) {
	config := a.service.Config
	filters := filter.FromQuery(request.URL.Query(), a.page.def.Schema)
	panel := &render.Panel{}

	accumulator := &listing.Accumulator[dairy.Production]{}
	controller := a.page.controller(request.Context(), panel)
	controller.Accumulator = accumulator
	controller.Renderer = listing.RendererFunc[dairy.Production](func([]dairy.Production) error {
		return nil
	})
	controller.Paginator = listing.PaginatorFunc(func(envelope.Meta, filter.Set, listing.PageRequestFunc) error {
		return nil
	})

	outcome, err := controller.Drain(request.Context(), filters, config.MaxPageSize, config.AnalyticsMaxPages)
	if err != nil {
		return nil, err
	}

	rows := accumulator.Rows()
	renderer := &render.Renderer[dairy.Production]{View: a.page.view, Formatter: a.service.Formatter, Panel: panel}
	if err := renderer.Render(rows); err != nil {
		return nil, err
	}
	switch outcome.State {
	case listing.StateRenderedFallback:
		panel.SetNotice(render.Notice("warning", sampleNotice))
	case listing.StateFailed:
		panel.SetNotice(render.Notice("error", "Não foi possível carregar as ordenhas."))
	}
	return &analyticsResult{
		panel:   panel,
		filters: outcome.Filters,
		state:   outcome.State,
		rows:    rows,
	}, nil
}

type summaryView struct {
	Total   string
	Average string
	Fat     string
	BestDay string
}

// EndpointPage handles the 'GET /dairy/analytics' endpoint
func (a *analytics) EndpointPage(writer http.ResponseWriter, request *http.Request) {
	result, err := a.drain(request)
	if err != nil {
		a.service.renderInternalError(writer, request, err)
		return
	}

	formatter := a.service.Formatter
	summary := dairy.Summarize(result.rows)
	bestDay := render.Placeholder
	if date, ok := record.ParseDate(summary.BestDay); ok {
		bestDay = formatter.Date(date) + " (" + formatter.Number(record.Number(summary.BestDayLiters), 1) + " L)"
	}

	a.service.renderPage(writer, request, http.StatusOK, "analytics", map[string]any{
		"Title":   "Análise da produção de leite",
		"Path":    "/dairy/analytics",
		"Filters": a.page.filterFields(result.filters),
		"Chart":   dairy.BuildChart(result.rows),
		"Panel":   result.panel.Snapshot(),
		"Summary": summaryView{
			Total:   formatter.Number(record.Number(summary.TotalLiters), 1) + " L",
			Average: formatter.Number(record.Number(summary.AverageLiters), 1) + " L",
			Fat:     formatter.Percent(record.Number(summary.AverageFat)),
			BestDay: bestDay,
		},
	})
}

type chartResponse struct {
	dairy.ChartData
	Summary dairy.Summary `json:"summary"`
	State   string        `json:"state"`
}

// EndpointChart handles the 'GET /dairy/analytics/chart.json' endpoint
func (a *analytics) EndpointChart(writer http.ResponseWriter, request *http.Request) {
	result, err := a.drain(request)
	if err != nil {
		a.service.writer.WriteInternalError(writer, err)
		return
	}
	a.service.writer.WriteJSON(writer, &chartResponse{
		ChartData: dairy.BuildChart(result.rows),
		Summary:   dairy.Summarize(result.rows),
		State:     result.state.String(),
	})
}
