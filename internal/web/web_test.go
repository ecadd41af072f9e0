package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agrosuite/dashboard/internal/backend"
	"github.com/agrosuite/dashboard/internal/cattle"
	"github.com/agrosuite/dashboard/internal/config"
	"github.com/agrosuite/dashboard/internal/dairy"
	"github.com/agrosuite/dashboard/internal/envelope"
	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/landscaping"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Body          string
}

// fakeBackend records every call and answers with the configured handler
type fakeBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	handler func(writer http.ResponseWriter, request *http.Request)
}

func (fake *fakeBackend) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	fake.mu.Lock()
	fake.calls = append(fake.calls, backendCall{
		Method:        request.Method,
		Path:          request.URL.Path,
		Query:         request.URL.Query(),
		Authorization: request.Header.Get("Authorization"),
		Body:          string(body),
	})
	fake.mu.Unlock()
	fake.handler(writer, request)
}

func (fake *fakeBackend) Calls() []backendCall {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]backendCall(nil), fake.calls...)
}

func failing(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusInternalServerError)
}

func newTestService(t *testing.T, fake *fakeBackend, fallbackEnabled bool) *Service {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Environment:         "test",
		BackendBaseURL:      server.URL,
		BackendTimeout:      5 * time.Second,
		PlaceholderToken:    "demo-token",
		TokenCookie:         "access_token",
		FallbackEnabled:     fallbackEnabled,
		DefaultPageSize:     10,
		MaxPageSize:         100,
		Locale:              "pt-BR",
		CurrencySymbol:      "R$",
		ChartAllowedOrigins: []string{"*"},
		NoticeLifetime:      time.Minute,
		AnalyticsMaxPages:   5,
	}
	client, err := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, cfg.PlaceholderToken)
	require.NoError(t, err)
	store, err := fallback.New(Datasets()...)
	require.NoError(t, err)
	formatter, err := render.NewFormatter(cfg.Locale, cfg.CurrencySymbol)
	require.NoError(t, err)

	service := &Service{
		Config:    cfg,
		Backend:   client,
		Samples:   store,
		Formatter: formatter,
	}
	t.Cleanup(service.Shutdown)
	return service
}

func serve(service *Service, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	service.Handler().ServeHTTP(recorder, request)
	return recorder
}

func postForm(target string, values url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func TestListFallsBackToSamples(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Equal(t, 2, strings.Count(body, "<tr data-id="))
	assert.Contains(t, body, "Mimosa")
	assert.Contains(t, body, "Trovão")
	assert.Contains(t, body, sampleNotice)
	assert.NotContains(t, body, "data-page=")
}

func TestListFallbackHonoursFilters(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals?status=vendido", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Equal(t, 1, strings.Count(body, "<tr data-id="))
	assert.Contains(t, body, "Trovão")
	assert.NotContains(t, body, "Mimosa")
}

func TestListWithoutFallbackShowsFailure(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, false)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Zero(t, strings.Count(body, "<tr data-id="))
	assert.Contains(t, body, "Nenhum animal encontrado.")
	assert.Contains(t, body, "Não foi possível carregar os registros")
	assert.NotContains(t, body, sampleNotice)
}

func TestListPaginationKeepsFilters(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, request *http.Request) {
		items := make([]map[string]any, 0, 10)
		for i := 1; i <= 10; i++ {
			items = append(items, map[string]any{"id": i, "name": fmt.Sprintf("Animal %d", i), "status": "Em Engorda"})
		}
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"items":       items,
			"page":        1,
			"page_size":   10,
			"total_items": 25,
			"total_pages": 3,
		})
	}}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals?status=Em+Engorda", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Equal(t, 10, strings.Count(body, "<tr data-id="))
	assert.Contains(t, body, `href="/cattle/animals?page=2&amp;page_size=10&amp;status=Em&#43;Engorda"`)
	assert.Contains(t, body, `aria-current="page"`)
	assert.NotContains(t, body, sampleNotice)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/cattle/animals", calls[0].Path)
	assert.Equal(t, "Em Engorda", calls[0].Query.Get("status"))
	assert.Equal(t, "1", calls[0].Query.Get("page"))
	assert.Equal(t, "10", calls[0].Query.Get("page_size"))
	assert.Equal(t, "Bearer demo-token", calls[0].Authorization)
}

func TestListForwardsTheUserToken(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}}
	service := newTestService(t, fake, true)

	request := httptest.NewRequest(http.MethodGet, "/cattle/animals", nil)
	request.AddCookie(&http.Cookie{Name: "access_token", Value: "user-token"})
	require.Equal(t, http.StatusOK, serve(service, request).Code)

	request = httptest.NewRequest(http.MethodGet, "/cattle/animals", nil)
	request.Header.Set("Authorization", "Bearer header-token")
	require.Equal(t, http.StatusOK, serve(service, request).Code)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer user-token", calls[0].Authorization)
	assert.Equal(t, "Bearer header-token", calls[1].Authorization)
}

func TestListRejectsInvalidPaging(t *testing.T) {
	fake := &fakeBackend{handler: failing}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals?page=0", nil))
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Empty(t, fake.Calls())
}

func TestPanelFragment(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/floriculture/plantings/panel", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="panel">`))
	assert.NotContains(t, body, "<html")
}

func TestCreateRejectsMissingFieldsWithoutCallingTheBackend(t *testing.T) {
	fake := &fakeBackend{handler: failing}
	service := newTestService(t, fake, true)

	response := serve(service, postForm("/cattle/animals", url.Values{"name": {"Estrela"}}))
	require.Equal(t, http.StatusUnprocessableEntity, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, `data-error="official_id"`)
	assert.Contains(t, body, `value="Estrela"`)
	assert.Empty(t, fake.Calls())
}

func TestCreateSendsThePayload(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"id": 3}`))
	}}
	service := newTestService(t, fake, true)

	response := serve(service, postForm("/cattle/animals", url.Values{
		"official_id":  {"BR-2024-0300"},
		"name":         {"Estrela"},
		"breed":        {"Nelore"},
		"sex":          {"F"},
		"entry_date":   {"2024-05-02"},
		"entry_weight": {"301,5"},
		"status":       {"Em Recria"},
	}))
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/cattle/animals", response.Header().Get("Location"))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &payload))
	assert.Equal(t, "BR-2024-0300", payload["official_id"])
	assert.Equal(t, 301.5, payload["entry_weight"])
	assert.Equal(t, "2024-05-02", payload["entry_date"])
}

func TestDeleteFailureShowsTheBackendDetail(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodDelete {
			writer.WriteHeader(http.StatusConflict)
			_, _ = writer.Write([]byte(`{"detail": "Animal possui pesagens vinculadas."}`))
			return
		}
		failing(writer, request)
	}}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodPost, "/cattle/animals/1/actions/delete", nil))
	require.Equal(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/cattle/animals", response.Header().Get("Location"))

	cookies := response.Result().Cookies()
	require.NotEmpty(t, cookies)
	followUp := httptest.NewRequest(http.MethodGet, "/cattle/animals", nil)
	for _, cookie := range cookies {
		followUp.AddCookie(cookie)
	}
	body := serve(service, followUp).Body.String()
	assert.Contains(t, body, "Animal possui pesagens vinculadas.")

	// The notice is displayed only once
	again := httptest.NewRequest(http.MethodGet, "/cattle/animals", nil)
	for _, cookie := range cookies {
		again.AddCookie(cookie)
	}
	assert.NotContains(t, serve(service, again).Body.String(), "Animal possui pesagens vinculadas.")
}

func TestStatusActionUpdatesTheStatus(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodPost, "/landscaping/quotes/2/actions/approve", nil))
	require.Equal(t, http.StatusSeeOther, response.Code)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/api/landscaping/quotes/2", calls[0].Path)
	assert.JSONEq(t, `{"status": "Aprovado"}`, calls[0].Body)
}

func TestUnknownActionIsNotFound(t *testing.T) {
	fake := &fakeBackend{handler: failing}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodPost, "/cattle/animals/1/actions/explode", nil))
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Empty(t, fake.Calls())
}

func TestShowFallsBackToTheSampleRecord(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals/2", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, `data-sample="true"`)
	assert.Contains(t, body, "Trovão")
	assert.Contains(t, body, `value="BR-2023-0107"`)
}

func TestShowReportsMissingRecords(t *testing.T) {
	fake := &fakeBackend{handler: func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"detail": "Not found"}`))
	}}
	service := newTestService(t, fake, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/cattle/animals/99", nil))
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestQuoteFormShowsLineItems(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/landscaping/quotes/1", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, `name="items.0.description"`)
	assert.Contains(t, body, `data-total`)
}

func TestQuotePreview(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, postForm("/landscaping/quotes/preview", url.Values{
		"items.0.description": {"Poda"},
		"items.0.quantity":    {"3"},
		"items.0.unit_price":  {"150"},
		"discount":            {"10"},
	}))
	require.Equal(t, http.StatusOK, response.Code)

	var preview map[string]any
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &preview))
	assert.Equal(t, "450.00", preview["grand_total"])
	assert.Equal(t, "405.00", preview["total"])
}

func TestChartUsesEveryFallbackRecord(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	request := httptest.NewRequest(http.MethodGet, "/dairy/analytics/chart.json", nil)
	request.Header.Set("Origin", "https://reports.example.com")
	response := serve(service, request)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "*", response.Header().Get("Access-Control-Allow-Origin"))

	var chart struct {
		dairy.ChartData
		Summary dairy.Summary `json:"summary"`
		State   string        `json:"state"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &chart))
	if diff := cmp.Diff(dairy.BuildChart(dairy.Samples()), chart.ChartData); diff != "" {
		t.Errorf("chart mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(dairy.Samples()), chart.Summary.Records)
	assert.Equal(t, "rendered_fallback", chart.State)
}

func TestAnalyticsPage(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/dairy/analytics", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, `id="production-chart"`)
	assert.Equal(t, len(dairy.Samples()), strings.Count(body, "<tr data-id="))
}

func TestHealth(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, response.Code)

	var health healthResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.FallbackEnabled)
	assert.Equal(t, "pt-BR", health.Locale)
}

func TestHomeListsEveryEntity(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body := response.Body.String()
	for _, dataset := range Datasets() {
		assert.Contains(t, body, `href="/`+dataset.Table+`"`)
	}
}

func TestUnknownPage(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)

	response := serve(service, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, response.Code)
}

var rowID = regexp.MustCompile(`<tr data-id="([^"]*)"`)

func renderedIDs(body string) []string {
	ids := []string{}
	for _, match := range rowID.FindAllStringSubmatch(body, -1) {
		ids = append(ids, match[1])
	}
	return ids
}

func TestFallbackAndLiveListsAgreeOnFilters(t *testing.T) {
	live := &fakeBackend{handler: func(writer http.ResponseWriter, request *http.Request) {
		filters := filter.FromQuery(request.URL.Query(), cattle.Filters)
		matching := filter.Apply(cattle.Filters, cattle.Samples(), filters)
		_ = json.NewEncoder(writer).Encode(envelope.Paginate(matching, 1, 10))
	}}
	liveService := newTestService(t, live, true)
	fallbackService := newTestService(t, &fakeBackend{handler: failing}, true)

	cases := []struct {
		name     string
		query    url.Values
		expected []string
	}{
		{"no filters", url.Values{}, []string{"1", "2"}},
		{"status", url.Values{"status": {"em engorda"}}, []string{"1"}},
		{"weight lower bound", url.Values{"weight_min": {"450"}}, []string{"2"}},
		{"weight range", url.Values{"weight_min": {"400"}, "weight_max": {"500"}}, []string{"1"}},
		{"entry date from", url.Values{"date_from": {"2024-01-01"}}, []string{"1"}},
		{"entry date until", url.Values{"date_to": {"2023-12-31"}}, []string{"2"}},
		{"breed and date", url.Values{"breed": {"Angus"}, "date_from": {"2023-01-01"}}, []string{"2"}},
		{"no match", url.Values{"status": {"Morto"}}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/cattle/animals?" + tc.query.Encode()

			liveResponse := serve(liveService, httptest.NewRequest(http.MethodGet, target, nil))
			require.Equal(t, http.StatusOK, liveResponse.Code)
			require.NotContains(t, liveResponse.Body.String(), sampleNotice)

			fallbackResponse := serve(fallbackService, httptest.NewRequest(http.MethodGet, target, nil))
			require.Equal(t, http.StatusOK, fallbackResponse.Code)
			require.Contains(t, fallbackResponse.Body.String(), sampleNotice)

			assert.Equal(t, tc.expected, renderedIDs(liveResponse.Body.String()))
			assert.Equal(t, renderedIDs(liveResponse.Body.String()), renderedIDs(fallbackResponse.Body.String()))
		})
	}
}

func TestQuoteFormLimitsLineItems(t *testing.T) {
	fake := &fakeBackend{handler: failing}
	service := newTestService(t, fake, true)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- serve(service, postForm("/landscaping/quotes", url.Values{
			"client_id":                       {"1"},
			"status":                          {"Pendente"},
			"issue_date":                      {"2024-05-02"},
			"items.0.description":             {"Poda"},
			"items.0.quantity":                {"3"},
			"items.0.unit_price":              {"150"},
			"items.60.description":            {"Canteiro suspenso"},
			"items.3000000000000.description": {"Adubação"},
		}))
	}()

	var response *httptest.ResponseRecorder
	select {
	case response = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("the quote form did not respond in time")
	}
	require.Equal(t, http.StatusUnprocessableEntity, response.Code)

	body := response.Body.String()
	assert.Contains(t, body, fmt.Sprintf("O orçamento aceita no máximo %d itens.", landscaping.MaxLineItems))
	assert.Contains(t, body, `name="items.0.description"`)
	assert.NotContains(t, body, `name="items.60.description"`)
	assert.NotContains(t, body, "Canteiro suspenso")
	assert.Empty(t, fake.Calls())
}

func TestQuoteFormRejectsNonFiniteNumbers(t *testing.T) {
	fake := &fakeBackend{handler: failing}
	service := newTestService(t, fake, true)

	response := serve(service, postForm("/landscaping/quotes", url.Values{
		"client_id":           {"1"},
		"status":              {"Pendente"},
		"issue_date":          {"2024-05-02"},
		"discount":            {"NaN"},
		"items.0.description": {"Poda"},
		"items.0.quantity":    {"NaN"},
		"items.0.unit_price":  {"Inf"},
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	assert.Contains(t, response.Body.String(), `data-error="discount"`)
	assert.Empty(t, fake.Calls())
}

func TestShutdownStopsTheServer(t *testing.T) {
	service := newTestService(t, &fakeBackend{handler: failing}, true)
	service.Config.ListenAddress = "127.0.0.1:0"

	errs := make(chan error, 1)
	go func() {
		errs <- service.Startup()
	}()
	service.Shutdown()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("the server did not stop")
	}
	assert.ErrorIs(t, service.Startup(), http.ErrServerClosed)
}
