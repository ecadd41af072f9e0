package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/agrosuite/dashboard/internal/backend"
	"github.com/agrosuite/dashboard/internal/cattle"
	"github.com/agrosuite/dashboard/internal/config"
	"github.com/agrosuite/dashboard/internal/dairy"
	"github.com/agrosuite/dashboard/internal/fallback"
	"github.com/agrosuite/dashboard/internal/floriculture"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/landscaping"
	"github.com/agrosuite/dashboard/internal/render"
	"github.com/agrosuite/dashboard/internal/web/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

var domainLabels = map[string]string{
	"cattle":       "Pecuária",
	"floriculture": "Floricultura",
	"landscaping":  "Paisagismo",
	"dairy":        "Leite",
}

type navEntry struct {
	Domain string
	Title  string
	Path   string
}

// Service represents the dashboard web service
type Service struct {
	mu     sync.Mutex
	server *http.Server
	closed bool

	Config    *config.Config
	Backend   *backend.Client
	Samples   *fallback.Store
	Formatter *render.Formatter

	writer  *schema.Writer
	notices *noticeBoard
	nav     []navEntry

	once    sync.Once
	handler http.Handler
}

// Datasets returns the sample datasets of every entity list the dashboard displays
func Datasets() []fallback.Dataset {
	return []fallback.Dataset{
		cattle.Animals().Dataset(),
		floriculture.Plantings().Dataset(),
		landscaping.Clients().Dataset(),
		landscaping.Services().Dataset(),
		landscaping.Quotes().Dataset(),
		landscaping.Projects().Dataset(),
		landscaping.MaintenanceSchedule().Dataset(),
		dairy.Productions().Dataset(),
	}
}

// Startup starts up the dashboard.
// It returns http.ErrServerClosed once Shutdown has been called, even if Shutdown came first.
func (service *Service) Startup() error {
	service.mu.Lock()
	if service.closed {
		service.mu.Unlock()
		return http.ErrServerClosed
	}
	server := &http.Server{
		Addr:              service.Config.ListenAddress,
		Handler:           service.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	service.server = server
	service.mu.Unlock()
	return server.ListenAndServe()
}

// Shutdown shuts down the dashboard
func (service *Service) Shutdown() {
	service.mu.Lock()
	server := service.server
	service.server = nil
	var notices *noticeBoard
	if !service.closed {
		notices = service.notices
	}
	service.closed = true
	service.mu.Unlock()

	if notices != nil {
		notices.entries.StopCleanupTask()
	}
	if server != nil {
		server.Close()
	}
}

// Handler returns the HTTP handler of the dashboard, building it on first use
func (service *Service) Handler() http.Handler {
	service.once.Do(func() {
		service.handler = service.buildRouter()
	})
	return service.handler
}

func (service *Service) buildRouter() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the dashboard experienced an unexpected error")
		},
	}

	// Create the flash notice board
	service.notices = newNoticeBoard(service.Config.NoticeLifetime)
	if service.Config.NoticeLifetime > 0 {
		service.notices.entries.ScheduleCleanupTask(service.Config.NoticeLifetime)
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(hlog.RequestIDHandler("request_id", "X-Request-Id"))
	router.Use(hlog.RemoteAddrHandler("ip"))
	router.Use(hlog.AccessHandler(func(request *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(request).Debug().
			Str("method", request.Method).
			Stringer("url", request.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("handled request")
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RedirectSlashes)
	router.Use(service.MiddlewareToken)
	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		service.renderError(writer, request, http.StatusNotFound, "A página solicitada não existe.")
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		service.renderError(writer, request, http.StatusMethodNotAllowed, "Método não permitido.")
	})

	// Register the endpoint handlers
	service.registerEndpoints(router)
	return router
}

func (service *Service) registerEndpoints(router chi.Router) {
	router.Get("/", service.EndpointHome)
	router.Get("/healthz", service.EndpointHealth)

	service.mount(router, newEntityPage[cattle.Animal, cattle.AnimalForm](service, cattle.Animals()))
	service.mount(router, newEntityPage[floriculture.Planting, floriculture.PlantingForm](service, floriculture.Plantings()))
	service.mount(router, newEntityPage[landscaping.Client, landscaping.ClientForm](service, landscaping.Clients()))
	service.mount(router, newEntityPage[landscaping.Service, landscaping.ServiceForm](service, landscaping.Services()))

	quotes := newEntityPage[landscaping.Quote, landscaping.QuoteForm](service, landscaping.Quotes())
	quotes.lineItems = true
	quotes.recordValues = func(quote landscaping.Quote) map[string]string {
		values := form.Values(quote)
		for key, value := range landscaping.ItemValues(quote.Items) {
			values[key] = value
		}
		return values
	}
	quotes.extend = func(router chi.Router) {
		router.Post("/preview", service.EndpointQuotePreview)
	}
	service.mount(router, quotes)

	service.mount(router, newEntityPage[landscaping.Project, landscaping.ProjectForm](service, landscaping.Projects()))
	service.mount(router, newEntityPage[landscaping.Maintenance, landscaping.MaintenanceForm](service, landscaping.MaintenanceSchedule()))

	productions := newEntityPage[dairy.Production, dairy.ProductionForm](service, dairy.Productions())
	service.mount(router, productions)
	(&analytics{service: service, page: productions}).routes(router)
}

type mountable interface {
	routes(router chi.Router)
	entry() navEntry
}

func (service *Service) mount(router chi.Router, page mountable) {
	page.routes(router)
	service.nav = append(service.nav, page.entry())
}

// MiddlewareToken hands the access token of the user over to the backend client.
// The Authorization header takes precedence over the token cookie.
func (service *Service) MiddlewareToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token := ""
		if cookie, err := request.Cookie(service.Config.TokenCookie); err == nil {
			token = strings.TrimSpace(cookie.Value)
		}
		header := request.Header.Get("Authorization")
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			token = strings.TrimSpace(header[7:])
		}
		if token != "" {
			request = request.WithContext(backend.WithToken(request.Context(), token))
		}
		next.ServeHTTP(writer, request)
	})
}

// EndpointHome handles the 'GET /' endpoint
func (service *Service) EndpointHome(writer http.ResponseWriter, request *http.Request) {
	service.renderPage(writer, request, http.StatusOK, "home", map[string]any{
		"Title": "Painel",
	})
}

type healthResponse struct {
	Status          string `json:"status"`
	Environment     string `json:"environment"`
	Backend         string `json:"backend"`
	FallbackEnabled bool   `json:"fallback_enabled"`
	Locale          string `json:"locale"`
}

// EndpointHealth handles the 'GET /healthz' endpoint
func (service *Service) EndpointHealth(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteJSON(writer, &healthResponse{
		Status:          "ok",
		Environment:     service.Config.Environment,
		Backend:         service.Config.BackendBaseURL,
		FallbackEnabled: service.Config.FallbackEnabled,
		Locale:          service.Formatter.Locale(),
	})
}

func (service *Service) renderPage(writer http.ResponseWriter, request *http.Request, status int, name string, data map[string]any) {
	data["Nav"] = service.nav
	if _, ok := data["Path"]; !ok {
		data["Path"] = ""
	}
	data["Flash"] = template.HTML("")
	if flash, ok := service.notices.Pop(writer, request); ok {
		data["Flash"] = flash.HTML()
	}

	buf := new(bytes.Buffer)
	if err := pages[name].Execute(buf, data); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buf.WriteTo(writer)
}

func (service *Service) renderError(writer http.ResponseWriter, request *http.Request, status int, messages ...string) {
	title := "Algo deu errado"
	switch status {
	case http.StatusBadRequest:
		title = "Requisição inválida"
	case http.StatusNotFound:
		title = "Página não encontrada"
	case http.StatusMethodNotAllowed:
		title = "Método não permitido"
	}
	service.renderPage(writer, request, status, "error", map[string]any{
		"Title":    title,
		"Messages": messages,
	})
}

func (service *Service) renderInternalError(writer http.ResponseWriter, request *http.Request, err error) {
	hlog.FromRequest(request).Error().Err(err).Msg("the dashboard experienced an unexpected error")
	service.renderError(writer, request, http.StatusInternalServerError, schema.ErrInternal.Message)
}
