package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nineto6/backoffice/internal/auth"
	"github.com/nineto6/backoffice/internal/catalog"
	"github.com/nineto6/backoffice/internal/clients"
	"github.com/nineto6/backoffice/internal/dashboard"
	"github.com/nineto6/backoffice/internal/invoices"
	"github.com/nineto6/backoffice/internal/observability"
	"github.com/nineto6/backoffice/internal/projects"
	"github.com/nineto6/backoffice/internal/quotes"
	"github.com/nineto6/backoffice/internal/shared"
	"github.com/nineto6/backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	ClientsHandler   *clients.Handler
	ProjectsHandler  *projects.Handler
	QuotesHandler    *quotes.Handler
	InvoicesHandler  *invoices.Handler
	CatalogHandler   *catalog.Handler
	DashboardHandler *dashboard.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router. Auth endpoints are public; every
// business route sits behind a valid session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		params.ClientsHandler.MountRoutes(r)
		params.ProjectsHandler.MountRoutes(r)
		params.QuotesHandler.MountRoutes(r)
		params.InvoicesHandler.MountRoutes(r)
		params.CatalogHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
