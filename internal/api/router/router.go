package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ipic-ai/sparky-dashboard/internal/dashboard"
	httpmiddleware "github.com/ipic-ai/sparky-dashboard/internal/http/middleware"
	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Dashboard          *dashboard.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Dashboard.HealthCheck)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", cfg.Dashboard.GetDashboard)
		r.Get("/leads", cfg.Dashboard.GetLeads)
		r.Get("/escalations", cfg.Dashboard.GetEscalations)
		r.Get("/recent", cfg.Dashboard.GetRecent)
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	return r
}
