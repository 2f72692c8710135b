package server

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/middleware"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/table"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version and metrics endpoints
// - Operator token issuance (rate limited per client)
// - Table endpoints (summary, options, rows, export, reload)
// - Demo dataset endpoints (list, detail, full export)
// - Ad-hoc enrichment
//
// Every table and demo route accepts an optional operator token. Handlers
// decide whether raw text may be shown.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := getAllowedOrigins()
	r.Use(corsMiddleware(allowedOrigins))

	// Base middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgResourceNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	// Health check, version and metrics routes
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, s.handleHealth)

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"name":        s.Config.App.Name,
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})

		r.Method(http.MethodGet, constants.MetricsPath, promhttp.Handler())
		r.Get("/api/routes", s.GetAPIRoutes)
	})

	// API routes
	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Token issuance ignores the Authorization header
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.Use(middleware.RateLimit(s.authProviders.Attempts, retryAfterSeconds(s.Config.Operator.AttemptsPerMinute)))
			r.Post("/token", s.Handlers.AuthHandler.IssueToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalOperator(s.authProviders.JWTService))

			r.Route("/table", func(r chi.Router) {
				r.Get("/summary", s.Handlers.DashboardHandler.GetSummary)
				r.Get("/options", s.Handlers.DashboardHandler.GetOptions)
				r.Get("/rows", s.Handlers.DashboardHandler.GetRows)
				r.Get("/export", s.Handlers.DashboardHandler.ExportRows)
				r.Post("/reload", s.Handlers.DashboardHandler.Reload)
			})

			r.Route("/demo", func(r chi.Router) {
				r.Get("/messages", s.Handlers.DashboardHandler.ListDemoMessages)
				r.Get("/messages/{"+constants.ParamIndex+"}", s.Handlers.DashboardHandler.GetDemoMessage)
				r.Get("/export", s.Handlers.DashboardHandler.ExportDemo)
			})

			r.Post("/enrich", s.Handlers.DashboardHandler.Enrich)
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// handleHealth reports 200 while the source file is readable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")

		if errors.Is(err, table.ErrSourceNotFound) {
			utils.Error(w, constants.StatusServiceUnavailable, constants.CodeSourceNotFound, constants.MsgSourceNotFound, nil)
			return
		}
		utils.Error(w, constants.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}

// retryAfterSeconds is the time one attempt takes to refill, rounded up.
func retryAfterSeconds(perMinute int) int {
	if perMinute <= 0 {
		return 60
	}
	return (60 + perMinute - 1) / perMinute
}

// corsMiddleware creates a CORS middleware for the specified allowed origins.
// Preflight requests from an allowed origin are answered with 204 directly.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" || !originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, Retry-After")

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "300")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// getAllowedOrigins reads allowed CORS origins from the ALLOWED_ORIGINS
// environment variable or falls back to the local development origins.
func getAllowedOrigins() []string {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")

	if allowedOriginsEnv != "" {
		origins := strings.Split(allowedOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		log.Info().Strs("allowed_origins", origins).Msg("Using CORS allowed origins from environment")
		return origins
	}

	defaultOrigins := []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:8501"}
	log.Debug().Strs("allowed_origins", defaultOrigins).Msg("Using default CORS allowed origins")
	return defaultOrigins
}
