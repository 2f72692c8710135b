// Package server provides the HTTP server of the dashboard.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Components are created in dependency order: table cache, enrichment
// pipeline, operator authentication, services, handlers and finally routes.
// Only a missing source file is reported at runtime; configuration problems
// fail NewServer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/enrich"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/handlers"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/service"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/table"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils/ratelimit"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// DashboardHandler serves the table, demo and enrichment endpoints
	DashboardHandler *handlers.DashboardHandler

	// AuthHandler issues operator tokens
	AuthHandler *handlers.AuthHandler
}

// AuthProviders contains all authentication providers for the application.
type AuthProviders struct {
	// JWTService handles operator token generation and validation
	JWTService *auth.JWTService

	// Verifier checks the operator passphrase
	Verifier *auth.PassphraseVerifier

	// Attempts throttles passphrase attempts per client
	Attempts *ratelimit.Store
}

// Server represents the dashboard HTTP server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Tables memoizes loaded sources
	Tables *table.Cache

	// Enricher is the enrichment pipeline shared by all views
	Enricher *enrich.Enricher

	// Dashboard projects tables into views
	Dashboard *service.DashboardService

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	operator      *service.OperatorService
	router        chi.Router
	authProviders *AuthProviders
	health        HealthChecker
	httpServer    *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if a component cannot be created from the configuration
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
		health: sourceHealth{path: cfg.Source.Path},
	}

	if err := s.setupTables(); err != nil {
		return nil, fmt.Errorf("failed to set up table cache: %w", err)
	}

	if err := s.setupAuthProviders(); err != nil {
		return nil, fmt.Errorf("failed to set up auth providers: %w", err)
	}

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupTables creates the memoized loader and the enrichment pipeline.
func (s *Server) setupTables() error {
	loader := table.NewLoader(s.Config.Source.SegmentSize)
	s.Tables = table.NewCache(loader, s.Config.Source.CacheSize, s.Config.Source.CacheTTL)

	enricher, err := enrich.New(enrich.OptionsFromConfig(&s.Config.Detection))
	if err != nil {
		return fmt.Errorf("invalid detection settings: %w", err)
	}
	s.Enricher = enricher

	return nil
}

// setupAuthProviders initializes operator authentication.
func (s *Server) setupAuthProviders() error {
	operator := &s.Config.Operator

	s.authProviders = &AuthProviders{
		JWTService: auth.NewJWTService(operator),
		Verifier:   auth.NewPassphraseVerifier(operator, auth.ConfigFromAppConfig(s.Config)),
		Attempts: ratelimit.NewStore(
			ratelimit.PerMinute(operator.AttemptsPerMinute, operator.AttemptBurst),
			constants.AuthLimiterClients,
			constants.AuthLimiterTTL,
		),
	}

	if !s.authProviders.Verifier.Enabled() {
		log.Info().Msg("No operator passphrase configured, raw message display is disabled")
	}

	return nil
}

// setupServices initializes all business services.
func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}
	if s.Tables == nil || s.Enricher == nil {
		return fmt.Errorf("table cache not initialized")
	}

	s.Dashboard = service.NewDashboardService(s.Config.Source.Path, s.Tables, s.Enricher, &s.Config.Operator)
	s.operator = service.NewOperatorService(s.authProviders.Verifier, s.authProviders.JWTService)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() error {
	s.Handlers = &Handlers{
		DashboardHandler: handlers.NewDashboardHandler(s.Dashboard, s.Config.Export),
		AuthHandler:      handlers.NewAuthHandler(s.operator),
	}

	return nil
}

// WarmCache loads the source once so the first request does not pay for it.
// A missing source is logged, not fatal: the endpoints report it until the
// file appears.
func (s *Server) WarmCache() {
	t, err := s.Tables.Get(s.Config.Source.Path)
	if err != nil {
		log.Warn().Err(err).Str("source", s.Config.Source.Path).Msg("Initial table load failed")
		return
	}
	log.Info().Int("rows", t.Len()).Str("source", t.Source).Msg("Table ready")
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It blocks until an error occurs or a shutdown signal is received.
func (s *Server) Start() error {
	s.WarmCache()

	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			// Shutdown the server immediately if graceful shutdown fails
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
