// Package server provides the HTTP server of the dashboard.
// This file defines interfaces that abstract the server's functionality for testing.
package server

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// ServerTestInterface defines methods required for server testing.
type ServerTestInterface interface {
	// SetupRoutes configures the HTTP routes for the server
	SetupRoutes()

	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests
	Start() error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
}

// HealthChecker reports whether the dashboard can serve its table.
type HealthChecker interface {
	// HealthCheck verifies the data source is reachable
	//
	// Parameters:
	//   - ctx: Context for the health check operation
	//
	// Returns:
	//   - An error if the source is missing or unreadable
	HealthCheck(ctx context.Context) error
}
