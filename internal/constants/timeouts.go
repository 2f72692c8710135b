// Package constants provides shared constant values used throughout the application.
//
// The timeouts.go file defines time durations for server operations and
// operator tokens.
package constants

import "time"

// Server Timeouts define the maximum duration for various HTTP server operations.
const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Exports of large tables stream for a while, so this is generous.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for server shutdown.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second
)

// Token Expiry.
const (
	// DefaultRevealTokenExpiry is how long an operator may view raw messages
	// after entering the passphrase.
	DefaultRevealTokenExpiry = 30 * time.Minute
)
