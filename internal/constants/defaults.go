// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallback configuration values for the server, the table
// loader and the enrichment pipeline. Changes to these values change how large
// sources are read and how risk flags are derived.
package constants

import "time"

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultServerHost is the default interface the dashboard binds to.
	DefaultServerHost = "127.0.0.1"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName is the name reported in logs and the version endpoint.
	DefaultAppName = "exec-risk-dashboard"

	// DefaultAppVersion is used when neither the build nor the config sets a version.
	DefaultAppVersion = "1.0.0"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Request Limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes

	// MaxEnrichTextLength bounds ad-hoc text submitted for enrichment.
	MaxEnrichTextLength = 65536
)

// Table Loader Defaults define how sources are read and memoized.
const (
	// DefaultSegmentSize is the number of data rows read per segment.
	DefaultSegmentSize = 200000

	// DefaultCacheTTL is how long a loaded table is reused before the source is re-read.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCacheSize is the number of distinct sources kept in memory.
	DefaultCacheSize = 4

	// DefaultSourcePath is the CSV file read when no source is configured.
	DefaultSourcePath = "data/executive_activity.csv"
)

// Enrichment Defaults.
const (
	// DefaultLargeSpendingThreshold is the amount at or above which spending is "large".
	DefaultLargeSpendingThreshold = "1000"

	// MaskCharacter replaces every byte of a masked span.
	MaskCharacter = '*'
)

// Export Defaults.
const (
	// DefaultExportFileName is the download name of the table export.
	DefaultExportFileName = "executive_risk_dashboard.csv"

	// DefaultDemoExportFileName is the download name of the full demo export.
	DefaultDemoExportFileName = "executive_risk_dashboard_full.csv"
)

// Default Password Hash Settings define the Argon2id parameters used to verify
// the operator passphrase.
const (
	// DefaultPasswordHashMemory is the memory cost parameter for Argon2id hashing.
	DefaultPasswordHashMemory = 64 * 1024

	// DefaultPasswordHashIterations is the number of iterations for Argon2id hashing.
	DefaultPasswordHashIterations = 3

	// DefaultPasswordHashParallelism is the parallelism parameter for Argon2id hashing.
	DefaultPasswordHashParallelism = 2

	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16

	// DefaultPasswordHashKeyLength is the length in bytes of the generated hash.
	DefaultPasswordHashKeyLength = 32
)

// Operator Token Constants.
const (
	// DefaultJWTIssuer is the issuer claim value for operator tokens.
	DefaultJWTIssuer = "exec-risk-dashboard"

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "

	// TokenTypeReveal marks tokens that allow raw message display.
	TokenTypeReveal = "reveal"

	// OperatorSubject is the subject claim of operator tokens.
	OperatorSubject = "operator"
)

const (
	// DefaultAuthAttemptsPerMinute is the passphrase attempt refill rate per client
	DefaultAuthAttemptsPerMinute = 10

	// DefaultAuthAttemptBurst is the number of back-to-back passphrase attempts allowed
	DefaultAuthAttemptBurst = 5

	// AuthLimiterClients bounds the number of tracked clients
	AuthLimiterClients = 10000

	// AuthLimiterTTL is how long a client keeps its attempt bucket
	AuthLimiterTTL = 15 * time.Minute
)
