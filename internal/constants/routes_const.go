package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	MetricsPath = "/metrics"
)

// Authentication Routes
const (
	AuthTokenPath = "/api/auth/token"
)

// Table Routes
const (
	TableSummaryPath = "/api/table/summary"
	TableOptionsPath = "/api/table/options"
	TableRowsPath    = "/api/table/rows"
	TableExportPath  = "/api/table/export"
	TableReloadPath  = "/api/table/reload"
)

// Demo Routes
const (
	DemoMessagesPath      = "/api/demo/messages"
	DemoMessageDetailPath = "/api/demo/messages/{index}"
	DemoExportPath        = "/api/demo/export"
)

// Enrichment Routes
const (
	EnrichPath = "/api/enrich"
)
