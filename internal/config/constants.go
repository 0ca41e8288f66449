package config

import "time"

// Application constants for the PMO Pulse system.
const (
	// Application Info
	AppName   = "PMO Pulse"
	AppVendor = "PMO Pulse Analytics"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout      = 30 * time.Second
	ReportGenerationTimeout = 5 * time.Minute

	// File Paths (relative to the working directory)
	DefaultDataDir    = "data"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath      = "/api"
	ViewsEndpoint    = "/api/views"
	FiltersEndpoint  = "/api/filters"
	SnapshotEndpoint = "/api/snapshot"
	ReportEndpoint   = "/api/report"
	HealthEndpoint   = "/api/healthz"
	MetricsEndpoint  = "/metrics"
)
