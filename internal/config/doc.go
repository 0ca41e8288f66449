// Package config provides centralized configuration management for PMO
// Pulse. It handles loading configuration from multiple sources, validation,
// and a type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration resolves from three layers, later layers winning:
//
//	1. Built-in defaults (lowest priority)
//	2. Optional config.yaml / configs/config.yaml
//	3. Environment variables (highest priority)
//
// # Environment Variables
//
// All environment variables carry the PMO_ prefix:
//
//	PMO_SERVER_PORT=8080
//	PMO_PATHS_DATA_DIR=/srv/pmo/extracts
//	PMO_LOGGING_LEVEL=debug
//	PMO_OBSERVABILITY_METRICS_ENABLED=true
//
// # Path Management
//
// The Paths type resolves the three directory roots the tools touch: the
// CSV extracts (read-only), the generated report artifacts, and the logs:
//
//	paths := cfg.NewPaths()
//	reportPath := paths.GetReportPath("portfolio_report_2025-01-01_120000.html")
//
// # Validation
//
// The assembled configuration is validated at load time with struct tags;
// an invalid value fails Load rather than surfacing later at runtime.
package config
