// Package services implements the business logic layer of PMO Pulse. It
// provides a clean separation between HTTP handlers and the dataset layer,
// ensuring that business rules are centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
// The package provides these core services:
//
//	- DashboardService: serves the view catalog, computed views, filter
//	  options, and the snapshot load report
//	- ReportService: runs report generation and the XLSX export
//	- HealthService: provides system health checks and version info
//
// # Error Handling
//
// Services return domain-specific sentinel errors that handlers transform
// into RFC 7807 problem responses:
//
//	- ErrViewNotFound for an unknown view slug
//	- ErrSnapshotUnavailable when the data snapshot failed to load
//	- ErrReportWriteFailed when the mandatory HTML rendition cannot be written
//	- ErrInvalidInput for rejected request payloads
package services
