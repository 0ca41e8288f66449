// Package http contains the HTTP handlers for the PMO Pulse API. Handlers
// are thin adapters: they parse and validate the request, delegate to the
// services layer, and render the result with go-chi/render.
//
// # Endpoints
//
//	GET  /api/views            view catalog with availability
//	GET  /api/views/{slug}     one computed view, filterable via ?type=&status=&priority=
//	GET  /api/filters          selectable filter values
//	GET  /api/snapshot         snapshot load report
//	POST /api/report           run the static report generator
//	GET  /api/export/xlsx      stream the portfolio workbook
//	GET  /api/healthz          health status
//	GET  /api/version          version info
//	GET  /                     embedded dashboard page
//
// # Error Responses
//
// Failures render as RFC 7807 problem documents via the shared error
// handler; service sentinel errors map onto stable problem type URIs.
package http
