// Package app wires PMO Pulse together: configuration, structured logging,
// OpenTelemetry providers, the load-once dataset store, the service layer,
// and the chi router with its middleware chain.
//
// The lifecycle is NewApplication → Run. Run loads the dataset snapshot,
// starts the HTTP server, and blocks until an interrupt triggers graceful
// shutdown. A failed snapshot load keeps the server up; data endpoints
// answer with snapshot-unavailable problems until the extract directory is
// repaired and the process restarted.
package app
