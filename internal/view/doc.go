// Package view assembles the dashboard presentation layer. It turns an
// immutable dataset snapshot plus a filter selection into renderable
// view payloads: KPI metrics, chart specifications, and data tables.
//
// # Architecture
//
// A Registry holds the catalog of view definitions in navigation order.
// Each definition names the tables it needs and carries a build function
// that derives the view from a Context (snapshot plus active filters).
// Builders are pure: they never mutate the snapshot and recompute from
// scratch on every call, so a request with different filters is just
// another build.
//
// # Degradation
//
// Builders never fail. When an input table or a required column is
// missing, the builder skips the affected metrics and charts and appends
// a note to View.Unavailable instead, leaving the rest of the view
// intact. Callers decide how prominently to surface those notes.
package view
