// Package report builds the static portfolio report: a self-contained HTML
// document with a KPI strip and a fixed chart set, computed once from the
// loaded snapshot at whole-portfolio scope.
//
// # Data Flow
//
// Generator.Generate derives the document model from the snapshot, reusing
// the analytics primitives the dashboard views use. WriteHTML renders the
// model through the embedded template; chart specs travel as JSON and are
// drawn client-side by Plotly, so the output file needs no server.
// PDFRenderer optionally prints the HTML through headless Chrome.
package report
