// Package exporter renders snapshot-derived data into exchange formats.
//
// This package contains two main components:
//
// Workbook: builds the five-sheet portfolio XLSX workbook (Portfolio,
// Financials, Resources, Risks, Vendors) via excelize, either streamed to a
// writer for HTTP download or saved to the reports directory.
//
// CSVWriter: core CSV writing with headers, append mode, and a UTF-8 BOM for
// Excel compatibility, plus frame export for any derived table.
package exporter
