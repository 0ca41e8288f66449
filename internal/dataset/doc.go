// Package dataset implements the ingestion half of the analytics pipeline:
// loading the registered CSV extracts and normalizing them into typed frames.
//
// # Architecture
//
// The package is organized around three pieces:
//
// 1. Loader: reads the registered files into raw string frames
// 2. Normalize: applies per-column semantic typing (dates, money, quantities)
// 3. Store/Snapshot: the load-once, immutable per-process cache
//
// # Data Flow
//
//	CSV extracts → Loader → raw frames → Normalize → Snapshot → analytics
//
// # Failure Model
//
// Nothing in the data plane is fatal. A missing file, a missing required
// column, or an unparseable cell records a condition on the snapshot and
// degrades the affected outputs:
//
//   - missing file: table absent, dependent views marked unavailable
//   - missing required money column: table loads, money KPIs unavailable
//   - unparseable date: cell stays absent
//   - unparseable measure: cell reads as zero
//
// Load errors are reserved for unusable configuration, such as a data
// directory that does not exist.
package dataset
