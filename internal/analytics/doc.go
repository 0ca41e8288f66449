// Package analytics implements the aggregation layer: column-addressed
// descriptive operations over normalized frames.
//
// Everything here is a pure function from frames to derived frames or
// scalars. Group-bys keep first-appearance order, rankings sort stably so
// ties are deterministic, and ratios degrade zero denominators to zero
// instead of erroring. The canonical composite, FinancialHealth, runs
// aggregate → left-join → fill-zero → derive in that fixed order.
//
// The package holds no state; the snapshot it reads from is immutable, so
// every operation is safe for concurrent use.
package analytics
