// Package menu holds the immutable restaurant menu dataset.
//
// A Dataset is built once at startup from an external tabular source
// (CSV or the SQLite store) and shared read-only by every recompute.
// Bounds and the distinct restaurant list are precomputed at load time so
// lookups never scan the records again.
//
// Loading is fail-fast: a missing column, a non-numeric cell, a negative
// nutrient or an empty name aborts the load with an IngestError. There is
// no partially loaded Dataset.
package menu
