// Package store provides SQLite-backed persistence for the menu dataset.
//
// The dashboard itself never writes during a session; the store exists so a
// CSV can be ingested once (fail-fast) and later sessions start from a
// validated database instead of re-parsing text.
//
// # Guarantees
//
//   - Import replaces the whole table in one transaction: a failed import
//     leaves the previous dataset intact.
//   - Rows are read back in their original load order (position ASC), so
//     stable tie-breaking in the filter engine is preserved across a round trip.
//   - Reading validates every row through menu.New; a corrupt row fails the
//     whole load with a menu.IngestError.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
