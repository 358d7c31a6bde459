// Package store provides SQLite-backed persistence for overlap-analysis
// runs, so corpus statistics can be compared across recipe iterations
// without re-sweeping the tables.
//
// One run row holds the corpus-level summary (source path, threshold,
// totals); run_recordings holds the per-recording union/overlap breakdown,
// keyed by run id. Run ids are UUIDv7, so lexical order follows creation
// order.
//
// Database configuration:
//   - WAL mode for concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
