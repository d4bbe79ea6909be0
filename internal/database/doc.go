// Package database provides SQLite-based storage for scan history.
//
// This package implements the ScanDB, which stores one row per
// completed scan: the domain, a handful of headline figures for list
// views, and the full scan result as JSON for later inspection. Keeping
// a local history makes a site's footprint comparable across reruns
// without re-crawling.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
