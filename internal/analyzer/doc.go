// Package analyzer turns a fetched HTML page into a PageRecord.
//
// The analyzer extracts structural metrics (element counts, sizes, font
// usage) in a single DOM walk, extracts the page's plain text, and
// delegates keyword scoring of that text to the keyword package.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//
// There is no error path: malformed-but-parseable HTML degrades to
// defaults (empty title, zero counts) instead of failing the crawl.
package analyzer
