// Package log provides the application's structured logging, built on
// top of the standard slog package.
//
// This package extends slog to provide:
//   - Truncation of oversized string attributes (page text, raw HTML,
//     link lists) so a verbose crawl log stays readable
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Crawl code logs whole page artifacts while debugging. A single page
// text attribute can run to hundreds of kilobytes, which drowns every
// other line in the log. The TruncateHandler caps each string
// attribute at a fixed length and marks the cut, keeping the log
// scannable without losing which page produced it.
//
// # Usage
//
//	// Create a logger that truncates oversized attributes
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("page analyzed",
//	    "url", "https://example.com/rse",
//	    "text", pageText, // Capped at MaxAttrLen
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
