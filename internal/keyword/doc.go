// Package keyword scores page text against the fixed keyword taxonomies.
//
// Matching is deliberately crude: each taxonomy phrase is counted with
// case-insensitive, non-overlapping substring counting, and counts from
// different phrases are summed even when one phrase contains another
// (e.g. "durable" inside "développement durable" counts for both).
// This mirrors the behavior the rest of the pipeline was calibrated
// against; deduplicating matches would silently shift every score.
package keyword
