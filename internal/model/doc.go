// Package model defines the data structures produced by a greenscan run:
// per-page records, the aggregated site report, and the carbon estimate.
//
// All structures are plain data with JSON tags so reports can be
// serialized without a separate DTO layer. A PageRecord is immutable
// once created; a SiteReport is built once by its constructor and is
// read-only afterwards.
package model
