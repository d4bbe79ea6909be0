package model

import "time"

// ScanResult bundles everything produced for a single seed URL: the
// site report and, when the crawl succeeded, the carbon estimate keyed
// to the caller-supplied traffic figure.
//
// Pipeline steps accumulate into this structure; once the pipeline has
// finished it is handed to the report writers as-is.
type ScanResult struct {
	// SeedURL is the raw input URL the scan was requested for.
	SeedURL string `json:"seed_url"`

	// ScannedAt is the wall-clock start time of the scan.
	ScannedAt time.Time `json:"scanned_at"`

	// Report is the aggregated site report, or its FAILED variant.
	Report *SiteReport `json:"report,omitempty"`

	// Estimate is the carbon estimate. Nil when the crawl failed.
	Estimate *CarbonEstimate `json:"estimate,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// ErrorMessage holds the message of a step error, if any.
	// The crawl's FAILED variant is not a step error; it lives in
	// Report.Error instead.
	ErrorMessage string `json:"error_message,omitempty"`

	// TimedOut is true when the scan was cancelled before completion.
	TimedOut bool `json:"timed_out,omitempty"`
}

// NewScanResult creates a ScanResult for the given seed URL with the
// scan start time set to now.
func NewScanResult(seedURL string) *ScanResult {
	return &ScanResult{
		SeedURL:   seedURL,
		ScannedAt: time.Now(),
	}
}
