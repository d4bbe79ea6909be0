package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no seed URL is specified.
	ErrNoTarget = errors.New("no target specified: provide at least one website URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate fetch failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	// At least the home page must be analyzed for a report to exist.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxLinks is returned when the candidate link cap is not positive.
	ErrInvalidMaxLinks = errors.New("invalid max candidate links: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans, effectively
	// stopping the scanning process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidPageViews is returned when the monthly page view figure
	// falls outside [MinMonthlyPageViews, MaxMonthlyPageViews].
	ErrInvalidPageViews = errors.New("invalid monthly page views: must be between 100 and 1000000")

	// ErrInvalidCarbonModel is returned when one of the carbon model
	// constants is zero or negative.
	ErrInvalidCarbonModel = errors.New("invalid carbon model: multiplier, energy and intensity must be positive")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown and --csv is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown and --csv cannot be combined")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
