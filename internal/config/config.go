package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the defaults of the original proof of concept so that two
// runs against an unchanged site produce identical reports.
const (
	// DefaultTimeout is the per-request timeout for page fetches.
	// The crawl has no global deadline; total runtime is bounded by
	// MaxPages x Timeout in the worst case.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxPages is the maximum number of pages analyzed per site,
	// home page included. This keeps a scan cheap and bounded even on
	// very large sites.
	DefaultMaxPages = 20

	// DefaultMaxCandidateLinks caps the ranked candidate list produced
	// from the home page. Only the highest-scored candidates are kept.
	DefaultMaxCandidateLinks = 50

	// DefaultBatchSize is the number of concurrent site scans when
	// multiple seed URLs are given. Within one site the crawl is always
	// sequential so candidate ranking stays deterministic.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies greenscan in HTTP requests.
	// A descriptive User-Agent lets site operators identify scanner
	// traffic in their logs.
	DefaultUserAgent = "greenscan/0.1 (+https://github.com/ecodena/greenscan)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is ample for HTML pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMonthlyPageViews is the traffic assumption used when the
	// caller does not supply one.
	DefaultMonthlyPageViews = 10_000

	// MinMonthlyPageViews and MaxMonthlyPageViews bound the accepted
	// traffic figure. The estimator is a linear model; values outside
	// this range produce numbers too small or too large to be useful.
	MinMonthlyPageViews = 100
	MaxMonthlyPageViews = 1_000_000

	// DefaultWeightMultiplier models the CSS/JS/image weight carried on
	// top of the bare HTML. A page is assumed to weigh three times its
	// HTML size once all sub-resources are counted.
	DefaultWeightMultiplier = 3.0

	// DefaultEnergyPerGBKWh is the assumed energy cost of transferring
	// one gigabyte, in kilowatt hours.
	DefaultEnergyPerGBKWh = 0.5

	// DefaultCarbonIntensityGPerKWh is the assumed grid carbon intensity
	// in grams of CO2 per kilowatt hour.
	DefaultCarbonIntensityGPerKWh = 300.0

	// AppName is the application name used for XDG directory paths.
	AppName = "greenscan"
)

// Config holds all configuration options for greenscan.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, CarbonConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Targets is the list of seed URLs to scan.
	// Each target is normalized to scheme://host before crawling.
	Targets []string

	// MonthlyPageViews is the traffic assumption fed to the carbon
	// estimator. Must lie in [MinMonthlyPageViews, MaxMonthlyPageViews].
	MonthlyPageViews int

	// Timeout is the HTTP timeout for each page fetch.
	Timeout time.Duration

	// MaxPages is the maximum number of pages analyzed per site,
	// including the home page.
	MaxPages int

	// MaxCandidateLinks caps the ranked candidate list discovered on
	// the home page.
	MaxCandidateLinks int

	// BatchSize is the number of concurrent site scans when processing
	// multiple targets.
	BatchSize int

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .greenscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file. Populated by LoadConfigFile and used during scanning.
	SiteConfigs *File

	// WeightMultiplier, EnergyPerGBKWh and CarbonIntensityGPerKWh are
	// the three carbon model constants. They default to the values
	// above and can be overridden per run or via the config file.
	WeightMultiplier       float64
	EnergyPerGBKWh         float64
	CarbonIntensityGPerKWh float64

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport and CSVReport.
	MarkdownReport bool

	// CSVReport enables CSV output of the per-page records.
	// Mutually exclusive with JSONReport and MarkdownReport.
	CSVReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite database.
	// When set, scan results are saved for historical comparison.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save scan results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (timeouts, caps, model
// constants). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MonthlyPageViews:       DefaultMonthlyPageViews,
		Timeout:                DefaultTimeout,
		MaxPages:               DefaultMaxPages,
		MaxCandidateLinks:      DefaultMaxCandidateLinks,
		BatchSize:              DefaultBatchSize,
		UserAgent:              DefaultUserAgent,
		MaxBodySize:            DefaultMaxBodySize,
		WeightMultiplier:       DefaultWeightMultiplier,
		EnergyPerGBKWh:         DefaultEnergyPerGBKWh,
		CarbonIntensityGPerKWh: DefaultCarbonIntensityGPerKWh,
	}
}

// XDGDataDir returns the XDG data directory for greenscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/greenscan
// On macOS: ~/Library/Application Support/greenscan
// On Windows: %LOCALAPPDATA%\greenscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for greenscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for greenscan.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.MaxCandidateLinks <= 0 {
		return ErrInvalidMaxLinks
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MonthlyPageViews < MinMonthlyPageViews || c.MonthlyPageViews > MaxMonthlyPageViews {
		return ErrInvalidPageViews
	}

	// The linear model breaks down with non-positive constants.
	if c.WeightMultiplier <= 0 || c.EnergyPerGBKWh <= 0 || c.CarbonIntensityGPerKWh <= 0 {
		return ErrInvalidCarbonModel
	}

	// Only one report format can be selected at a time.
	formats := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if enabled {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
