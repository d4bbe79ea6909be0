package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecodena/greenscan/internal/carbon"
	"github.com/ecodena/greenscan/internal/config"
	"github.com/ecodena/greenscan/internal/crawler"
	"github.com/ecodena/greenscan/internal/database"
	"github.com/ecodena/greenscan/internal/model"
)

// CrawlStep runs the bounded crawl for the scan's seed URL and attaches
// the resulting site report.
//
// Design decision: Crawling never fails the pipeline. An unreachable
// home page yields the FAILED report variant, which later steps and the
// report writers treat as a complete, presentable outcome.
type CrawlStep struct {
	// crawler performs the bounded crawl.
	crawler *crawler.Crawler

	// logger for structured logging.
	logger *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithCrawlLogger sets a custom logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		s.logger = logger
	}
}

// NewCrawlStep creates a new crawl step around the given crawler.
func NewCrawlStep(c *crawler.Crawler, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		crawler: c,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl and stores the report on the result.
func (s *CrawlStep) Do(ctx context.Context, result *model.ScanResult) error {
	report := s.crawler.Crawl(ctx, result.SeedURL)
	result.Report = report

	if report.Failed() {
		s.logger.Warn("crawl failed",
			"seed_url", result.SeedURL,
			"reason", report.Error,
		)
		return nil
	}

	s.logger.Info("crawl complete",
		"domain", report.Domain,
		"pages", report.PagesScanned,
		"total_kb", report.TotalHTMLKB,
	)

	return nil
}

// EstimateStep derives the carbon estimate from the crawl report and a
// monthly traffic assumption.
type EstimateStep struct {
	// estimator computes the emissions figures.
	estimator *carbon.Estimator

	// monthlyViews is the traffic assumption applied to every site.
	monthlyViews int

	// logger for structured logging.
	logger *slog.Logger
}

// EstimateStepOption configures an EstimateStep.
type EstimateStepOption func(*EstimateStep)

// WithEstimateLogger sets a custom logger for the estimate step.
func WithEstimateLogger(logger *slog.Logger) EstimateStepOption {
	return func(s *EstimateStep) {
		s.logger = logger
	}
}

// WithMonthlyViews sets the monthly page view assumption.
func WithMonthlyViews(views int) EstimateStepOption {
	return func(s *EstimateStep) {
		if views > 0 {
			s.monthlyViews = views
		}
	}
}

// NewEstimateStep creates a new estimation step.
func NewEstimateStep(e *carbon.Estimator, opts ...EstimateStepOption) *EstimateStep {
	s := &EstimateStep{
		estimator:    e,
		monthlyViews: config.DefaultMonthlyPageViews,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *EstimateStep) Name() string {
	return "estimate"
}

// Do computes the estimate and stores it on the result. A report
// without an average page size (a failed crawl) leaves the estimate
// nil without failing the pipeline.
func (s *EstimateStep) Do(_ context.Context, result *model.ScanResult) error {
	est, err := s.estimator.Estimate(result.Report, s.monthlyViews)
	if err != nil {
		if errors.Is(err, carbon.ErrMissingAverageSize) {
			s.logger.Debug("no estimate for this scan",
				"seed_url", result.SeedURL,
				"reason", err,
			)
			return nil
		}
		return fmt.Errorf("estimate step: %w", err)
	}

	result.Estimate = &est

	s.logger.Info("estimate computed",
		"seed_url", result.SeedURL,
		"monthly_kgco2", est.MonthlyKgCO2,
	)

	return nil
}

// SaveStep persists the completed scan result to the history database.
type SaveStep struct {
	// db is the scan history database. A nil db turns the step into a
	// no-op, so callers can wire the pipeline once and opt out of
	// persistence per run.
	db *database.ScanDB

	// logger for structured logging.
	logger *slog.Logger
}

// SaveStepOption configures a SaveStep.
type SaveStepOption func(*SaveStep)

// WithSaveLogger sets a custom logger for the save step.
func WithSaveLogger(logger *slog.Logger) SaveStepOption {
	return func(s *SaveStep) {
		s.logger = logger
	}
}

// NewSaveStep creates a new persistence step.
func NewSaveStep(db *database.ScanDB, opts ...SaveStepOption) *SaveStep {
	s := &SaveStep{
		db:     db,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do saves the scan result. Nothing is saved when persistence is
// disabled or no report was produced.
func (s *SaveStep) Do(ctx context.Context, result *model.ScanResult) error {
	if s.db == nil {
		s.logger.Debug("persistence disabled, skipping save")
		return nil
	}
	if result.Report == nil {
		s.logger.Debug("no report to save", "seed_url", result.SeedURL)
		return nil
	}

	id, err := s.db.SaveScan(ctx, result)
	if err != nil {
		return fmt.Errorf("save step: %w", err)
	}

	s.logger.Info("scan saved",
		"id", id,
		"domain", result.Report.Domain,
	)

	return nil
}
