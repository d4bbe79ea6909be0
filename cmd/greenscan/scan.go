package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecodena/greenscan/internal/analyzer"
	"github.com/ecodena/greenscan/internal/carbon"
	"github.com/ecodena/greenscan/internal/config"
	"github.com/ecodena/greenscan/internal/crawler"
	"github.com/ecodena/greenscan/internal/database"
	"github.com/ecodena/greenscan/internal/keyword"
	"github.com/ecodena/greenscan/internal/log"
	"github.com/ecodena/greenscan/internal/model"
	"github.com/ecodena/greenscan/internal/pipeline"
	"github.com/ecodena/greenscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url]",
		Short: "Scan a website for sustainability content and carbon footprint",
		Long: `Scan crawls a website and audits its sustainability posture.

It fetches the home page, ranks the internal links most likely to carry
CSR content, and analyzes up to the page cap. The report covers:
- CSR / RSE content and scoring
- Carbon accounting mentions (including an explicit "bilan carbone")
- Green IT / responsible web design mentions
- A carbon footprint estimate based on page weight and traffic

Examples:
  # Scan a single website
  greenscan scan example.com

  # Scan multiple websites concurrently
  greenscan scan example.com other.org third.fr

  # Tailor the traffic assumption
  greenscan scan --views 50000 example.com

  # Output JSON report to a file
  greenscan scan --json -o report.json example.com

  # Use a custom configuration file
  greenscan scan -c myconfig.yaml example.com

Configuration file (.greenscan) example:
  defaults:
    maxPages: 10
  sites:
    example.com:
      monthlyPageViews: 250000
  model:
    carbonIntensityGPerKwh: 50`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to analyze per site")
	cmd.Flags().IntP("max-links", "l", config.DefaultMaxCandidateLinks,
		"Maximum number of ranked candidate links to keep")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with requests")

	// Carbon model flags
	cmd.Flags().IntP("views", "n", config.DefaultMonthlyPageViews,
		"Monthly page view assumption for the carbon estimate")
	cmd.Flags().Float64("weight-multiplier", config.DefaultWeightMultiplier,
		"Multiplier from HTML size to estimated full page weight")
	cmd.Flags().Float64("energy-per-gb", config.DefaultEnergyPerGBKWh,
		"Assumed energy cost per transferred GB in kWh")
	cmd.Flags().Float64("carbon-intensity", config.DefaultCarbonIntensityGPerKWh,
		"Assumed grid carbon intensity in gCO2 per kWh")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent site scans")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .greenscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output per-page CSV rows (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not record this scan in the local history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
// Explicit flags take precedence over config file values, which take
// precedence over the built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.MaxCandidateLinks, err = cmd.Flags().GetInt("max-links")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MonthlyPageViews, err = cmd.Flags().GetInt("views")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If the user explicitly specified a config file path, error if not
	// found. Otherwise silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.SiteConfigs.ApplyModel(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	// Model flags override config file values only when set explicitly.
	if cmd.Flags().Changed("weight-multiplier") {
		cfg.WeightMultiplier, err = cmd.Flags().GetFloat64("weight-multiplier")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("energy-per-gb") {
		cfg.EnergyPerGBKWh, err = cmd.Flags().GetFloat64("energy-per-gb")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("carbon-intensity") {
		cfg.CarbonIntensityGPerKWh, err = cmd.Flags().GetFloat64("carbon-intensity")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the seed URLs
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ScanDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use the batch processor for concurrent scanning of multiple sites
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan scans targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		siteConfig := getSiteConfig(cfg, target)

		p := createPipelineForTarget(cfg, siteConfig, db, logger)

		result := model.NewScanResult(target)

		fmt.Printf("Scanning %s...\n", target)
		startTime := time.Now()

		if err := p.Execute(ctx, result); err != nil {
			logger.Error("scan failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, result); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Batch mode applies the config file defaults to every site.
	if cfg.SiteConfigs != nil && len(cfg.SiteConfigs.Sites) > 0 {
		logger.Warn("batch processing uses default site config only; site-specific configs are ignored",
			"siteCount", len(cfg.SiteConfigs.Sites))
		fmt.Fprintf(os.Stderr, "Warning: Site-specific configurations are ignored in batch mode. Use sequential mode (--batch 1) to apply per-site settings.\n\n")
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			var siteConfig config.SiteConfig
			if cfg.SiteConfigs != nil {
				siteConfig = cfg.SiteConfigs.Defaults
			}
			return createPipelineForTarget(cfg, siteConfig, db, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(result *model.ScanResult, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Scan completed: %s\n", index+1, len(cfg.Targets), result.SeedURL)

		if err := outputReport(cfg, result); err != nil {
			logger.Error("report failed", "target", result.SeedURL, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// getSiteConfig returns the site-specific configuration for a target,
// keyed by its registrable domain. Falls back to defaults when no
// site-specific config exists.
func getSiteConfig(cfg *config.Config, target string) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	baseURL := crawler.NormalizeBaseURL(target)
	u, err := url.Parse(baseURL)
	if err != nil {
		return cfg.SiteConfigs.Defaults
	}

	return cfg.SiteConfigs.GetSiteConfig(crawler.RegistrableDomain(u.Host))
}

// createPipelineForTarget creates a pipeline with the given configuration.
func createPipelineForTarget(cfg *config.Config, siteConfig config.SiteConfig, db *database.ScanDB, logger *slog.Logger) *pipeline.Pipeline {
	userAgent := cfg.UserAgent
	if siteConfig.UserAgent != "" {
		userAgent = siteConfig.UserAgent
	}
	maxPages := cfg.MaxPages
	if siteConfig.MaxPages > 0 {
		maxPages = siteConfig.MaxPages
	}
	maxLinks := cfg.MaxCandidateLinks
	if siteConfig.MaxCandidateLinks > 0 {
		maxLinks = siteConfig.MaxCandidateLinks
	}
	views := cfg.MonthlyPageViews
	if siteConfig.MonthlyPageViews > 0 {
		views = siteConfig.MonthlyPageViews
	}

	fetcher := crawler.NewFetcher(
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	c := crawler.New(
		fetcher,
		analyzer.New(keyword.NewDefaultScorer()),
		crawler.NewDiscoverer(),
		crawler.WithMaxPages(maxPages),
		crawler.WithMaxCandidateLinks(maxLinks),
		crawler.WithLogger(logger),
	)
	estimator := carbon.NewEstimator(
		carbon.WithWeightMultiplier(cfg.WeightMultiplier),
		carbon.WithEnergyPerGB(cfg.EnergyPerGBKWh),
		carbon.WithCarbonIntensity(cfg.CarbonIntensityGPerKWh),
	)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewCrawlStep(c, pipeline.WithCrawlLogger(logger)),
		pipeline.NewEstimateStep(estimator,
			pipeline.WithMonthlyViews(views),
			pipeline.WithEstimateLogger(logger),
		),
		pipeline.NewSaveStep(db, pipeline.WithSaveLogger(logger)),
	)

	return p
}

// outputReport outputs the scan result in the requested format.
func outputReport(cfg *config.Config, result *model.ScanResult) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	case cfg.CSVReport:
		w = report.NewCSVWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(result)
	return err
}
