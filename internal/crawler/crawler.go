package crawler

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/ecodena/greenscan/internal/analyzer"
	"github.com/ecodena/greenscan/internal/config"
	"github.com/ecodena/greenscan/internal/model"
)

// homeUnavailableReason is the user-visible reason carried by a FAILED
// report when the home page could not be fetched.
const homeUnavailableReason = "Impossible de récupérer la page d'accueil"

// PageFetcher fetches one page and returns its HTML.
// The concrete Fetcher satisfies this; tests substitute fakes.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Crawler runs the bounded crawl for one site: home page first, then
// the ranked candidate links until the page cap is reached.
//
// A crawl moves through four states: normalize and fetch the home page;
// on failure terminate with the FAILED report; otherwise analyze the
// home page and walk the candidates in rank order; finally fold all
// page records into one SiteReport.
type Crawler struct {
	// fetcher fetches pages. The only outbound network boundary.
	fetcher PageFetcher

	// analyzer turns fetched HTML into PageRecords.
	analyzer *analyzer.Analyzer

	// discoverer ranks the home page's internal links.
	discoverer *Discoverer

	// maxPages caps analyzed pages per crawl, home page included.
	maxPages int

	// maxLinks caps the ranked candidate list.
	maxLinks int

	// logger for structured logging.
	logger *slog.Logger
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithMaxPages sets the page cap (home page included).
func WithMaxPages(n int) CrawlerOption {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithMaxCandidateLinks sets the candidate list cap.
func WithMaxCandidateLinks(n int) CrawlerOption {
	return func(c *Crawler) {
		if n > 0 {
			c.maxLinks = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler from its three collaborators.
func New(fetcher PageFetcher, a *analyzer.Analyzer, d *Discoverer, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetcher:    fetcher,
		analyzer:   a,
		discoverer: d,
		maxPages:   config.DefaultMaxPages,
		maxLinks:   config.DefaultMaxCandidateLinks,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Crawl analyzes the bounded neighborhood of seedURL and returns the
// aggregated site report. It never returns an error: an unreachable
// home page yields the FAILED report variant, which is a valid,
// fully-formed result.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) *model.SiteReport {
	baseURL := NormalizeBaseURL(seedURL)

	homeHTML, err := c.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		c.logger.Warn("home page unavailable", "url", baseURL, "error", err)
		return model.NewFailedSiteReport(hostOf(baseURL), baseURL, homeUnavailableReason)
	}

	domain := RegistrableDomain(hostOf(baseURL))

	// The home page is always the first record; its content determines
	// the candidate list.
	pages := []model.PageRecord{c.analyzer.Analyze(homeHTML, baseURL)}
	visited := map[string]struct{}{baseURL: {}}

	candidates := c.discoverer.Discover(baseURL, homeHTML, c.maxLinks)
	c.logger.Debug("candidate links ranked", "domain", domain, "candidates", len(candidates))

	for _, link := range candidates {
		if len(pages) >= c.maxPages {
			break
		}
		if _, ok := visited[link]; ok {
			continue
		}
		visited[link] = struct{}{}

		select {
		case <-ctx.Done():
			// A cancelled crawl still folds what it has; the report
			// stays valid, just smaller.
			return model.NewSiteReport(domain, baseURL, pages)
		default:
		}

		html, err := c.fetcher.Fetch(ctx, link)
		if err != nil {
			// A failed candidate is skipped without consuming a
			// page-count slot. No retries.
			c.logger.Debug("candidate unavailable", "url", link, "error", err)
			continue
		}

		pages = append(pages, c.analyzer.Analyze(html, link))
	}

	return model.NewSiteReport(domain, baseURL, pages)
}

// hostOf extracts the host (with port, if any) from an absolute URL.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
