package model

import (
	"fmt"
	"math"
	"strings"
)

// SiteReport is the aggregate over all PageRecords of one crawl run.
// It is built once by NewSiteReport (or NewFailedSiteReport when the
// home page could not be fetched) and read-only afterwards.
type SiteReport struct {
	// Domain is the registrable domain of the crawled site
	// (e.g. "example.com"). For a failed crawl this holds the bare
	// host, since registrable-domain extraction never ran.
	Domain string `json:"domain"`

	// URL is the normalized base URL the crawl started from.
	URL string `json:"url"`

	// Error is a human-readable reason when the home page could not be
	// fetched. Empty for successful crawls.
	Error string `json:"error,omitempty"`

	// PagesScanned is the number of pages analyzed, home page included.
	PagesScanned int `json:"pages_scanned"`

	// HasRSEContent is true when any page matched a sustainability/CSR
	// keyword.
	HasRSEContent bool `json:"has_rse_content"`

	// HasCarbonMentions is true when any page matched a carbon
	// accounting keyword.
	HasCarbonMentions bool `json:"has_carbon_mentions"`

	// HasExplicitCarbonReport is true when some page's text contains
	// the literal phrase "bilan carbone".
	HasExplicitCarbonReport bool `json:"has_bilan_carbone_explicit"`

	// HasGreenIT is true when any page matched a green IT keyword.
	HasGreenIT bool `json:"has_green_it"`

	// GlobalRSEScore is the maximum per-page RSE score across the site.
	// Hits are summed but scores are not: the site-level score surfaces
	// the single best-scoring page rather than rewarding page count.
	GlobalRSEScore int `json:"global_rse_score"`

	// GlobalCarbonScore is the maximum per-page carbon score.
	GlobalCarbonScore int `json:"global_carbon_score"`

	// GlobalGreenITScore is the maximum per-page green IT score.
	GlobalGreenITScore int `json:"global_green_it_score"`

	// TotalRSEHits, TotalCarbonHits and TotalGreenITHits sum the raw
	// keyword hit counts across all pages.
	TotalRSEHits     int `json:"total_rse_hits"`
	TotalCarbonHits  int `json:"total_carbon_hits"`
	TotalGreenITHits int `json:"total_green_it_hits"`

	// TotalHTMLKB sums the per-page HTML sizes in kilobytes.
	TotalHTMLKB float64 `json:"total_html_kb"`

	// AvgHTMLKB is TotalHTMLKB divided by PagesScanned, rounded to one
	// decimal. Zero when no pages were scanned.
	AvgHTMLKB float64 `json:"avg_html_kb"`

	// Structural totals across all pages.
	TotalImages      int `json:"total_images"`
	TotalScripts     int `json:"total_scripts"`
	TotalStylesheets int `json:"total_stylesheets"`
	TotalH1          int `json:"total_h1"`
	TotalH2          int `json:"total_h2"`
	TotalH3          int `json:"total_h3"`

	// NumFontResources is the number of distinct external font resource
	// URLs across all pages.
	NumFontResources int `json:"num_font_resources"`

	// Summary is the generated human-readable summary sentence.
	Summary string `json:"summary"`

	// Pages holds the per-page records, home page first, then candidate
	// pages in rank order.
	Pages []PageRecord `json:"pages_details"`
}

// NewSiteReport folds the given page records into a single SiteReport.
//
// Design decision: Aggregation is a pure fold over the immutable record
// slice rather than running totals threaded through the crawl loop.
// The report is never observable in a partially-aggregated state, and
// re-folding the same records always yields an identical report.
func NewSiteReport(domain, baseURL string, pages []PageRecord) *SiteReport {
	r := &SiteReport{
		Domain:       domain,
		URL:          baseURL,
		PagesScanned: len(pages),
		Pages:        pages,
	}

	fontResources := make(map[string]struct{})
	for _, p := range pages {
		r.TotalRSEHits += p.Scores.RSEHits
		r.TotalCarbonHits += p.Scores.CarbonHits
		r.TotalGreenITHits += p.Scores.GreenITHits

		r.GlobalRSEScore = max(r.GlobalRSEScore, p.Scores.RSEScore)
		r.GlobalCarbonScore = max(r.GlobalCarbonScore, p.Scores.CarbonScore)
		r.GlobalGreenITScore = max(r.GlobalGreenITScore, p.Scores.GreenITScore)

		if strings.Contains(strings.ToLower(p.Text), explicitCarbonPhrase) {
			r.HasExplicitCarbonReport = true
		}

		r.TotalHTMLKB += p.HTMLKB
		r.TotalImages += p.NumImages
		r.TotalScripts += p.NumScripts
		r.TotalStylesheets += p.NumStylesheets
		r.TotalH1 += p.HeadingsH1
		r.TotalH2 += p.HeadingsH2
		r.TotalH3 += p.HeadingsH3

		for _, fr := range p.FontResources {
			fontResources[fr] = struct{}{}
		}
	}

	r.HasRSEContent = r.TotalRSEHits > 0
	r.HasCarbonMentions = r.TotalCarbonHits > 0
	r.HasGreenIT = r.TotalGreenITHits > 0
	r.NumFontResources = len(fontResources)

	if r.PagesScanned > 0 {
		r.AvgHTMLKB = round1(r.TotalHTMLKB / float64(r.PagesScanned))
	}

	r.Summary = r.buildSummary()

	return r
}

// NewFailedSiteReport builds the terminal FAILED variant: the home page
// could not be fetched, so the report carries only the host, the base
// URL, a reason string and an empty page list.
func NewFailedSiteReport(host, baseURL, reason string) *SiteReport {
	return &SiteReport{
		Domain: host,
		URL:    baseURL,
		Error:  reason,
		Pages:  []PageRecord{},
	}
}

// Failed reports whether this is the FAILED variant.
func (r *SiteReport) Failed() bool {
	return r.Error != ""
}

// explicitCarbonPhrase duplicates config.ExplicitCarbonPhrase to keep
// model free of a config dependency.
const explicitCarbonPhrase = "bilan carbone"

// Summary sentence fragments, kept in French like the rest of the
// user-facing report strings.
const (
	summaryRSEFound      = "L'entreprise communique sur la RSE / l'environnement."
	summaryRSENotFound   = "Aucun contenu RSE clair trouvé sur les pages analysées."
	summaryCarbonReport  = "Mention explicite d'un bilan carbone."
	summaryCarbonOnly    = "Mention d'émissions carbone / CO2, sans bilan carbone clairement identifié."
	summaryCarbonNone    = "Aucune mention significative de carbone / CO2 trouvée."
	summaryGreenITFound  = "Des éléments de numérique responsable / green IT sont mentionnés."
	summaryGreenITAbsent = "Pas de mention de numérique responsable / site éco-conçu détectée."
)

// buildSummary composes the summary from four independently-decided
// sentence fragments: RSE presence, carbon presence (distinguishing an
// explicit report from mere mentions), green IT presence, and the crawl
// size statement.
func (r *SiteReport) buildSummary() string {
	parts := make([]string, 0, 4)

	if r.HasRSEContent {
		parts = append(parts, summaryRSEFound)
	} else {
		parts = append(parts, summaryRSENotFound)
	}

	switch {
	case r.HasCarbonMentions && r.HasExplicitCarbonReport:
		parts = append(parts, summaryCarbonReport)
	case r.HasCarbonMentions:
		parts = append(parts, summaryCarbonOnly)
	default:
		parts = append(parts, summaryCarbonNone)
	}

	if r.HasGreenIT {
		parts = append(parts, summaryGreenITFound)
	} else {
		parts = append(parts, summaryGreenITAbsent)
	}

	parts = append(parts, fmt.Sprintf("Crawl de %d pages pour %.1f Ko de HTML (moyenne %.1f Ko/page).",
		r.PagesScanned, r.TotalHTMLKB, r.AvgHTMLKB))

	return strings.Join(parts, " ")
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
