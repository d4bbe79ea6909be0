package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/ecodena/greenscan/internal/analyzer"
	"github.com/ecodena/greenscan/internal/carbon"
	"github.com/ecodena/greenscan/internal/crawler"
	"github.com/ecodena/greenscan/internal/database"
	"github.com/ecodena/greenscan/internal/keyword"
	"github.com/ecodena/greenscan/internal/model"
)

// mapFetcher serves pages from a map; absent URLs are unavailable.
type mapFetcher struct {
	pages map[string]string
}

func (f *mapFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	body, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("%w: status 404", crawler.ErrPageUnavailable)
	}
	return body, nil
}

func newMapCrawler(pages map[string]string) *crawler.Crawler {
	return crawler.New(
		&mapFetcher{pages: pages},
		analyzer.New(keyword.NewDefaultScorer()),
		crawler.NewDiscoverer(),
	)
}

func TestCrawlStep(t *testing.T) {
	t.Parallel()

	t.Run("attaches the report", func(t *testing.T) {
		t.Parallel()

		c := newMapCrawler(map[string]string{
			"https://example.com": "<html><head><title>Accueil</title></head><body><p>démarche RSE</p></body></html>",
		})

		result := model.NewScanResult("example.com")
		if err := NewCrawlStep(c).Do(context.Background(), result); err != nil {
			t.Fatalf("Do() error = %v, want nil", err)
		}

		if result.Report == nil {
			t.Fatal("Do() should attach a report")
		}
		if result.Report.PagesScanned != 1 {
			t.Errorf("PagesScanned = %d, want 1", result.Report.PagesScanned)
		}
	})

	t.Run("unreachable home page is not a step error", func(t *testing.T) {
		t.Parallel()

		c := newMapCrawler(map[string]string{})

		result := model.NewScanResult("down.example.com")
		if err := NewCrawlStep(c).Do(context.Background(), result); err != nil {
			t.Fatalf("Do() error = %v, want nil", err)
		}

		if result.Report == nil || !result.Report.Failed() {
			t.Error("Do() should attach the failed report variant")
		}
	})
}

func TestEstimateStep(t *testing.T) {
	t.Parallel()

	t.Run("attaches the estimate", func(t *testing.T) {
		t.Parallel()

		result := model.NewScanResult("https://example.com")
		result.Report = &model.SiteReport{PagesScanned: 1, AvgHTMLKB: 100}

		step := NewEstimateStep(carbon.NewEstimator(), WithMonthlyViews(10_000))
		if err := step.Do(context.Background(), result); err != nil {
			t.Fatalf("Do() error = %v, want nil", err)
		}

		if result.Estimate == nil {
			t.Fatal("Do() should attach an estimate")
		}
		if result.Estimate.Assumptions.MonthlyPageViews != 10_000 {
			t.Errorf("MonthlyPageViews = %d, want 10000", result.Estimate.Assumptions.MonthlyPageViews)
		}
	})

	t.Run("failed report leaves the estimate nil", func(t *testing.T) {
		t.Parallel()

		result := model.NewScanResult("https://down.example.com")
		result.Report = model.NewFailedSiteReport("down.example.com", "https://down.example.com", "Impossible de récupérer la page d'accueil")

		step := NewEstimateStep(carbon.NewEstimator())
		if err := step.Do(context.Background(), result); err != nil {
			t.Fatalf("Do() error = %v, want nil", err)
		}

		if result.Estimate != nil {
			t.Errorf("Estimate = %+v, want nil for a failed crawl", result.Estimate)
		}
	})
}

func TestSaveStep(t *testing.T) {
	t.Parallel()

	t.Run("persists the result", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer db.Close()

		result := model.NewScanResult("https://example.com")
		result.Report = &model.SiteReport{Domain: "example.com", URL: "https://example.com", PagesScanned: 1}

		if err := NewSaveStep(db).Do(context.Background(), result); err != nil {
			t.Fatalf("Do() error = %v, want nil", err)
		}

		scans, err := db.ListScans(context.Background(), "example.com", 0)
		if err != nil {
			t.Fatalf("ListScans() error = %v", err)
		}
		if len(scans) != 1 {
			t.Errorf("ListScans() returned %d scans, want 1", len(scans))
		}
	})

	t.Run("nil database is a no-op", func(t *testing.T) {
		t.Parallel()

		result := model.NewScanResult("https://example.com")
		result.Report = &model.SiteReport{Domain: "example.com"}

		if err := NewSaveStep(nil).Do(context.Background(), result); err != nil {
			t.Errorf("Do() error = %v, want nil", err)
		}
	})

	t.Run("missing report is a no-op", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer db.Close()

		result := model.NewScanResult("https://example.com")
		if err := NewSaveStep(db).Do(context.Background(), result); err != nil {
			t.Errorf("Do() error = %v, want nil", err)
		}
	})
}
