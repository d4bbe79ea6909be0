package carbon

import (
	"errors"
	"math"
	"testing"

	"github.com/ecodena/greenscan/internal/model"
)

func TestEstimator_Estimate(t *testing.T) {
	t.Parallel()

	t.Run("applies the full model chain", func(t *testing.T) {
		t.Parallel()

		report := &model.SiteReport{PagesScanned: 1, AvgHTMLKB: 100}

		got, err := NewEstimator().Estimate(report, 10_000)
		if err != nil {
			t.Fatalf("Estimate() error = %v, want nil", err)
		}

		if got.AvgKBPerPage != 300.0 {
			t.Errorf("AvgKBPerPage = %v, want 300.0", got.AvgKBPerPage)
		}

		// 300 KB -> GB -> kWh -> gCO2 per view.
		wantPerView := 300.0 / (1024.0 * 1024.0) * 0.5 * 300.0
		if math.Abs(got.GCO2PerView-wantPerView) > 1e-12 {
			t.Errorf("GCO2PerView = %v, want %v", got.GCO2PerView, wantPerView)
		}

		wantMonthly := wantPerView * 10_000 / 1000.0
		if math.Abs(got.MonthlyKgCO2-wantMonthly) > 1e-12 {
			t.Errorf("MonthlyKgCO2 = %v, want %v", got.MonthlyKgCO2, wantMonthly)
		}
		if math.Abs(got.YearlyKgCO2-wantMonthly*12.0) > 1e-12 {
			t.Errorf("YearlyKgCO2 = %v, want %v", got.YearlyKgCO2, wantMonthly*12.0)
		}
	})

	t.Run("rounded figures for display", func(t *testing.T) {
		t.Parallel()

		report := &model.SiteReport{PagesScanned: 1, AvgHTMLKB: 100}

		est, err := NewEstimator().Estimate(report, 10_000)
		if err != nil {
			t.Fatalf("Estimate() error = %v, want nil", err)
		}

		got := est.Rounded()
		if got.AvgKBPerPage != 300.0 {
			t.Errorf("AvgKBPerPage = %v, want 300.0", got.AvgKBPerPage)
		}
		if got.GCO2PerView != 0.0429 {
			t.Errorf("GCO2PerView = %v, want 0.0429", got.GCO2PerView)
		}
		if got.MonthlyKgCO2 != 0.43 {
			t.Errorf("MonthlyKgCO2 = %v, want 0.43", got.MonthlyKgCO2)
		}
		if got.YearlyKgCO2 != 5.15 {
			t.Errorf("YearlyKgCO2 = %v, want 5.15", got.YearlyKgCO2)
		}
	})

	t.Run("estimate carries its assumptions", func(t *testing.T) {
		t.Parallel()

		report := &model.SiteReport{PagesScanned: 2, AvgHTMLKB: 42.5}

		est, err := NewEstimator(
			WithWeightMultiplier(2.0),
			WithEnergyPerGB(0.8),
			WithCarbonIntensity(50.0),
		).Estimate(report, 500)
		if err != nil {
			t.Fatalf("Estimate() error = %v, want nil", err)
		}

		want := model.Assumptions{
			MonthlyPageViews:       500,
			WeightMultiplier:       2.0,
			EnergyPerGBKWh:         0.8,
			CarbonIntensityGPerKWh: 50.0,
		}
		if est.Assumptions != want {
			t.Errorf("Assumptions = %+v, want %+v", est.Assumptions, want)
		}
		if est.AvgKBPerPage != 85.0 {
			t.Errorf("AvgKBPerPage = %v, want 85.0", est.AvgKBPerPage)
		}
	})

	t.Run("failed report has no estimate", func(t *testing.T) {
		t.Parallel()

		report := model.NewFailedSiteReport("example.com", "https://example.com", "Impossible de récupérer la page d'accueil")

		_, err := NewEstimator().Estimate(report, 10_000)
		if !errors.Is(err, ErrMissingAverageSize) {
			t.Errorf("Estimate() error = %v, want ErrMissingAverageSize", err)
		}
	})

	t.Run("nil report has no estimate", func(t *testing.T) {
		t.Parallel()

		_, err := NewEstimator().Estimate(nil, 10_000)
		if !errors.Is(err, ErrMissingAverageSize) {
			t.Errorf("Estimate() error = %v, want ErrMissingAverageSize", err)
		}
	})
}
