package carbon

import (
	"errors"

	"github.com/ecodena/greenscan/internal/config"
	"github.com/ecodena/greenscan/internal/model"
)

// ErrMissingAverageSize is returned when an estimate is requested for a
// report without an average page size, such as a failed crawl.
var ErrMissingAverageSize = errors.New("carbon: report has no average page size")

// bytesPerGB converts kilobytes to gigabytes in two binary steps.
const bytesPerGB = 1024.0 * 1024.0

// Estimator computes carbon estimates from site reports under a fixed
// set of model assumptions.
type Estimator struct {
	// weightMultiplier scales HTML size to estimated full page weight.
	weightMultiplier float64

	// energyPerGBKWh is the energy cost assumed per transferred GB.
	energyPerGBKWh float64

	// carbonIntensityGPerKWh is the assumed grid carbon intensity.
	carbonIntensityGPerKWh float64
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithWeightMultiplier overrides the HTML-to-page weight multiplier.
func WithWeightMultiplier(m float64) EstimatorOption {
	return func(e *Estimator) {
		if m > 0 {
			e.weightMultiplier = m
		}
	}
}

// WithEnergyPerGB overrides the energy assumption in kWh per GB.
func WithEnergyPerGB(kwh float64) EstimatorOption {
	return func(e *Estimator) {
		if kwh > 0 {
			e.energyPerGBKWh = kwh
		}
	}
}

// WithCarbonIntensity overrides the grid intensity in gCO2 per kWh.
func WithCarbonIntensity(g float64) EstimatorOption {
	return func(e *Estimator) {
		if g > 0 {
			e.carbonIntensityGPerKWh = g
		}
	}
}

// NewEstimator creates an Estimator with the default model
// coefficients.
func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		weightMultiplier:       config.DefaultWeightMultiplier,
		energyPerGBKWh:         config.DefaultEnergyPerGBKWh,
		carbonIntensityGPerKWh: config.DefaultCarbonIntensityGPerKWh,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Estimate derives the emissions figures for one site report and a
// monthly traffic assumption. The returned values are unrounded; call
// Rounded on the result for display.
//
// A failed report carries no average page size, so no estimate exists
// for it and ErrMissingAverageSize is returned.
func (e *Estimator) Estimate(report *model.SiteReport, monthlyViews int) (model.CarbonEstimate, error) {
	if report == nil || report.Failed() || report.PagesScanned == 0 {
		return model.CarbonEstimate{}, ErrMissingAverageSize
	}

	avgKB := report.AvgHTMLKB * e.weightMultiplier
	gbPerView := avgKB / bytesPerGB
	kwhPerView := gbPerView * e.energyPerGBKWh
	gco2PerView := kwhPerView * e.carbonIntensityGPerKWh

	monthlyKg := gco2PerView * float64(monthlyViews) / 1000.0
	yearlyKg := monthlyKg * 12.0

	return model.CarbonEstimate{
		AvgKBPerPage: avgKB,
		GCO2PerView:  gco2PerView,
		MonthlyKgCO2: monthlyKg,
		YearlyKgCO2:  yearlyKg,
		Assumptions: model.Assumptions{
			MonthlyPageViews:       monthlyViews,
			WeightMultiplier:       e.weightMultiplier,
			EnergyPerGBKWh:         e.energyPerGBKWh,
			CarbonIntensityGPerKWh: e.carbonIntensityGPerKWh,
		},
	}, nil
}
