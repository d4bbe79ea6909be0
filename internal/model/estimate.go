package model

import "math"

// Assumptions records the inputs the carbon estimate was computed from,
// so a report is self-describing and reproducible.
type Assumptions struct {
	// MonthlyPageViews is the caller-supplied traffic figure.
	MonthlyPageViews int `json:"monthly_page_views"`

	// WeightMultiplier scales average HTML weight to total page weight.
	WeightMultiplier float64 `json:"weight_multiplier"`

	// EnergyPerGBKWh is the assumed energy cost per transferred GB.
	EnergyPerGBKWh float64 `json:"energy_per_gb_kwh"`

	// CarbonIntensityGPerKWh is the assumed grid carbon intensity.
	CarbonIntensityGPerKWh float64 `json:"carbon_intensity_g_per_kwh"`
}

// CarbonEstimate is the result of the fixed linear emissions model.
// It is stateless and recomputable at any time from a SiteReport's
// average page size and a traffic assumption.
//
// Values are stored unrounded so downstream composition keeps full
// precision; use Rounded for display.
type CarbonEstimate struct {
	// AvgKBPerPage is the estimated full page weight in kilobytes
	// (HTML times the weight multiplier).
	AvgKBPerPage float64 `json:"avg_kb_per_page"`

	// GCO2PerView is the estimated grams of CO2 emitted per page view.
	GCO2PerView float64 `json:"gco2_per_page_view"`

	// MonthlyKgCO2 is the estimated monthly emissions in kilograms.
	MonthlyKgCO2 float64 `json:"monthly_kgco2"`

	// YearlyKgCO2 is MonthlyKgCO2 extrapolated over twelve months.
	YearlyKgCO2 float64 `json:"yearly_kgco2"`

	// Assumptions are the model inputs this estimate derives from.
	Assumptions Assumptions `json:"assumptions"`
}

// Rounded returns a copy with display rounding applied: page weight to
// one decimal, per-view grams to four decimals, kilogram figures to two
// decimals. Assumptions are carried unchanged.
func (c CarbonEstimate) Rounded() CarbonEstimate {
	return CarbonEstimate{
		AvgKBPerPage: round1(c.AvgKBPerPage),
		GCO2PerView:  roundN(c.GCO2PerView, 4),
		MonthlyKgCO2: roundN(c.MonthlyKgCO2, 2),
		YearlyKgCO2:  roundN(c.YearlyKgCO2, 2),
		Assumptions:  c.Assumptions,
	}
}

// roundN rounds to n decimal places.
func roundN(v float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	return math.Round(v*pow) / pow
}
