package keyword

import (
	"strings"

	"github.com/ecodena/greenscan/internal/config"
)

// SaturationThreshold is the hit count at or above which a taxonomy
// score is clamped to 100.
const SaturationThreshold = 20

// Scores holds the raw hit counts and derived 0-100 scores for the
// three taxonomies of a single text.
type Scores struct {
	// RSEHits is the total number of sustainability/CSR keyword matches.
	RSEHits int `json:"rse_hits"`

	// CarbonHits is the total number of carbon accounting keyword matches.
	CarbonHits int `json:"carbon_hits"`

	// GreenITHits is the total number of green IT keyword matches.
	GreenITHits int `json:"green_it_hits"`

	// RSEScore is the 0-100 score derived from RSEHits.
	RSEScore int `json:"rse_score"`

	// CarbonScore is the 0-100 score derived from CarbonHits.
	CarbonScore int `json:"carbon_score"`

	// GreenITScore is the 0-100 score derived from GreenITHits.
	GreenITScore int `json:"green_it_score"`
}

// Scorer counts taxonomy keyword occurrences in plain text.
//
// Design decision: The three taxonomies are injected at construction
// rather than read from package globals so that alternate taxonomies
// are testable in isolation and the canonical lists stay immutable.
type Scorer struct {
	rse     config.Taxonomy
	carbon  config.Taxonomy
	greenIT config.Taxonomy
}

// NewScorer creates a Scorer for the given three taxonomies.
func NewScorer(rse, carbon, greenIT config.Taxonomy) *Scorer {
	return &Scorer{rse: rse, carbon: carbon, greenIT: greenIT}
}

// NewDefaultScorer creates a Scorer with the built-in taxonomies.
func NewDefaultScorer() *Scorer {
	return NewScorer(config.RSETaxonomy(), config.CarbonTaxonomy(), config.GreenITTaxonomy())
}

// Score counts keyword hits for all three taxonomies in text and maps
// each count to a 0-100 score.
func (s *Scorer) Score(text string) Scores {
	rseHits := CountHits(text, s.rse.Keywords)
	carbonHits := CountHits(text, s.carbon.Keywords)
	greenITHits := CountHits(text, s.greenIT.Keywords)

	return Scores{
		RSEHits:      rseHits,
		CarbonHits:   carbonHits,
		GreenITHits:  greenITHits,
		RSEScore:     ScoreFromHits(rseHits),
		CarbonScore:  ScoreFromHits(carbonHits),
		GreenITScore: ScoreFromHits(greenITHits),
	}
}

// CountHits counts the total number of non-overlapping occurrences of
// all keywords in text. Matching is case-insensitive; keywords may be
// multi-word phrases.
func CountHits(text string, keywords []string) int {
	textLower := strings.ToLower(text)

	count := 0
	for _, kw := range keywords {
		count += strings.Count(textLower, strings.ToLower(kw))
	}
	return count
}

// ScoreFromHits maps a raw hit count to a bounded 0-100 score.
// Zero or negative hits score 0; SaturationThreshold or more hits
// score 100; anything in between scales linearly, truncated.
func ScoreFromHits(hits int) int {
	if hits <= 0 {
		return 0
	}
	if hits >= SaturationThreshold {
		return 100
	}
	return hits * 100 / SaturationThreshold
}
