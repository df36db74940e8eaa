// Package scoring assigns marketing intention scores, segments,
// customer types and suggested actions to customer-shaped records. All
// derivations are pure functions of a single record, so they are safe
// to apply in any order and to re-apply over already-scored rows.
package scoring

import (
	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/common"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

// Segment boundaries on the 0-100 intention score.
const (
	highScore   = 70
	mediumScore = 50
)

// Customer-type cutoffs.
const (
	vipLTV       = 1_000_000
	vipFrequency = 5
	recurrentMin = 2
)

// Thresholds configures the four score components. Passed in
// explicitly so runs can override cutoffs and tests can pin them.
type Thresholds struct {
	HighValue       float64
	MediumValue     float64
	HighFrequency   int
	MediumFrequency int
	RecentDays      float64
	MediumDays      float64
	HighCartValue   float64
	MediumCartValue float64
}

// DefaultThresholds returns the production cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighValue:       1_000_000,
		MediumValue:     300_000,
		HighFrequency:   5,
		MediumFrequency: 3,
		RecentDays:      7,
		MediumDays:      30,
		HighCartValue:   300_000,
		MediumCartValue: 100_000,
	}
}

// ThresholdsFromConfig maps the env-driven scoring configuration.
func ThresholdsFromConfig(cfg common.ScoringConfig) Thresholds {
	return Thresholds{
		HighValue:       cfg.HighValue,
		MediumValue:     cfg.MediumValue,
		HighFrequency:   cfg.HighFrequency,
		MediumFrequency: cfg.MediumFrequency,
		RecentDays:      cfg.RecentDays,
		MediumDays:      cfg.MediumDays,
		HighCartValue:   cfg.HighCartValue,
		MediumCartValue: cfg.MediumCartValue,
	}
}

// Signals are the fields the scorer reads from a record. CartSubtotal
// is zero for records without a cart.
type Signals struct {
	LTV          float64
	Frequency    int
	RecencyDays  float64
	CartSubtotal float64
	HasInvoiceA  bool
}

// Result carries the four independent derivations for one record.
type Result struct {
	Score        int
	Segment      constants.Segment
	CustomerType constants.CustomerType
	Action       string
}

// Scorer derives marketing results from record signals. It keeps no
// cross-record state.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer builds a scorer with the given thresholds.
func NewScorer(t Thresholds) *Scorer {
	return &Scorer{thresholds: t}
}

// Score computes the 0-100 intention score: lifetime value up to 30,
// frequency up to 30, recency up to 20, cart subtotal up to 20.
func (s *Scorer) Score(sig Signals) int {
	t := s.thresholds
	score := 0

	switch {
	case sig.LTV > t.HighValue:
		score += 30
	case sig.LTV > t.MediumValue:
		score += 20
	case sig.LTV > 0:
		score += 10
	}

	switch {
	case sig.Frequency >= t.HighFrequency:
		score += 30
	case sig.Frequency >= t.MediumFrequency:
		score += 20
	case sig.Frequency >= 1:
		score += 10
	}

	switch {
	case sig.RecencyDays <= t.RecentDays:
		score += 20
	case sig.RecencyDays <= t.MediumDays:
		score += 10
	}

	switch {
	case sig.CartSubtotal >= t.HighCartValue:
		score += 20
	case sig.CartSubtotal >= t.MediumCartValue:
		score += 10
	}

	return score
}

// Segment buckets a score into Alta/Media/Baja.
func (s *Scorer) Segment(score int) constants.Segment {
	switch {
	case score >= highScore:
		return constants.SegmentHigh
	case score >= mediumScore:
		return constants.SegmentMedium
	default:
		return constants.SegmentLow
	}
}

// Classify types a customer: the preferential-invoice flag alone forces
// VIP, as do lifetime value or frequency over the VIP cutoffs.
func (s *Scorer) Classify(sig Signals) constants.CustomerType {
	if sig.HasInvoiceA {
		return constants.CustomerVIP
	}
	if sig.LTV >= vipLTV || sig.Frequency >= vipFrequency {
		return constants.CustomerVIP
	}
	if sig.Frequency >= recurrentMin {
		return constants.CustomerRecurrent
	}
	return constants.CustomerNew
}

// Evaluate runs score, segment, action and classification for one
// record.
func (s *Scorer) Evaluate(sig Signals) Result {
	score := s.Score(sig)
	segment := s.Segment(score)
	return Result{
		Score:        score,
		Segment:      segment,
		CustomerType: s.Classify(sig),
		Action:       constants.SuggestedAction(segment),
	}
}

// SignalsFromRecord extracts scorer inputs from an RFM record.
func SignalsFromRecord(r *entity.RFMRecord) Signals {
	return Signals{
		LTV:         r.LTVTotal,
		Frequency:   r.Frequency,
		RecencyDays: float64(r.RecencyDays),
		HasInvoiceA: r.HasInvoiceA == constants.YesAccent || r.HasInvoiceA == constants.Yes,
	}
}

// ScoreRecord evaluates one RFM record.
func (s *Scorer) ScoreRecord(r *entity.RFMRecord) Result {
	return s.Evaluate(SignalsFromRecord(r))
}
