package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

func TestScoreComponents(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	tests := []struct {
		name string
		sig  Signals
		want int
	}{
		{"zero signals", Signals{}, 20}, // recency 0 is within the recent window
		{"high everything", Signals{LTV: 1_500_000, Frequency: 6, RecencyDays: 3, CartSubtotal: 400_000}, 100},
		{"medium value only", Signals{LTV: 500_000, RecencyDays: 99}, 20},
		{"low value only", Signals{LTV: 50_000, RecencyDays: 99}, 10},
		{"value at cutoff scores the lower tier", Signals{LTV: 1_000_000, RecencyDays: 99}, 20},
		{"frequency high", Signals{Frequency: 5, RecencyDays: 99}, 30},
		{"frequency medium", Signals{Frequency: 3, RecencyDays: 99}, 20},
		{"frequency low", Signals{Frequency: 1, RecencyDays: 99}, 10},
		{"recency recent", Signals{RecencyDays: 7}, 20},
		{"recency medium", Signals{RecencyDays: 30}, 10},
		{"recency stale", Signals{RecencyDays: 31}, 0},
		{"cart high", Signals{RecencyDays: 99, CartSubtotal: 300_000}, 20},
		{"cart medium", Signals{RecencyDays: 99, CartSubtotal: 100_000}, 10},
		{"cart below cutoff", Signals{RecencyDays: 99, CartSubtotal: 99_999}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.sig))
		})
	}
}

func TestSegmentBoundaries(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	assert.Equal(t, constants.SegmentHigh, s.Segment(100))
	assert.Equal(t, constants.SegmentHigh, s.Segment(70))
	assert.Equal(t, constants.SegmentMedium, s.Segment(69))
	assert.Equal(t, constants.SegmentMedium, s.Segment(50))
	assert.Equal(t, constants.SegmentLow, s.Segment(49))
	assert.Equal(t, constants.SegmentLow, s.Segment(0))
}

func TestClassify(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	assert.Equal(t, constants.CustomerVIP, s.Classify(Signals{HasInvoiceA: true}))
	assert.Equal(t, constants.CustomerVIP, s.Classify(Signals{LTV: 1_000_000}))
	assert.Equal(t, constants.CustomerVIP, s.Classify(Signals{Frequency: 5}))
	assert.Equal(t, constants.CustomerRecurrent, s.Classify(Signals{Frequency: 2, LTV: 500}))
	assert.Equal(t, constants.CustomerNew, s.Classify(Signals{Frequency: 1}))
	assert.Equal(t, constants.CustomerNew, s.Classify(Signals{}))
}

func TestEvaluateActions(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	high := s.Evaluate(Signals{LTV: 1_500_000, Frequency: 6, RecencyDays: 2, CartSubtotal: 500_000})
	assert.Equal(t, constants.SegmentHigh, high.Segment)
	assert.Equal(t, "WhatsApp + Cupón personalizado", high.Action)

	medium := s.Evaluate(Signals{LTV: 400_000, Frequency: 3, RecencyDays: 20})
	assert.Equal(t, constants.SegmentMedium, medium.Segment)
	assert.Equal(t, "Email remarketing", medium.Action)

	low := s.Evaluate(Signals{Frequency: 1, RecencyDays: 200})
	assert.Equal(t, constants.SegmentLow, low.Segment)
	assert.Equal(t, "Automatización suave", low.Action)
}

func TestEvaluateIdempotent(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	sig := Signals{LTV: 350_000, Frequency: 4, RecencyDays: 12, CartSubtotal: 150_000}

	first := s.Evaluate(sig)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, s.Evaluate(sig))
	}
}

func TestScoreRecord(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	rec := &entity.RFMRecord{
		LTVTotal:    1_100_000,
		Frequency:   2,
		RecencyDays: 22,
		HasInvoiceA: "Sí",
	}

	res := s.ScoreRecord(rec)
	// 30 value + 10 frequency + 10 recency, no cart
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, constants.SegmentMedium, res.Segment)
	assert.Equal(t, constants.CustomerVIP, res.CustomerType)
}

func TestCustomThresholds(t *testing.T) {
	s := NewScorer(Thresholds{
		HighValue:       1000,
		MediumValue:     100,
		HighFrequency:   2,
		MediumFrequency: 1,
		RecentDays:      1,
		MediumDays:      2,
		HighCartValue:   50,
		MediumCartValue: 10,
	})
	assert.Equal(t, 100, s.Score(Signals{LTV: 2000, Frequency: 2, RecencyDays: 1, CartSubtotal: 60}))
}
