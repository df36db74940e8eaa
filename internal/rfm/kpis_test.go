package rfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

func TestCalculateKPIsIntervals(t *testing.T) {
	orders := []entity.Order{
		// out of order on purpose, gaps are 10 and 30 days once sorted
		order("2", "ana@x.com", day(2024, 2, 10), 100),
		order("1", "ana@x.com", day(2024, 1, 31), 100),
		order("3", "ana@x.com", day(2024, 3, 11), 100),
	}

	kpis := CalculateKPIs(orders)
	k := kpis["ana@x.com"]
	require.NotNil(t, k)
	require.NotNil(t, k.AvgDaysBetween)
	assert.InDelta(t, 20, *k.AvgDaysBetween, 1e-9)
	assert.Equal(t, "2024-Q1", k.LastQuarter)
}

func TestCalculateKPIsSingleOrder(t *testing.T) {
	kpis := CalculateKPIs([]entity.Order{
		order("1", "solo@x.com", day(2024, 4, 15), 100),
	})
	k := kpis["solo@x.com"]
	require.NotNil(t, k)
	assert.Nil(t, k.AvgDaysBetween)
	assert.Equal(t, "2024-Q2", k.LastQuarter)
	// 2024-04-15 is a Monday
	assert.Equal(t, "Lunes", k.TopWeekday)
}

func TestPreferredWeekdayTieBreak(t *testing.T) {
	// one Wednesday and one Monday: the tie resolves Monday-first
	kpis := CalculateKPIs([]entity.Order{
		order("1", "tie@x.com", day(2024, 4, 17), 100), // Wednesday
		order("2", "tie@x.com", day(2024, 4, 22), 100), // Monday
	})
	assert.Equal(t, "Lunes", kpis["tie@x.com"].TopWeekday)
}

func TestCalculateKPIsDeterministic(t *testing.T) {
	orders := []entity.Order{
		order("1", "a@x.com", day(2024, 1, 1), 100),
		order("2", "a@x.com", day(2024, 2, 1), 100),
		order("3", "b@x.com", day(2024, 3, 1), 100),
	}
	first := CalculateKPIs(orders)
	for i := 0; i < 5; i++ {
		again := CalculateKPIs(orders)
		require.Equal(t, len(first), len(again))
		for email, k := range first {
			assert.Equal(t, k.LastQuarter, again[email].LastQuarter)
			assert.Equal(t, k.TopWeekday, again[email].TopWeekday)
		}
	}
}
