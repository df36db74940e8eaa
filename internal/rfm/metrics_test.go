package rfm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(id, email string, date time.Time, total float64) entity.Order {
	return entity.Order{
		ID:            id,
		CustomerEmail: email,
		PurchaseDate:  date,
		GrandTotal:    total,
		Status:        "processing",
	}
}

func TestCalculateMetricsSingleCustomer(t *testing.T) {
	now := day(2024, 6, 1)
	orders := []entity.Order{
		order("100", "ana@example.com", day(2024, 3, 1), 500000),
		order("101", "ana@example.com", day(2024, 5, 10), 600000),
	}

	metrics := CalculateMetrics(orders, now)
	require.Len(t, metrics, 1)
	m := metrics["ana@example.com"]
	require.NotNil(t, m)

	assert.Equal(t, 2, m.Frequency)
	assert.InDelta(t, 1100000, m.LTVTotal, 1e-9)
	assert.InDelta(t, 550000, m.AvgOrderValue, 1e-9)
	assert.InDelta(t, 600000, m.MaxOrderValue, 1e-9)
	assert.InDelta(t, 500000, m.MinOrderValue, 1e-9)
	assert.Equal(t, day(2024, 5, 10), m.RecencyDate)
	assert.Equal(t, 22, m.RecencyDays)
	assert.Equal(t, day(2024, 3, 1), m.FirstPurchase)
	assert.Equal(t, 92, m.DaysAsCustomer)
	assert.InDelta(t, 1100000/(92.0/30.416), m.AvgMonthlyTicket, 1e-6)
}

func TestCalculateMetricsInvariants(t *testing.T) {
	now := day(2024, 6, 1)
	orders := []entity.Order{
		order("1", "a@x.com", day(2024, 1, 5), 100),
		order("2", "b@x.com", day(2024, 2, 1), 250),
		order("3", "a@x.com", day(2024, 3, 7), 300),
		order("4", "c@x.com", day(2024, 4, 2), 80),
		order("5", "a@x.com", day(2024, 5, 20), 50),
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, o := range orders {
		counts[o.CustomerEmail]++
		sums[o.CustomerEmail] += o.GrandTotal
	}

	metrics := CalculateMetrics(orders, now)
	require.Len(t, metrics, len(counts))
	for email, m := range metrics {
		assert.Equal(t, counts[email], m.Frequency, "frequency for %s", email)
		assert.InDelta(t, sums[email], m.LTVTotal, 1e-9, "ltv for %s", email)
		assert.GreaterOrEqual(t, m.MaxOrderValue, m.MinOrderValue)
		assert.False(t, m.RecencyDate.Before(m.FirstPurchase))
		assert.Positive(t, m.DaysAsCustomer)
	}
}

func TestCalculateMetricsSameDayTenureFloor(t *testing.T) {
	now := day(2024, 6, 1)
	orders := []entity.Order{
		order("9", "new@x.com", now, 1000),
	}

	m := CalculateMetrics(orders, now)["new@x.com"]
	require.NotNil(t, m)
	assert.Equal(t, 1, m.DaysAsCustomer)
	assert.Equal(t, 0, m.RecencyDays)
	assert.InDelta(t, 1000/(1.0/30.416), m.AvgMonthlyTicket, 1e-6)
}

func TestCalculateMetricsEmptyInput(t *testing.T) {
	assert.Empty(t, CalculateMetrics(nil, day(2024, 6, 1)))
}
