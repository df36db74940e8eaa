package rfm

import (
	"time"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// daysPerMonth converts customer tenure in days to months for the
// average monthly ticket.
const daysPerMonth = 30.416

// Metrics holds the core RFM aggregates of one customer.
type Metrics struct {
	RecencyDate      time.Time
	RecencyDays      int
	Frequency        int
	LTVTotal         float64
	AvgOrderValue    float64
	MaxOrderValue    float64
	MinOrderValue    float64
	AvgMonthlyTicket float64
	FirstPurchase    time.Time
	DaysAsCustomer   int
}

// CalculateMetrics aggregates eligible orders per customer email.
// Orders must already be cleaned (lower-cased emails, eligibility
// filter applied). The reference time now is captured once per run so
// every recency-derived value is internally consistent.
func CalculateMetrics(orders []entity.Order, now time.Time) map[string]*Metrics {
	metrics := make(map[string]*Metrics)
	for _, o := range orders {
		m, ok := metrics[o.CustomerEmail]
		if !ok {
			m = &Metrics{
				RecencyDate:   o.PurchaseDate,
				FirstPurchase: o.PurchaseDate,
				MaxOrderValue: o.GrandTotal,
				MinOrderValue: o.GrandTotal,
			}
			metrics[o.CustomerEmail] = m
		} else {
			if o.PurchaseDate.After(m.RecencyDate) {
				m.RecencyDate = o.PurchaseDate
			}
			if o.PurchaseDate.Before(m.FirstPurchase) {
				m.FirstPurchase = o.PurchaseDate
			}
			if o.GrandTotal > m.MaxOrderValue {
				m.MaxOrderValue = o.GrandTotal
			}
			if o.GrandTotal < m.MinOrderValue {
				m.MinOrderValue = o.GrandTotal
			}
		}
		m.Frequency++
		m.LTVTotal += o.GrandTotal
	}

	for _, m := range metrics {
		m.AvgOrderValue = m.LTVTotal / float64(m.Frequency)
		m.RecencyDays = utils.WholeDays(now, m.RecencyDate)

		// Same-day first purchase would divide by zero below.
		m.DaysAsCustomer = utils.WholeDays(now, m.FirstPurchase)
		if m.DaysAsCustomer == 0 {
			m.DaysAsCustomer = 1
		}
		m.AvgMonthlyTicket = m.LTVTotal / (float64(m.DaysAsCustomer) / daysPerMonth)
	}
	return metrics
}
