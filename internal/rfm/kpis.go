package rfm

import (
	"sort"
	"time"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// KPIs holds the supplementary per-customer indicators.
type KPIs struct {
	// AvgDaysBetween is nil for customers with fewer than two orders,
	// never zero.
	AvgDaysBetween *float64
	LastQuarter    string
	TopWeekday     string
}

// weekdayOrder fixes the scan order for the preferred-weekday count so
// ties resolve the same way on every run: Monday first through Sunday.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// CalculateKPIs computes inter-purchase interval, last-active quarter
// and preferred weekday per customer from cleaned orders.
func CalculateKPIs(orders []entity.Order) map[string]*KPIs {
	dates := make(map[string][]time.Time)
	for _, o := range orders {
		dates[o.CustomerEmail] = append(dates[o.CustomerEmail], o.PurchaseDate)
	}

	kpis := make(map[string]*KPIs, len(dates))
	for email, ds := range sortDates(dates) {
		k := &KPIs{}

		if len(ds) > 1 {
			total := 0
			for i := 1; i < len(ds); i++ {
				total += utils.WholeDays(ds[i], ds[i-1])
			}
			avg := float64(total) / float64(len(ds)-1)
			k.AvgDaysBetween = &avg
		}

		k.LastQuarter = utils.QuarterLabel(ds[len(ds)-1])
		k.TopWeekday = preferredWeekday(ds)

		kpis[email] = k
	}
	return kpis
}

func sortDates(dates map[string][]time.Time) map[string][]time.Time {
	for _, ds := range dates {
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
	}
	return dates
}

func preferredWeekday(dates []time.Time) string {
	counts := make(map[time.Weekday]int)
	for _, d := range dates {
		counts[d.Weekday()]++
	}
	best := time.Monday
	bestCount := -1
	for _, wd := range weekdayOrder {
		if counts[wd] > bestCount {
			best = wd
			bestCount = counts[wd]
		}
	}
	if bestCount <= 0 {
		return constants.NotAvail
	}
	return constants.WeekdayName(best)
}
