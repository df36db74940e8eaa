package rfm

import (
	"sort"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

// SortKey selects the ordering of the RFM output table.
type SortKey string

const (
	SortByLTV       SortKey = "ltv"
	SortByFrequency SortKey = "frequency"
	SortByRecency   SortKey = "recency"
	SortByTicket    SortKey = "ticket"
)

// SortRecords orders records in place by the given key. Value keys sort
// descending; recency sorts ascending (fewer days since the last
// purchase is better). Unknown keys fall back to LTV. The sort is
// stable so equal records keep their merge order.
func SortRecords(records []*entity.RFMRecord, key SortKey) {
	var less func(a, b *entity.RFMRecord) bool
	switch key {
	case SortByFrequency:
		less = func(a, b *entity.RFMRecord) bool { return a.Frequency > b.Frequency }
	case SortByRecency:
		less = func(a, b *entity.RFMRecord) bool { return a.RecencyDays < b.RecencyDays }
	case SortByTicket:
		less = func(a, b *entity.RFMRecord) bool { return a.AvgMonthlyTicket > b.AvgMonthlyTicket }
	default:
		less = func(a, b *entity.RFMRecord) bool { return a.LTVTotal > b.LTVTotal }
	}
	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}
