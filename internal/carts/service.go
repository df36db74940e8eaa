package carts

import (
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/scoring"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// ScoredCart is an abandoned cart merged with the owner's RFM fields
// and scored by the marketing scorer. Customers absent from the RFM
// table keep zeroed value signals and "No" flags.
type ScoredCart struct {
	entity.Cart

	LTVTotal         float64
	Frequency        int
	RecencyDays      float64
	AvgMonthlyTicket float64
	TopCategory      string
	IsLocalRegion    string
	HasInvoiceA      string

	Score        int
	Segment      constants.Segment
	CustomerType constants.CustomerType
	Action       string
}

// Row renders the cart in the fixed column order of
// constants.CartColumns.
func (c *ScoredCart) Row() []string {
	return []string{
		c.Email,
		c.Products,
		c.Quantity,
		utils.FormatCommaDecimal(c.Subtotal),
		formatTimestamp(c.Created),
		formatTimestamp(c.Updated),
		utils.FormatCommaDecimal(c.LTVTotal),
		strconv.Itoa(c.Frequency),
		strconv.FormatFloat(c.RecencyDays, 'f', 0, 64),
		utils.FormatCommaDecimal(c.AvgMonthlyTicket),
		c.TopCategory,
		c.IsLocalRegion,
		c.HasInvoiceA,
		strconv.Itoa(c.Score),
		string(c.Segment),
		string(c.CustomerType),
		c.Action,
	}
}

// Service merges abandoned carts with RFM records and scores them.
type Service struct {
	scorer *scoring.Scorer
	logger *slog.Logger
}

func NewService(scorer *scoring.Scorer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{scorer: scorer, logger: logger}
}

// Process left-merges carts with the RFM table by email and scores each
// cart. Output is ordered by Updated descending, then score descending.
func (s *Service) Process(items []entity.Cart, records []*entity.RFMRecord) []*ScoredCart {
	byEmail := make(map[string]*entity.RFMRecord, len(records))
	for _, r := range records {
		byEmail[r.Email] = r
	}

	scored := make([]*ScoredCart, 0, len(items))
	for _, cart := range items {
		sc := &ScoredCart{
			Cart:          cart,
			TopCategory:   constants.NotAvail,
			IsLocalRegion: constants.No,
			HasInvoiceA:   constants.No,
		}
		if r, ok := byEmail[cart.Email]; ok {
			sc.LTVTotal = r.LTVTotal
			sc.Frequency = r.Frequency
			sc.RecencyDays = float64(r.RecencyDays)
			sc.AvgMonthlyTicket = r.AvgMonthlyTicket
			sc.TopCategory = r.TopCategory
			sc.IsLocalRegion = r.IsLocalRegion
			sc.HasInvoiceA = r.HasInvoiceA
		}

		result := s.scorer.Evaluate(scoring.Signals{
			LTV:          sc.LTVTotal,
			Frequency:    sc.Frequency,
			RecencyDays:  sc.RecencyDays,
			CartSubtotal: cart.Subtotal,
			HasInvoiceA:  sc.HasInvoiceA == constants.YesAccent || sc.HasInvoiceA == constants.Yes,
		})
		sc.Score = result.Score
		sc.Segment = result.Segment
		sc.CustomerType = result.CustomerType
		sc.Action = result.Action

		scored = append(scored, sc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if !scored[i].Updated.Equal(scored[j].Updated) {
			return scored[i].Updated.After(scored[j].Updated)
		}
		return scored[i].Score > scored[j].Score
	})

	s.logger.Info("carts processed", "carts", len(scored))
	return scored
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvail
	}
	return t.Format("2006-01-02 15:04:05")
}
