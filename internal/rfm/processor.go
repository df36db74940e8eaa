package rfm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/common"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// Processor runs the full RFM pipeline over one snapshot of inputs.
//
// Eligibility contract: callers hand the processor raw orders; the
// processor itself keeps only orders with the eligible status and a
// purchase year >= MinYear, and drops order items that do not belong to
// an eligible order. Pre-filtering by the caller is unnecessary and
// harmless.
//
// The reference time is captured once at construction and held constant
// for the whole run, so recency figures and downstream scores always
// agree within one logical run.
type Processor struct {
	minYear int
	now     time.Time
	logger  *slog.Logger
}

// NewProcessor builds a processor with a fixed reference time.
func NewProcessor(minYear int, now time.Time, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{minYear: minYear, now: now, logger: logger}
}

// Process executes extract -> metrics -> kpis -> preferences -> merge
// over one input snapshot and returns one record per customer with at
// least one eligible order, in customer input order. A failure in any
// stage aborts the whole run with a StageError; there is no partial
// result.
func (p *Processor) Process(
	ctx context.Context,
	customers []entity.RawCustomer,
	orders []entity.Order,
	catalog []entity.CatalogEntry,
	items []entity.OrderItem,
) (records []*entity.RFMRecord, err error) {
	stage := "clean"
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = common.NewStageError(stage, fmt.Errorf("panic: %v", r))
		}
	}()

	p.logger.Info("rfm processing started",
		"run_id", common.RunIDFromContext(ctx),
		"customers", len(customers),
		"orders", len(orders),
		"items", len(items),
		"min_year", p.minYear,
	)

	extracted, eligible, eligibleItems, err := p.clean(customers, orders, items)
	if err != nil {
		return nil, common.NewStageError(stage, err)
	}
	p.logger.Debug("data cleaned", "eligible_orders", len(eligible), "eligible_items", len(eligibleItems))

	stage = "metrics"
	metrics := CalculateMetrics(eligible, p.now)

	stage = "kpis"
	kpis := CalculateKPIs(eligible)

	stage = "preferences"
	prefs := AnalyzePreferences(eligibleItems, catalog, eligible)

	stage = "merge"
	records = p.merge(extracted, metrics, kpis, prefs)

	p.logger.Info("rfm processing complete", "rows", len(records))
	return records, nil
}

// clean validates input shape, extracts customer fields and applies the
// order eligibility filter.
func (p *Processor) clean(
	customers []entity.RawCustomer,
	orders []entity.Order,
	items []entity.OrderItem,
) ([]entity.Customer, []entity.Order, []entity.OrderItem, error) {
	for _, c := range customers {
		if utils.CleanEmail(c.Email) == "" {
			return nil, nil, nil, &common.MissingFieldError{Dataset: "customers", Field: "email"}
		}
	}

	eligible := make([]entity.Order, 0, len(orders))
	eligibleIDs := make(map[string]struct{})
	for _, o := range orders {
		if o.ID == "" {
			return nil, nil, nil, &common.MissingFieldError{Dataset: "orders", Field: "entity_id"}
		}
		email := utils.CleanEmail(o.CustomerEmail)
		if email == "" {
			return nil, nil, nil, &common.MissingFieldError{Dataset: "orders", Field: "customer_email"}
		}
		if o.Status != string(constants.EligibleStatus) {
			continue
		}
		if o.PurchaseDate.IsZero() || o.PurchaseDate.Year() < p.minYear {
			continue
		}
		o.CustomerEmail = email
		eligible = append(eligible, o)
		eligibleIDs[o.ID] = struct{}{}
	}

	kept := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if _, ok := eligibleIDs[it.OrderID]; ok {
			kept = append(kept, it)
		}
	}

	return ExtractCustomerFields(customers), eligible, kept, nil
}

// merge inner-joins customers to the RFM metrics and left-joins the
// KPI and preference data, filling gaps with the N/A placeholder.
// Customers without eligible orders never appear; duplicate customer
// emails keep their first occurrence.
func (p *Processor) merge(
	customers []entity.Customer,
	metrics map[string]*Metrics,
	kpis map[string]*KPIs,
	prefs map[string]*Preferences,
) []*entity.RFMRecord {
	seen := make(map[string]struct{}, len(customers))
	records := make([]*entity.RFMRecord, 0, len(metrics))

	for _, c := range customers {
		m, ok := metrics[c.Email]
		if !ok {
			continue
		}
		if _, dup := seen[c.Email]; dup {
			continue
		}
		seen[c.Email] = struct{}{}

		rec := &entity.RFMRecord{
			Name:          c.Name,
			Email:         c.Email,
			ID:            c.ID,
			CustomerSince: c.CreatedAt,
			Phone:         c.Phone,
			PostalCode:    c.PostalCode,
			IsLocalRegion: c.IsLocalRegion,
			TaxVATNumber:  c.TaxVATNumber,
			VATNumber:     c.VATNumber,
			HasInvoiceA:   constants.No,

			LTVTotal:         m.LTVTotal,
			AvgMonthlyTicket: m.AvgMonthlyTicket,
			AvgOrderValue:    m.AvgOrderValue,
			MaxOrderValue:    m.MaxOrderValue,
			MinOrderValue:    m.MinOrderValue,
			Frequency:        m.Frequency,
			RecencyDate:      m.RecencyDate,
			RecencyDays:      m.RecencyDays,
			FirstPurchase:    m.FirstPurchase,
			DaysAsCustomer:   m.DaysAsCustomer,

			LastQuarter:  constants.NotAvail,
			TopWeekday:   constants.NotAvail,
			TopCategory:  constants.NotAvail,
			CategoryList: constants.NotAvail,
			TopBrand:     constants.NotAvail,
			BrandList:    constants.NotAvail,
			FavoriteSKU:  constants.NotAvail,
			FavoriteName: constants.NotAvail,
			OrderHistory: constants.NotAvail,
		}

		if k, ok := kpis[c.Email]; ok {
			rec.AvgDaysBetween = k.AvgDaysBetween
			rec.LastQuarter = k.LastQuarter
			rec.TopWeekday = k.TopWeekday
		}

		if pr, ok := prefs[c.Email]; ok {
			if pr.HasInvoiceA {
				rec.HasInvoiceA = constants.YesAccent
			}
			if pr.OrderHistory != "" {
				rec.OrderHistory = pr.OrderHistory
			}
			if pr.HasItems {
				rec.TopCategory = pr.TopCategory
				rec.CategoryList = pr.CategoryList
				rec.TopBrand = pr.TopBrand
				rec.BrandList = pr.BrandList
				unique := pr.UniqueProducts
				rec.UniqueProducts = &unique
				rec.FavoriteSKU = pr.FavoriteSKU
				rec.FavoriteName = pr.FavoriteName
				qty := pr.FavoriteQty
				rec.FavoriteQty = &qty
			}
		}

		records = append(records, rec)
	}
	return records
}
