package entity

import (
	"strconv"
	"time"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// RFMRecord is one output row of the RFM pipeline: customer identity,
// RFM metrics, supplementary KPIs and purchase preferences, one row per
// customer with at least one eligible order.
//
// Numeric fields stay typed so the marketing scorer can consume them
// directly; Row renders the localized presentation values.
type RFMRecord struct {
	Name          string
	Email         string
	ID            string
	CustomerSince time.Time
	Phone         string
	PostalCode    string
	IsLocalRegion string
	TaxVATNumber  string
	VATNumber     string
	HasInvoiceA   string

	LTVTotal         float64
	AvgMonthlyTicket float64
	AvgOrderValue    float64
	MaxOrderValue    float64
	MinOrderValue    float64
	Frequency        int
	RecencyDate      time.Time
	RecencyDays      int
	AvgDaysBetween   *float64 // nil when the customer has fewer than 2 orders
	FirstPurchase    time.Time
	DaysAsCustomer   int

	LastQuarter string
	TopWeekday  string

	TopCategory    string
	CategoryList   string
	TopBrand       string
	BrandList      string
	UniqueProducts *int
	FavoriteSKU    string
	FavoriteName   string
	FavoriteQty    *float64
	OrderHistory   string
}

// Row renders the record in the fixed column order of
// constants.RFMColumns, with localized dates and currency values.
func (r *RFMRecord) Row() []string {
	return []string{
		r.Name,
		r.Email,
		r.ID,
		utils.FormatDateDMY(r.CustomerSince),
		r.Phone,
		r.PostalCode,
		r.IsLocalRegion,
		r.TaxVATNumber,
		r.VATNumber,
		r.HasInvoiceA,
		utils.FormatCommaDecimal(r.LTVTotal),
		utils.FormatCommaDecimal(r.AvgMonthlyTicket),
		utils.FormatCommaDecimal(r.AvgOrderValue),
		utils.FormatCommaDecimal(r.MaxOrderValue),
		utils.FormatCommaDecimal(r.MinOrderValue),
		strconv.Itoa(r.Frequency),
		utils.FormatDateDMY(r.RecencyDate),
		strconv.Itoa(r.RecencyDays),
		floatOrNA(r.AvgDaysBetween),
		utils.FormatDateDMY(r.FirstPurchase),
		strconv.Itoa(r.DaysAsCustomer),
		r.LastQuarter,
		r.TopWeekday,
		r.TopCategory,
		r.CategoryList,
		r.TopBrand,
		r.BrandList,
		intOrNA(r.UniqueProducts),
		r.FavoriteSKU,
		r.FavoriteName,
		qtyOrNA(r.FavoriteQty),
		r.OrderHistory,
	}
}

func floatOrNA(v *float64) string {
	if v == nil {
		return constants.NotAvail
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func intOrNA(v *int) string {
	if v == nil {
		return constants.NotAvail
	}
	return strconv.Itoa(*v)
}

func qtyOrNA(v *float64) string {
	if v == nil {
		return constants.NotAvail
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
