package rfm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// Preferences holds per-customer purchase preference signals.
type Preferences struct {
	TopCategory    string
	CategoryList   string
	TopBrand       string
	BrandList      string
	UniqueProducts int
	FavoriteSKU    string
	FavoriteName   string
	FavoriteQty    float64
	OrderHistory   string
	HasInvoiceA    bool

	// HasItems is false for customers that appear in the order set but
	// have no order lines; their item-derived fields are unset.
	HasItems bool
}

// qtySum tracks a grouped quantity sum and the row position where the
// group key first appeared.
type qtySum struct {
	qty      float64
	firstRow int
}

// argmaxFirst returns the key with the maximum summed quantity. Ties
// resolve to the key whose first occurrence has the smallest row
// position, so identical input always yields the same preference.
func argmaxFirst(sums map[string]*qtySum) (string, float64) {
	var bestKey string
	var best *qtySum
	for k, s := range sums {
		if best == nil ||
			s.qty > best.qty ||
			(s.qty == best.qty && s.firstRow < best.firstRow) {
			bestKey, best = k, s
		}
	}
	if best == nil {
		return "", 0
	}
	return bestKey, best.qty
}

type customerItems struct {
	cats      map[string]*qtySum
	brands    map[string]*qtySum
	skus      map[string]*qtySum
	catList   []string
	brandList []string
}

func newCustomerItems() *customerItems {
	return &customerItems{
		cats:   make(map[string]*qtySum),
		brands: make(map[string]*qtySum),
		skus:   make(map[string]*qtySum),
	}
}

func (c *customerItems) add(key string, sums map[string]*qtySum, qty float64, row int) {
	s, ok := sums[key]
	if !ok {
		s = &qtySum{firstRow: row}
		sums[key] = s
	}
	s.qty += qty
}

// AnalyzePreferences joins order items to the catalog by normalized SKU
// (left join: unmatched SKUs get empty category and brand) and derives
// preferred category, brand and product per customer, plus the order
// history summary and the preferential-invoice flag from the order set.
func AnalyzePreferences(items []entity.OrderItem, catalog []entity.CatalogEntry, orders []entity.Order) map[string]*Preferences {
	byCatalogSKU := make(map[string]entity.CatalogEntry, len(catalog))
	for _, c := range catalog {
		byCatalogSKU[utils.NormalizeSKU(c.SKU)] = c
	}

	agg := make(map[string]*customerItems)
	for row, it := range items {
		email := utils.CleanEmail(it.CustomerEmail)
		if email == "" {
			continue
		}
		ci, ok := agg[email]
		if !ok {
			ci = newCustomerItems()
			agg[email] = ci
		}

		sku := utils.NormalizeSKU(it.SKU)
		cat, brand := "", ""
		if entry, ok := byCatalogSKU[sku]; ok {
			cat, brand = entry.Categories, entry.Brand
		}
		category := utils.CleanCategory(cat)
		if brand == "" {
			brand = constants.NoBrand
		}

		if _, seen := ci.cats[category]; !seen {
			ci.catList = append(ci.catList, category)
		}
		if _, seen := ci.brands[brand]; !seen {
			ci.brandList = append(ci.brandList, brand)
		}
		ci.add(category, ci.cats, it.Quantity, row)
		ci.add(brand, ci.brands, it.Quantity, row)
		ci.add(sku, ci.skus, it.Quantity, row)
	}

	prefs := make(map[string]*Preferences, len(agg))
	for email, ci := range agg {
		p := &Preferences{HasItems: true}
		p.TopCategory, _ = argmaxFirst(ci.cats)
		p.TopBrand, _ = argmaxFirst(ci.brands)
		p.FavoriteSKU, p.FavoriteQty = argmaxFirst(ci.skus)
		p.CategoryList = strings.Join(ci.catList, ", ")
		p.BrandList = strings.Join(ci.brandList, ", ")
		p.UniqueProducts = len(ci.skus)

		p.FavoriteName = constants.NotAvail
		if entry, ok := byCatalogSKU[p.FavoriteSKU]; ok && entry.Name != "" {
			p.FavoriteName = entry.Name
		}
		prefs[email] = p
	}

	attachOrderSignals(prefs, orders)
	return prefs
}

// attachOrderSignals adds the order-history summary and the invoice
// flag, creating entries for customers with orders but no items.
func attachOrderSignals(prefs map[string]*Preferences, orders []entity.Order) {
	recent := make([]entity.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PurchaseDate.After(recent[j].PurchaseDate)
	})

	history := make(map[string][]string)
	for _, o := range recent {
		line := fmt.Sprintf("%s (%s %s)", o.ID, utils.FormatCommaDecimal(o.GrandTotal), o.Status)
		history[o.CustomerEmail] = append(history[o.CustomerEmail], line)
	}

	for _, o := range orders {
		p, ok := prefs[o.CustomerEmail]
		if !ok {
			p = &Preferences{}
			prefs[o.CustomerEmail] = p
		}
		if strings.Contains(strings.ToLower(o.PaymentMethod), strings.ToLower(constants.InvoiceALabel)) {
			p.HasInvoiceA = true
		}
	}
	for email, lines := range history {
		prefs[email].OrderHistory = strings.Join(lines, "; ")
	}
}
