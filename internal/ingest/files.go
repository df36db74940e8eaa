package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mvaldes-ar/rfm-insights/internal/common"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// Default file names inside a snapshot directory.
const (
	customersFile = "customers.json"
	ordersFile    = "orders.json"
	itemsFile     = "order_items.json"
	catalogFile   = "catalog.json"
)

// FileSource reads the four input record sets from JSON files exported
// from the back office. Every file is schema-validated before decoding.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{dir: dir, logger: logger}
}

func (s *FileSource) load(name string, schema map[string]any, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return common.WrapError(err, "read "+name)
	}
	if err := validateJSONAgainstSchema(schema, data); err != nil {
		return common.NewAppError("INVALID_INPUT", "input shape mismatch in "+name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return common.WrapError(err, "decode "+name)
	}
	s.logger.Debug("dataset loaded", "file", path)
	return nil
}

func (s *FileSource) Customers(_ context.Context) ([]entity.RawCustomer, error) {
	var customers []entity.RawCustomer
	if err := s.load(customersFile, customerSchema, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// rawOrder mirrors the back-office order payload; purchase timestamps
// arrive as "YYYY-MM-DD HH:MM:SS" strings.
type rawOrder struct {
	EntityID      json.Number `json:"entity_id"`
	CustomerEmail string      `json:"customer_email"`
	CreatedAt     string      `json:"created_at"`
	GrandTotal    float64     `json:"grand_total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
}

func (s *FileSource) Orders(_ context.Context) ([]entity.Order, error) {
	var raw []rawOrder
	if err := s.load(ordersFile, orderSchema, &raw); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, entity.Order{
			ID:            r.EntityID.String(),
			CustomerEmail: r.CustomerEmail,
			PurchaseDate:  utils.ParseDate(r.CreatedAt),
			GrandTotal:    r.GrandTotal,
			Status:        r.Status,
			PaymentMethod: r.PaymentMethod,
		})
	}
	return orders, nil
}

// rawItem mirrors the back-office order-line payload.
type rawItem struct {
	OrderID       json.Number `json:"order_id"`
	CustomerEmail string      `json:"customer_email"`
	SKU           string      `json:"sku"`
	QtyOrdered    float64     `json:"qty_ordered"`
	QtyInvoiced   *float64    `json:"qty_invoiced"`
	RowTotal      float64     `json:"row_total"`
	ProductType   string      `json:"product_type"`
	ParentItemID  *int64      `json:"parent_item_id"`
}

// normalizeItems maps raw order lines to order items. Configurable
// items without a parent reference duplicate their child rows and are
// dropped; the invoiced quantity wins over the ordered one when the
// back office reports it.
func normalizeItems(raw []rawItem) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(raw))
	for _, r := range raw {
		if r.ProductType == "configurable" && r.ParentItemID == nil {
			continue
		}
		qty := r.QtyOrdered
		if r.QtyInvoiced != nil {
			qty = *r.QtyInvoiced
		}
		items = append(items, entity.OrderItem{
			OrderID:       r.OrderID.String(),
			CustomerEmail: r.CustomerEmail,
			SKU:           r.SKU,
			Quantity:      qty,
			RowTotal:      r.RowTotal,
		})
	}
	return items
}

func (s *FileSource) Items(_ context.Context) ([]entity.OrderItem, error) {
	var raw []rawItem
	if err := s.load(itemsFile, itemSchema, &raw); err != nil {
		return nil, err
	}
	return normalizeItems(raw), nil
}

func (s *FileSource) Catalog(_ context.Context) ([]entity.CatalogEntry, error) {
	var catalog []entity.CatalogEntry
	if err := s.load(catalogFile, catalogSchema, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
