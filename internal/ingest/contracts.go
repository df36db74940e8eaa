package ingest

import (
	"context"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

// Source supplies the four input record sets for one pipeline run.
// Implementations own retrieval; the pipeline core never performs I/O.
type Source interface {
	Customers(ctx context.Context) ([]entity.RawCustomer, error)
	Orders(ctx context.Context) ([]entity.Order, error)
	Items(ctx context.Context) ([]entity.OrderItem, error)
	Catalog(ctx context.Context) ([]entity.CatalogEntry, error)
}
