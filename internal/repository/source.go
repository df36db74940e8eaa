package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

// psql builds queries with Postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresSource reads the four input record sets from the back-office
// mirror database. It implements ingest.Source.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresSource(pool *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{pool: pool, logger: logger}
}

func (s *PostgresSource) Customers(ctx context.Context) ([]entity.RawCustomer, error) {
	query, args, err := psql.
		Select("id", "email", "COALESCE(firstname, '')", "COALESCE(lastname, '')", "COALESCE(taxvat, '')", "created_at").
		From("customers").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query customers", "error", err)
		return nil, err
	}
	defer rows.Close()

	var customers []entity.RawCustomer
	index := make(map[int64]int)
	for rows.Next() {
		var (
			c         entity.RawCustomer
			createdAt time.Time
		)
		if err := rows.Scan(&c.ID, &c.Email, &c.Firstname, &c.Lastname, &c.TaxVAT, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		index[c.ID] = len(customers)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachAddresses(ctx, customers, index); err != nil {
		return nil, err
	}
	s.logger.Debug("customers fetched", "count", len(customers))
	return customers, nil
}

func (s *PostgresSource) attachAddresses(ctx context.Context, customers []entity.RawCustomer, index map[int64]int) error {
	query, args, err := psql.
		Select("customer_id", "COALESCE(telephone, '')", "COALESCE(postcode, '')").
		From("customer_addresses").
		OrderBy("customer_id", "id").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query addresses", "error", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			customerID int64
			addr       entity.Address
		)
		if err := rows.Scan(&customerID, &addr.Telephone, &addr.Postcode); err != nil {
			return err
		}
		if i, ok := index[customerID]; ok {
			customers[i].Addresses = append(customers[i].Addresses, addr)
		}
	}
	return rows.Err()
}

func (s *PostgresSource) Orders(ctx context.Context) ([]entity.Order, error) {
	query, args, err := psql.
		Select("entity_id", "customer_email", "created_at", "grand_total", "status", "COALESCE(payment_method, '')").
		From("orders").
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query orders", "error", err)
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var (
			o  entity.Order
			id int64
		)
		if err := rows.Scan(&id, &o.CustomerEmail, &o.PurchaseDate, &o.GrandTotal, &o.Status, &o.PaymentMethod); err != nil {
			return nil, err
		}
		o.ID = strconv.FormatInt(id, 10)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("orders fetched", "count", len(orders))
	return orders, nil
}

func (s *PostgresSource) Items(ctx context.Context) ([]entity.OrderItem, error) {
	// Configurable lines without a parent duplicate their child rows;
	// the invoiced quantity wins over the ordered one when present.
	query, args, err := psql.
		Select("order_id", "customer_email", "sku", "COALESCE(qty_invoiced, qty_ordered)", "row_total").
		From("order_items").
		Where("NOT (product_type = 'configurable' AND parent_item_id IS NULL)").
		OrderBy("order_id", "item_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query order items", "error", err)
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var (
			it      entity.OrderItem
			orderID int64
		)
		if err := rows.Scan(&orderID, &it.CustomerEmail, &it.SKU, &it.Quantity, &it.RowTotal); err != nil {
			return nil, err
		}
		it.OrderID = strconv.FormatInt(orderID, 10)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("order items fetched", "count", len(items))
	return items, nil
}

func (s *PostgresSource) Catalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	query, args, err := psql.
		Select("sku", "COALESCE(product_name, '')", "COALESCE(categories, '')", "COALESCE(brand, '')").
		From("catalog").
		OrderBy("sku").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query catalog", "error", err)
		return nil, err
	}
	defer rows.Close()

	var catalog []entity.CatalogEntry
	for rows.Next() {
		var c entity.CatalogEntry
		if err := rows.Scan(&c.SKU, &c.Name, &c.Categories, &c.Brand); err != nil {
			return nil, err
		}
		catalog = append(catalog, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("catalog fetched", "count", len(catalog))
	return catalog, nil
}
