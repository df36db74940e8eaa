package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/ingest"
)

// Dataset names inside a snapshot database.
const (
	datasetCustomers = "customers"
	datasetOrders    = "orders"
	datasetItems     = "order_items"
	datasetCatalog   = "catalog"
)

// ErrStaleSnapshot is returned when a dataset is older than the TTL.
var ErrStaleSnapshot = errors.New("snapshot is stale")

// SnapshotStore caches the four input record sets in a local SQLite
// file so a run can be repeated offline. Each dataset is stored as one
// JSON payload with its fetch timestamp; reads through the Source
// methods enforce the TTL. It implements ingest.Source.
type SnapshotStore struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger
}

// OpenSnapshot opens (and initializes) a snapshot database at path.
func OpenSnapshot(path string, ttl time.Duration, logger *slog.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	s := &SnapshotStore{db: db, ttl: ttl, logger: logger}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SnapshotStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			dataset    TEXT PRIMARY KEY,
			fetched_at TIMESTAMP NOT NULL,
			payload    BLOB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("init snapshot schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Refresh pulls all four datasets from src and stores them.
func (s *SnapshotStore) Refresh(ctx context.Context, src ingest.Source) error {
	customers, err := src.Customers(ctx)
	if err != nil {
		return err
	}
	orders, err := src.Orders(ctx)
	if err != nil {
		return err
	}
	items, err := src.Items(ctx)
	if err != nil {
		return err
	}
	catalog, err := src.Catalog(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for dataset, v := range map[string]any{
		datasetCustomers: customers,
		datasetOrders:    orders,
		datasetItems:     items,
		datasetCatalog:   catalog,
	} {
		if err := s.put(ctx, dataset, now, v); err != nil {
			return err
		}
	}
	s.logger.Info("snapshot refreshed",
		"customers", len(customers),
		"orders", len(orders),
		"items", len(items),
		"catalog", len(catalog),
	)
	return nil
}

func (s *SnapshotStore) put(ctx context.Context, dataset string, fetchedAt time.Time, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", dataset, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (dataset, fetched_at, payload) VALUES (?, ?, ?)
		ON CONFLICT(dataset) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`,
		dataset, fetchedAt, payload)
	if err != nil {
		return fmt.Errorf("store %s snapshot: %w", dataset, err)
	}
	return nil
}

func (s *SnapshotStore) get(ctx context.Context, dataset string, out any) error {
	var (
		fetchedAt time.Time
		payload   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM snapshots WHERE dataset = ?`, dataset).
		Scan(&fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("dataset %s: %w", dataset, ErrStaleSnapshot)
	}
	if err != nil {
		return fmt.Errorf("load %s snapshot: %w", dataset, err)
	}
	if s.ttl > 0 && time.Since(fetchedAt) > s.ttl {
		return fmt.Errorf("dataset %s fetched %s ago: %w", dataset, time.Since(fetchedAt).Round(time.Minute), ErrStaleSnapshot)
	}
	return json.Unmarshal(payload, out)
}

func (s *SnapshotStore) Customers(ctx context.Context) ([]entity.RawCustomer, error) {
	var customers []entity.RawCustomer
	if err := s.get(ctx, datasetCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *SnapshotStore) Orders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := s.get(ctx, datasetOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *SnapshotStore) Items(ctx context.Context) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	if err := s.get(ctx, datasetItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SnapshotStore) Catalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	var catalog []entity.CatalogEntry
	if err := s.get(ctx, datasetCatalog, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
