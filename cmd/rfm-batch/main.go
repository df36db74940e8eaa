package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldes-ar/rfm-insights/internal/carts"
	"github.com/mvaldes-ar/rfm-insights/internal/common"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/export"
	"github.com/mvaldes-ar/rfm-insights/internal/ingest"
	repo "github.com/mvaldes-ar/rfm-insights/internal/repository"
	"github.com/mvaldes-ar/rfm-insights/internal/rfm"
	"github.com/mvaldes-ar/rfm-insights/internal/scoring"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir      = flag.String("dir", "", "directory with back-office JSON exports (falls back to DB_URL when empty)")
		snapshot = flag.String("snapshot", "", "SQLite snapshot cache path (optional, defaults to SNAPSHOT_DB_PATH)")
		refresh  = flag.Bool("refresh", false, "force a snapshot refresh from the underlying source")
		year     = flag.Int("year", 0, "minimum order year, inclusive (defaults to RFM_MIN_YEAR)")
		sortKey  = flag.String("sort", "ltv", "output ordering: ltv, frequency, recency or ticket")
		cartsCSV = flag.String("carts", "", "abandoned carts CSV path (optional, defaults to CARTS_CSV_PATH)")
		out      = flag.String("out", "", "output XLSX file path (defaults to XLSX_OUT)")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration, flags win over environment
	cfg := common.LoadConfig()
	if *year != 0 {
		cfg.Pipeline.MinYear = *year
	}
	if *snapshot != "" {
		cfg.Pipeline.SnapshotPath = *snapshot
	}
	if *cartsCSV != "" {
		cfg.Pipeline.CartsPath = *cartsCSV
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.New()
	ctx = common.WithRunID(ctx, runID)
	logger = logger.With("run_id", runID)

	// Wire the input source: JSON directory, or the mirror database
	var base ingest.Source
	switch {
	case *dir != "":
		base = ingest.NewFileSource(*dir, logger)
	case cfg.Database.DSN != "":
		pool, err := repo.Open(ctx, repo.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer repo.Close(pool, logger)
		base = repo.NewPostgresSource(pool, logger)
	case cfg.Pipeline.SnapshotPath == "":
		printError("Error: no input source, pass --dir, set DB_URL, or point --snapshot at a warm cache\n")
		os.Exit(1)
	}

	src := base

	// An optional SQLite snapshot sits between the source and the
	// pipeline so repeated runs do not hit the back office.
	if cfg.Pipeline.SnapshotPath != "" {
		store, err := repo.OpenSnapshot(cfg.Pipeline.SnapshotPath, cfg.Pipeline.SnapshotTTL, logger)
		if err != nil {
			logger.Error("failed to open snapshot store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close snapshot store", "error", err)
			}
		}()
		if *refresh && base != nil {
			if err := store.Refresh(ctx, base); err != nil {
				logger.Error("failed to refresh snapshot", "error", err)
				os.Exit(1)
			}
		}
		src = store
	}

	customers, orders, items, catalog, err := loadInputs(ctx, src)
	if err != nil {
		// A stale snapshot is refreshed in place when a live source
		// is available, otherwise the run fails.
		if errors.Is(err, repo.ErrStaleSnapshot) {
			store, ok := src.(*repo.SnapshotStore)
			if !ok || base == nil {
				logger.Error("snapshot is stale and no live source is configured", "error", err)
				os.Exit(1)
			}
			logger.Info("snapshot stale, refreshing from source")
			if err := store.Refresh(ctx, base); err != nil {
				logger.Error("failed to refresh snapshot", "error", err)
				os.Exit(1)
			}
			customers, orders, items, catalog, err = loadInputs(ctx, src)
		}
		if err != nil {
			logger.Error("failed to load inputs", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("inputs loaded",
		"customers", len(customers),
		"orders", len(orders),
		"items", len(items),
		"catalog", len(catalog))

	// Run the pipeline with one reference time for the whole run
	processor := rfm.NewProcessor(cfg.Pipeline.MinYear, time.Now().UTC(), logger)
	records, err := processor.Process(ctx, customers, orders, catalog, items)
	if err != nil {
		logger.Error("rfm processing failed", "error", err)
		os.Exit(1)
	}
	rfm.SortRecords(records, rfm.SortKey(*sortKey))

	// Score abandoned carts when a CSV is configured
	scorer := scoring.NewScorer(scoring.ThresholdsFromConfig(cfg.Scoring))
	var scored []*carts.ScoredCart
	if cfg.Pipeline.CartsPath != "" {
		cartItems, err := carts.LoadCSV(cfg.Pipeline.CartsPath)
		if err != nil {
			logger.Error("failed to load carts CSV", "path", cfg.Pipeline.CartsPath, "error", err)
			os.Exit(1)
		}
		scored = carts.NewService(scorer, logger).Process(cartItems, records)
	}

	// Export to XLSX
	exportService := export.NewService(logger)
	if err := exportService.WriteFile(cfg.Output.Path, runID, records, scored); err != nil {
		logger.Error("failed to write output file", "path", cfg.Output.Path, "error", err)
		os.Exit(1)
	}

	logger.Info("batch run complete",
		"customers_in", len(customers),
		"records_out", len(records),
		"carts_scored", len(scored),
		"output_file", cfg.Output.Path)

	fmt.Printf("RFM run complete!\n")
	fmt.Printf("- Customers in: %d\n", len(customers))
	fmt.Printf("- Records out: %d\n", len(records))
	fmt.Printf("- Carts scored: %d\n", len(scored))
	fmt.Printf("- Output: %s\n", cfg.Output.Path)
}

func loadInputs(ctx context.Context, src ingest.Source) (
	[]entity.RawCustomer, []entity.Order, []entity.OrderItem, []entity.CatalogEntry, error,
) {
	customers, err := src.Customers(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	orders, err := src.Orders(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	items, err := src.Items(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	catalog, err := src.Catalog(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return customers, orders, items, catalog, nil
}
