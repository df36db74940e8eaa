package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/carts"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

const (
	rfmSheet  = "RFM"
	cartSheet = "Carritos"
)

// Service produces XLSX bytes for the RFM and abandoned-cart tables.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) with one sheet per
// table. The cart sheet is omitted when there are no carts.
func (s *Service) BuildWorkbook(runID uuid.UUID, records []*entity.RFMRecord, scored []*carts.ScoredCart) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rfmSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	if err := writeSheet(f, rfmSheet, constants.RFMColumns, rows); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(rfmSheet, "A", "B", 28) // name, email
	_ = f.SetColWidth(rfmSheet, "AF", "AF", 60) // order history

	if len(scored) > 0 {
		if _, err := f.NewSheet(cartSheet); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}
		cartRows := make([][]string, 0, len(scored))
		for _, c := range scored {
			cartRows = append(cartRows, c.Row())
		}
		if err := writeSheet(f, cartSheet, constants.CartColumns, cartRows); err != nil {
			return nil, err
		}
		_ = f.SetColWidth(cartSheet, "A", "B", 28) // email, products
	}

	index, _ := f.GetSheetIndex(rfmSheet)
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", runID.String(),
		"rfm_rows", len(records),
		"cart_rows", len(scored),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile builds the workbook and writes it to path.
func (s *Service) WriteFile(path string, runID uuid.UUID, records []*entity.RFMRecord, scored []*carts.ScoredCart) error {
	b, err := s.BuildWorkbook(runID, records, scored)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("export.file.ok", "path", path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
