package carts

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mvaldes-ar/rfm-insights/internal/common"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// requiredColumns are the cart export columns the loader needs.
var requiredColumns = []string{"Email", "Products", "Quantity", "Subtotal", "Created", "Updated"}

// timestampLayouts are tried in order when parsing cart timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads an abandoned-cart export file.
func LoadCSV(path string) ([]entity.Cart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.WrapError(err, "open carts file")
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV decodes abandoned carts from a column-name-addressed CSV
// stream. Emails are lower-cased, dollar signs and thousands commas are
// stripped from subtotals, and unparseable timestamps degrade to the
// zero time.
func ReadCSV(r io.Reader) ([]entity.Cart, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, common.WrapError(err, "read carts header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, &common.MissingFieldError{Dataset: "carts", Field: c}
		}
	}

	var carts []entity.Cart
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.WrapError(err, "read carts row")
		}
		field := func(name string) string {
			i := cols[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		carts = append(carts, entity.Cart{
			Email:    utils.CleanEmail(field("Email")),
			Products: field("Products"),
			Quantity: field("Quantity"),
			Subtotal: parseSubtotal(field("Subtotal")),
			Created:  parseTimestamp(field("Created")),
			Updated:  parseTimestamp(field("Updated")),
		})
	}
	return carts, nil
}

// parseSubtotal cleans currency decorations from a cart subtotal
// ("$1,234.56" -> 1234.56).
func parseSubtotal(s string) float64 {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
