package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mvaldes-ar/rfm-insights/constants"
)

// skuWidth is the zero-padded width for numeric SKUs.
const skuWidth = 5

// NormalizeSKU strips whitespace from a SKU and zero-pads numeric ones
// to a fixed width. Non-numeric SKUs pass through with whitespace
// removed. Both sides of any item/catalog join must go through this.
func NormalizeSKU(sku string) string {
	s := strings.ReplaceAll(strings.TrimSpace(sku), " ", "")
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return s
	}
	if len(s) < skuWidth {
		s = strings.Repeat("0", skuWidth-len(s)) + s
	}
	return s
}

// CleanEmail lower-cases and trims an email for use as a join key.
func CleanEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CleanCategory extracts the most specific category from a full path.
// Paths are comma-separated and each segment may be "/"-nested: the
// last segment after both splits wins.
func CleanCategory(path string) string {
	if strings.TrimSpace(path) == "" {
		return constants.NoCategory
	}
	parts := strings.Split(path, ",")
	last := parts[len(parts)-1]
	nested := strings.Split(last, "/")
	cleaned := strings.TrimSpace(nested[len(nested)-1])
	if cleaned == "" {
		return constants.NoCategory
	}
	return cleaned
}

// FormatDateDMY renders a date as DD/MM/YYYY, or "N/A" for the zero value.
func FormatDateDMY(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvail
	}
	return t.Format("02/01/2006")
}

// FormatCommaDecimal renders a number in Argentine convention:
// thousands separated by dots, decimals by a comma (1234.56 -> "1.234,56").
// NaN and infinities render as "0,00".
func FormatCommaDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0,00"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}

// ParseCommaDecimal parses an Argentine-format number string back to a
// float ("1.234,56" -> 1234.56). Plain float strings also parse.
// Returns 0 when the value is empty or unparseable.
func ParseCommaDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == constants.NotAvail {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDate parses a back-office timestamp, keeping only the date part.
// Accepts "2006-01-02" with or without a trailing time component.
// Returns the zero time when unparseable.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		s = s[:idx]
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// QuarterLabel formats a date's calendar quarter as "YYYY-Qn".
func QuarterLabel(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvail
	}
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// WholeDays returns the number of whole days from then to now.
func WholeDays(now, then time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}
