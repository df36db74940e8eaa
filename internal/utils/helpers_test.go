package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSKU(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric short is zero padded", "123", "00123"},
		{"numeric with inner space", "12 34", "01234"},
		{"numeric at width passes through", "12345", "12345"},
		{"numeric over width passes through", "1234567", "1234567"},
		{"alphanumeric keeps case", "AB-123", "AB-123"},
		{"surrounding whitespace stripped", "  987  ", "00987"},
		{"empty stays empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSKU(tt.in))
		})
	}
}

func TestCleanEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", CleanEmail("  Ana@Example.COM "))
}

func TestCleanCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nested path takes leaf", "Root/Pisos/Porcelanato", "Porcelanato"},
		{"comma list takes last entry", "Pisos, Griferia", "Griferia"},
		{"comma then nested", "Root/Banos, Root/Pisos/Ceramica", "Ceramica"},
		{"plain category untouched", "Sanitarios", "Sanitarios"},
		{"empty falls back", "  ", "Sin Categoria"},
		{"trailing slash falls back", "Root/", "Sin Categoria"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCategory(tt.in))
		})
	}
}

func TestFormatCommaDecimal(t *testing.T) {
	assert.Equal(t, "1.234,56", FormatCommaDecimal(1234.56))
	assert.Equal(t, "1.100.000,00", FormatCommaDecimal(1100000))
	assert.Equal(t, "0,00", FormatCommaDecimal(0))
	assert.Equal(t, "999,99", FormatCommaDecimal(999.99))
	assert.Equal(t, "-12.500,50", FormatCommaDecimal(-12500.5))
	assert.Equal(t, "0,00", FormatCommaDecimal(math.NaN()))
	assert.Equal(t, "0,00", FormatCommaDecimal(math.Inf(1)))
}

func TestParseCommaDecimal(t *testing.T) {
	assert.InDelta(t, 1234.56, ParseCommaDecimal("1.234,56"), 1e-9)
	assert.InDelta(t, 1100000, ParseCommaDecimal("1.100.000,00"), 1e-9)
	assert.InDelta(t, 42.5, ParseCommaDecimal("42.5"), 1e-9)
	assert.Zero(t, ParseCommaDecimal(""))
	assert.Zero(t, ParseCommaDecimal("N/A"))
	assert.Zero(t, ParseCommaDecimal("abc"))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 999.99, 1234.56, 1100000, 98765432.1} {
		got := ParseCommaDecimal(FormatCommaDecimal(v))
		assert.InDelta(t, v, got, 0.005, "value %v", v)
	}
}

func TestParseDate(t *testing.T) {
	got := ParseDate("2024-03-15 10:22:01")
	require.False(t, got.IsZero())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), ParseDate("2023-12-01"))
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("15/03/2024").IsZero())
}

func TestFormatDateDMY(t *testing.T) {
	assert.Equal(t, "15/03/2024", FormatDateDMY(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "N/A", FormatDateDMY(time.Time{}))
}

func TestQuarterLabel(t *testing.T) {
	assert.Equal(t, "2024-Q1", QuarterLabel(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-Q4", QuarterLabel(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "N/A", QuarterLabel(time.Time{}))
}

func TestWholeDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 9, WholeDays(now, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, WholeDays(now, now))
}
