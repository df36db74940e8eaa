package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/carts"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
)

func TestBuildWorkbook(t *testing.T) {
	svc := NewService(nil)

	records := []*entity.RFMRecord{{
		Name:        "Ana Gomez",
		Email:       "ana@x.com",
		ID:          "7",
		LTVTotal:    1_100_000,
		Frequency:   2,
		RecencyDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		HasInvoiceA: "Sí",
	}}
	scored := []*carts.ScoredCart{{
		Cart: entity.Cart{Email: "ana@x.com", Products: "Porcelanato", Quantity: "2", Subtotal: 350000},
	}}

	b, err := svc.BuildWorkbook(uuid.New(), records, scored)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"RFM", "Carritos"}, f.GetSheetList())

	rows, err := f.GetRows("RFM")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, constants.RFMColumns, rows[0][:len(constants.RFMColumns)])
	assert.Equal(t, "Ana Gomez", rows[1][0])
	assert.Equal(t, "1.100.000,00", rows[1][10])

	cartRows, err := f.GetRows("Carritos")
	require.NoError(t, err)
	require.Len(t, cartRows, 2)
	assert.Equal(t, "ana@x.com", cartRows[1][0])
	assert.Equal(t, "350.000,00", cartRows[1][3])
}

func TestBuildWorkbookSkipsEmptyCartSheet(t *testing.T) {
	svc := NewService(nil)

	b, err := svc.BuildWorkbook(uuid.New(), nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"RFM"}, f.GetSheetList())
}
