package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes-ar/rfm-insights/internal/common"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileSourceCustomers(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "customers.json", `[
		{"id": 7, "email": "Ana@Example.com", "firstname": "Ana", "lastname": "Gomez",
		 "taxvat": "27-11111111-3", "created_at": "2023-01-15 09:30:00",
		 "addresses": [{"telephone": "291-555-0101", "postcode": "8000"}]}
	]`)

	customers, err := NewFileSource(dir, nil).Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, int64(7), customers[0].ID)
	assert.Equal(t, "Ana@Example.com", customers[0].Email)
	require.Len(t, customers[0].Addresses, 1)
	assert.Equal(t, "8000", customers[0].Addresses[0].Postcode)
}

func TestFileSourceCustomersShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	// record without the required email field
	writeDataset(t, dir, "customers.json", `[{"id": 7}]`)

	_, err := NewFileSource(dir, nil).Customers(context.Background())
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestFileSourceOrders(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "orders.json", `[
		{"entity_id": 100, "customer_email": "ana@x.com", "created_at": "2024-03-01 10:00:00",
		 "grand_total": 500000.0, "status": "processing", "payment_method": "Factura A"},
		{"entity_id": "101", "customer_email": "ana@x.com", "created_at": "2024-05-10 11:00:00",
		 "grand_total": 600000.0, "status": "processing"}
	]`)

	orders, err := NewFileSource(dir, nil).Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "100", orders[0].ID)
	assert.Equal(t, "101", orders[1].ID, "string entity ids pass through")
	assert.Equal(t, 2024, orders[0].PurchaseDate.Year())
	assert.Equal(t, "Factura A", orders[0].PaymentMethod)
}

func TestFileSourceItems(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "order_items.json", `[
		{"order_id": 100, "customer_email": "ana@x.com", "sku": "123",
		 "qty_ordered": 3, "qty_invoiced": 2, "row_total": 300.0, "product_type": "simple"},
		{"order_id": 100, "customer_email": "ana@x.com", "sku": "CONF-1",
		 "qty_ordered": 1, "product_type": "configurable", "parent_item_id": null},
		{"order_id": 100, "customer_email": "ana@x.com", "sku": "456",
		 "qty_ordered": 5, "qty_invoiced": null, "product_type": "simple"}
	]`)

	items, err := NewFileSource(dir, nil).Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "parentless configurable rows are dropped")

	assert.Equal(t, "123", items[0].SKU)
	assert.InDelta(t, 2, items[0].Quantity, 1e-9, "invoiced quantity wins")
	assert.Equal(t, "456", items[1].SKU)
	assert.InDelta(t, 5, items[1].Quantity, 1e-9, "null invoiced falls back to ordered")
}

func TestFileSourceCatalog(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "catalog.json", `[
		{"sku": "00123", "product_name": "Porcelanato Beige", "categories": "Root/Pisos/Porcelanato", "brand": "Alberdi"}
	]`)

	catalog, err := NewFileSource(dir, nil).Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Porcelanato Beige", catalog[0].Name)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(t.TempDir(), nil).Orders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
