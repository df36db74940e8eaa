package entity

import "time"

// Order is a back-office order header.
type Order struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	PurchaseDate  time.Time `json:"purchase_date"`
	GrandTotal    float64   `json:"grand_total"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
}

// OrderItem is one order line, keyed by order, customer and SKU.
// Quantity is the invoiced quantity when present, the ordered quantity
// otherwise.
type OrderItem struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	SKU           string  `json:"sku"`
	Quantity      float64 `json:"quantity"`
	RowTotal      float64 `json:"row_total"`
}

// CatalogEntry is one product catalog row.
type CatalogEntry struct {
	SKU        string `json:"sku"`
	Name       string `json:"product_name"`
	Categories string `json:"categories"` // comma-separated, "/"-nested path
	Brand      string `json:"brand"`
}
