package constants

// OrderStatus is the canonical order status in the back office.
type OrderStatus string

// Stable values (the back office stores these exact strings).
const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusComplete   OrderStatus = "complete"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusClosed     OrderStatus = "closed"
)

// EligibleStatus is the only status that counts toward RFM aggregation.
const EligibleStatus = OrderStatusProcessing

// InvoiceALabel is the payment-method substring that marks a
// preferential invoice. Matched case-insensitively.
const InvoiceALabel = "Factura A"
