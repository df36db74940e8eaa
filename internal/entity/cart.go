package entity

import "time"

// Cart is one abandoned shopping cart exported from the back office.
type Cart struct {
	Email    string
	Products string
	Quantity string
	Subtotal float64
	Created  time.Time
	Updated  time.Time
}
