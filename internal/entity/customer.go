package entity

import "time"

// Address is one entry in a raw customer's address book.
type Address struct {
	Telephone string `json:"telephone"`
	Postcode  string `json:"postcode"`
}

// RawCustomer is a customer record as the back office returns it,
// before field extraction.
type RawCustomer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Addresses []Address `json:"addresses"`
	TaxVAT    string    `json:"taxvat"`
	CreatedAt string    `json:"created_at"`
}

// Customer is the canonical customer snapshot used downstream.
// Derived fields are filled by the extractor; the raw record is never
// mutated.
type Customer struct {
	ID            string
	Email         string // lower-cased, canonical join key
	Name          string
	Phone         string
	PostalCode    string
	IsLocalRegion string // "Si" / "No"
	TaxVATNumber  string
	VATNumber     string
	CreatedAt     time.Time // zero when unparseable
}
