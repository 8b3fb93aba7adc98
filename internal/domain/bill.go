package domain

import (
	"math"
	"time"
)

// Unit is the unit of measure a line item is sold in.
type Unit string

const (
	UnitWeight Unit = "kg"
	UnitDozen  Unit = "dozen"
	UnitPiece  Unit = "piece"
)

// ValidUnit reports whether u is one of the known units of measure.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitWeight, UnitDozen, UnitPiece:
		return true
	}
	return false
}

// Fruits is the fixed pick list offered by the shop.
var Fruits = []string{
	"Apple", "Banana", "Orange", "Mango", "Grapes", "Pomegranate",
	"Papaya", "Pineapple", "Watermelon", "Kiwi", "Strawberry", "Guava",
}

// LineItem is a single purchased item on a bill. Amount is always derived
// from quantity and rate; it is never set independently.
type LineItem struct {
	ID       string  `json:"id"`
	Product  string  `json:"product"`
	Unit     Unit    `json:"unit"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Bill is an immutable, finalized invoice. It is constructed only by the
// billing assembler; editing a past bill means drafting a new ledger.
type Bill struct {
	ID             string     `json:"id"`
	BillNumber     string     `json:"billNumber"`
	CustomerName   string     `json:"customerName"`
	CustomerMobile string     `json:"customerMobile"`
	Items          []LineItem `json:"items"`
	TotalAmount    float64    `json:"totalAmount"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// BusinessProfile is the fixed header block printed on every bill.
type BusinessProfile struct {
	Name    string
	Address string
	Phone   string
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
