package estimate

import (
	"math"
	"time"
)

type Status string

const (
	Draft    Status = "draft"
	Sent     Status = "sent"
	Accepted Status = "accepted"
	Declined Status = "declined"
)

func (s Status) IsValid() bool {
	switch s {
	case Draft, Sent, Accepted, Declined:
		return true
	}
	return false
}

type LineItem struct {
	Id          int64
	Description string
	Quantity    float64
	// UnitPriceCents keeps money integral; fractional cents only appear
	// transiently when a quantity is fractional.
	UnitPriceCents int64
	Position       int
}

func (l LineItem) TotalCents() int64 {
	return int64(math.Round(l.Quantity * float64(l.UnitPriceCents)))
}

type Estimate struct {
	Id        int64
	ProjectId int64
	Number    string
	Status    Status
	// TaxRate is a percentage, e.g. 8.25.
	TaxRate   float64
	LineItems []LineItem
	CreatedAt time.Time
}

// Totals are always derived from the line items, never stored or accepted
// from a client.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

func (e Estimate) Totals() Totals {
	var subtotal int64
	for _, item := range e.LineItems {
		subtotal += item.TotalCents()
	}
	tax := int64(math.Round(float64(subtotal) * e.TaxRate / 100))
	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}
}
