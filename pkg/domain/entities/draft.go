package entities

import "github.com/shopspring/decimal"

// DraftLine is one requested (product, length, quantity) line of a draft
// order. PriceOverride, when set, replaces the per-piece seller price for
// every piece allocated to this line.
type DraftLine struct {
	Product       string `validate:"required"`
	LengthM       int    `validate:"gt=0"`
	Qty           int    `validate:"gt=0"`
	PriceOverride *decimal.Decimal
}

// OrderDraft is the caller-owned value describing an order before
// placement. The engine holds no draft state between calls.
type OrderDraft struct {
	Customer Customer    `validate:"required"`
	Lines    []DraftLine `validate:"min=1,dive"`
}

// RequestedQty sums the quantities across all draft lines
func (d *OrderDraft) RequestedQty() int {
	total := 0
	for _, line := range d.Lines {
		total += line.Qty
	}
	return total
}
