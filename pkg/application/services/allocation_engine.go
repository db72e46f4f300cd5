package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

// LineAllocation is the result of allocating one order line: the chosen
// pieces and the totals computed from them.
type LineAllocation struct {
	Product          string
	LengthM          int
	Qty              int
	UnitPrice        decimal.Decimal
	TotalUnitCost    decimal.Decimal
	TotalSellerPrice decimal.Decimal
	ProfitTotal      decimal.Decimal
	PieceIDs         []string
}

// AllocationEngine selects eligible stock pieces for order lines. It
// operates on an in-memory snapshot of the stock table owned by the
// caller; the caller decides whether the mutated snapshot is persisted.
type AllocationEngine struct{}

// NewAllocationEngine creates a new allocation engine
func NewAllocationEngine() *AllocationEngine {
	return &AllocationEngine{}
}

// Available counts pieces eligible for the given product and length
func (e *AllocationEngine) Available(pieces []entities.StockPiece, product string, lengthM int) int {
	count := 0
	for i := range pieces {
		if pieces[i].Eligible(product, lengthM) {
			count++
		}
	}
	return count
}

// Allocate reserves exactly line.Qty pieces for an order line, first
// available in stored order (FIFO). On success the selected pieces in
// the snapshot are marked SOLD with the order's id and date, so later
// lines of the same order cannot re-select them. If fewer than line.Qty
// pieces are eligible the snapshot is untouched and an
// InsufficientStockError is returned.
//
// The line's unit price is the first selected piece's seller price
// unless the line carries a price override; the override permanently
// rewrites each selected piece's seller price and profit.
func (e *AllocationEngine) Allocate(pieces []entities.StockPiece, line entities.DraftLine, orderID string, orderDate time.Time) (*LineAllocation, error) {
	var selected []int
	for i := range pieces {
		if !pieces[i].Eligible(line.Product, line.LengthM) {
			continue
		}
		selected = append(selected, i)
		if len(selected) == line.Qty {
			break
		}
	}

	if len(selected) < line.Qty {
		return nil, &entities.InsufficientStockError{
			Product:   line.Product,
			LengthM:   line.LengthM,
			Requested: line.Qty,
			Available: len(selected),
		}
	}

	unitPrice := pieces[selected[0]].SellerPrice
	if line.PriceOverride != nil {
		unitPrice = *line.PriceOverride
	}

	totalCost := decimal.Zero
	pieceIDs := make([]string, 0, line.Qty)
	for _, i := range selected {
		totalCost = totalCost.Add(pieces[i].UnitCost)
		if err := pieces[i].MarkSold(orderID, orderDate, line.PriceOverride); err != nil {
			return nil, err
		}
		pieceIDs = append(pieceIDs, pieces[i].PieceID)
	}

	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(line.Qty)))

	return &LineAllocation{
		Product:          line.Product,
		LengthM:          line.LengthM,
		Qty:              line.Qty,
		UnitPrice:        unitPrice,
		TotalUnitCost:    totalCost,
		TotalSellerPrice: totalPrice,
		ProfitTotal:      totalPrice.Sub(totalCost),
		PieceIDs:         pieceIDs,
	}, nil
}
