package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus represents the lifecycle state of a stock piece
type StockStatus int

const (
	InStock StockStatus = iota
	Sold
	Removed
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case InStock:
		return "IN_STOCK"
	case Sold:
		return "SOLD"
	case Removed:
		return "REMOVED"
	default:
		return "Unknown"
	}
}

// ParseStockStatus parses the stored representation of a stock status
func ParseStockStatus(s string) (StockStatus, error) {
	switch s {
	case "IN_STOCK":
		return InStock, nil
	case "SOLD":
		return Sold, nil
	case "REMOVED":
		return Removed, nil
	default:
		return InStock, fmt.Errorf("invalid stock status: %s (expected: IN_STOCK, SOLD, or REMOVED)", s)
	}
}

// CatalogLengths lists the strip lengths normally carried. The catalog is
// advisory: pieces with other positive lengths are accepted.
var CatalogLengths = []int{5, 10, 15, 20, 30}

// StockPiece represents one saleable physical unit, tracked individually.
// A piece is never deleted: it moves IN_STOCK -> SOLD (and back on
// cancellation/return) or IN_STOCK -> REMOVED, which is terminal.
type StockPiece struct {
	PieceID     string
	ProductName string
	LengthM     int
	DateAdded   time.Time
	SellerPrice decimal.Decimal
	UnitCost    decimal.Decimal
	Profit      decimal.Decimal
	Status      StockStatus
	SoldDate    *time.Time
	OrderID     string
}

// NewStockPiece creates a validated StockPiece in the IN_STOCK state
func NewStockPiece(pieceID, productName string, lengthM int, dateAdded time.Time, sellerPrice, unitCost decimal.Decimal) (*StockPiece, error) {
	if pieceID == "" {
		return nil, fmt.Errorf("piece id cannot be empty")
	}
	if productName == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if lengthM <= 0 {
		return nil, fmt.Errorf("length must be positive, got %d", lengthM)
	}
	if sellerPrice.IsNegative() {
		return nil, fmt.Errorf("seller price cannot be negative, got %s", sellerPrice)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}

	return &StockPiece{
		PieceID:     pieceID,
		ProductName: productName,
		LengthM:     lengthM,
		DateAdded:   dateAdded,
		SellerPrice: sellerPrice,
		UnitCost:    unitCost,
		Profit:      sellerPrice.Sub(unitCost),
		Status:      InStock,
	}, nil
}

// Eligible reports whether the piece can be allocated for the given
// product and length
func (p *StockPiece) Eligible(product string, lengthM int) bool {
	return p.ProductName == product && p.LengthM == lengthM && p.Status == InStock
}

// MarkSold transitions the piece to SOLD for the given order. A price
// override permanently rewrites the piece's seller price and profit.
func (p *StockPiece) MarkSold(orderID string, soldDate time.Time, priceOverride *decimal.Decimal) error {
	if p.Status != InStock {
		return fmt.Errorf("piece %s is not in stock (status %s)", p.PieceID, p.Status)
	}
	if orderID == "" {
		return fmt.Errorf("order id cannot be empty")
	}

	if priceOverride != nil {
		p.SellerPrice = *priceOverride
		p.Profit = priceOverride.Sub(p.UnitCost)
	}
	p.Status = Sold
	d := soldDate
	p.SoldDate = &d
	p.OrderID = orderID
	return nil
}

// Restock returns a SOLD piece to IN_STOCK, clearing its sale fields.
// Price overrides applied at sale time are not reverted.
func (p *StockPiece) Restock() error {
	if p.Status == Removed {
		return fmt.Errorf("piece %s is removed and cannot be restocked", p.PieceID)
	}
	p.Status = InStock
	p.SoldDate = nil
	p.OrderID = ""
	return nil
}

// Remove marks an IN_STOCK piece as REMOVED. The transition is terminal.
func (p *StockPiece) Remove() error {
	if p.Status != InStock {
		return fmt.Errorf("piece %s is not in stock (status %s)", p.PieceID, p.Status)
	}
	p.Status = Removed
	p.SoldDate = nil
	p.OrderID = ""
	return nil
}

// Validate checks the piece's structural invariants: order id and sold
// date are set if and only if the piece is SOLD
func (p *StockPiece) Validate() error {
	if p.PieceID == "" {
		return fmt.Errorf("piece id cannot be empty")
	}
	switch p.Status {
	case Sold:
		if p.OrderID == "" {
			return fmt.Errorf("piece %s is SOLD but has no order id", p.PieceID)
		}
		if p.SoldDate == nil {
			return fmt.Errorf("piece %s is SOLD but has no sold date", p.PieceID)
		}
	default:
		if p.OrderID != "" {
			return fmt.Errorf("piece %s is %s but references order %s", p.PieceID, p.Status, p.OrderID)
		}
		if p.SoldDate != nil {
			return fmt.Errorf("piece %s is %s but has a sold date", p.PieceID, p.Status)
		}
	}
	return nil
}

// MintPieceID builds a piece identifier in the stored format
// <product>_<length>m_<seq>
func MintPieceID(product string, lengthM, seq int) string {
	return fmt.Sprintf("%s_%dm_%d", product, lengthM, seq)
}
