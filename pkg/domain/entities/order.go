package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderActive OrderStatus = iota
	OrderCancelled
	OrderReturned
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case OrderActive:
		return "ACTIVE"
	case OrderCancelled:
		return "CANCELLED"
	case OrderReturned:
		return "RETURNED"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the status is a final one
func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderReturned
}

// ParseOrderStatus parses the stored representation of an order status
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "ACTIVE":
		return OrderActive, nil
	case "CANCELLED":
		return OrderCancelled, nil
	case "RETURNED":
		return OrderReturned, nil
	default:
		return OrderActive, fmt.Errorf("invalid order status: %s (expected: ACTIVE, CANCELLED, or RETURNED)", s)
	}
}

// Customer holds the contact details recorded with an order. Phone2 is
// the only optional field.
type Customer struct {
	Name    string `validate:"required"`
	Address string `validate:"required"`
	Phone1  string `validate:"required"`
	Phone2  string
	City    string `validate:"required"`
}

// OrderLine represents one (order, product-line) row. All lines of one
// placement share an order id, order date and customer. The line holds
// the allocated piece identifiers by reference; it never owns pieces.
type OrderLine struct {
	OrderID           string
	OrderDate         time.Time
	Customer          Customer
	ItemName          string
	LengthM           int
	Qty               int
	TotalUnitCost     decimal.Decimal
	TotalSellerPrice  decimal.Decimal
	ProfitTotal       decimal.Decimal
	AllocatedPieceIDs []string
	Status            OrderStatus
}

// Validate checks the line's structural invariants
func (l *OrderLine) Validate() error {
	if l.OrderID == "" {
		return fmt.Errorf("order id cannot be empty")
	}
	if l.Qty <= 0 {
		return fmt.Errorf("order %s: quantity must be positive, got %d", l.OrderID, l.Qty)
	}
	if len(l.AllocatedPieceIDs) != l.Qty {
		return fmt.Errorf("order %s: %d allocated pieces for quantity %d", l.OrderID, len(l.AllocatedPieceIDs), l.Qty)
	}
	return nil
}

// JoinPieceIDs serializes allocated piece identifiers for storage
func JoinPieceIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// SplitPieceIDs parses the stored comma-separated piece identifier list
func SplitPieceIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
