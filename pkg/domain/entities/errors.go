package entities

import "fmt"

// ValidationError reports rejected input: a blank required field, a
// non-positive quantity, or an unparseable number. The triggering
// operation has no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// InsufficientStockError reports that fewer pieces are eligible than an
// order line requested. No allocation has taken place.
type InsufficientStockError struct {
	Product   string
	LengthM   int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%dm): requested %d, available %d",
		e.Product, e.LengthM, e.Requested, e.Available)
}

// OrderNotFoundError reports a reversal against an unknown order id
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found: %s", e.OrderID)
}

// AlreadyFinalizedError reports a reversal against an order that is
// already CANCELLED or RETURNED. Terminal orders cannot be reversed twice.
type AlreadyFinalizedError struct {
	OrderID string
	Current OrderStatus
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("order %s is already %s", e.OrderID, e.Current)
}

// DataIntegrityFault reports an anomalous piece reference found while
// reversing or removing: the piece id is missing from the stock table or
// the piece is in a state the operation does not expect. Faults are
// surfaced alongside the operation's result; they do not abort it.
type DataIntegrityFault struct {
	PieceID string
	Reason  string
}

func (e *DataIntegrityFault) Error() string {
	return fmt.Sprintf("data integrity fault for piece %s: %s", e.PieceID, e.Reason)
}

// ParseError reports a stored value that could not be decoded into its
// typed representation
type ParseError struct {
	Kind  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %s %q: %v", e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %s %q", e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
