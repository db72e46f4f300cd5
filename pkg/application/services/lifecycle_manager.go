package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

// PlacementResult reports a successfully placed order
type PlacementResult struct {
	OrderID    string
	OrderDate  time.Time
	Lines      []LineAllocation
	OrderTotal decimal.Decimal
}

// ReversalResult reports a completed cancellation or return. Faults list
// the anomalous piece references encountered; the pieces in
// RestockedPieceIDs were restored despite them.
type ReversalResult struct {
	OrderID           string
	NewStatus         entities.OrderStatus
	RestockedPieceIDs []string
	Faults            []*entities.DataIntegrityFault
}

// RemovalResult reports a stock removal. Skipped lists pieces that were
// not IN_STOCK or not found; the rest were marked REMOVED.
type RemovalResult struct {
	RemovedPieceIDs []string
	Skipped         []*entities.DataIntegrityFault
}

// AddStockRequest describes one add-stock action, which mints Qty new
// pieces sharing the same product, length, prices and date added.
type AddStockRequest struct {
	Product     string `validate:"required"`
	LengthM     int    `validate:"gt=0"`
	Qty         int    `validate:"gt=0"`
	UnitCost    decimal.Decimal
	SellerPrice decimal.Decimal
}

// OrderLifecycleManager orchestrates order placement and reversal and
// the stock mutations that go with them. Every mutating operation is a
// single logical transaction: the relevant tables are loaded into a
// snapshot, mutated in memory, and written back once. A failure before
// write-back leaves both stores untouched.
//
// The manager serializes all mutating operations behind one mutex; the
// select-then-mark-sold sequence is not safe under interleaving.
type OrderLifecycleManager struct {
	stocks   repositories.StockRepository
	orders   repositories.OrderRepository
	engine   *AllocationEngine
	validate *validator.Validate
	log      *logrus.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewOrderLifecycleManager creates a manager over the given repositories.
// A nil logger falls back to the standard logrus logger.
func NewOrderLifecycleManager(stocks repositories.StockRepository, orders repositories.OrderRepository, log *logrus.Logger) *OrderLifecycleManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderLifecycleManager{
		stocks:   stocks,
		orders:   orders,
		engine:   NewAllocationEngine(),
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder allocates pieces for every line of the draft and commits the
// order atomically: if any line cannot be filled, nothing is persisted.
func (m *OrderLifecycleManager) PlaceOrder(draft entities.OrderDraft) (*PlacementResult, error) {
	if err := m.validateDraft(draft); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	lines, err := m.orders.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	orderDate := m.now()
	orderID := mintOrderID(orderDate)

	// Allocations mutate the snapshot line by line, so a later line of
	// this order cannot re-select pieces reserved by an earlier one. On
	// any failure the snapshot is discarded and nothing was written.
	allocations := make([]LineAllocation, 0, len(draft.Lines))
	orderTotal := decimal.Zero
	for _, line := range draft.Lines {
		alloc, err := m.engine.Allocate(pieces, line, orderID, orderDate)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, *alloc)
		orderTotal = orderTotal.Add(alloc.TotalSellerPrice)
	}

	for _, alloc := range allocations {
		lines = append(lines, entities.OrderLine{
			OrderID:           orderID,
			OrderDate:         orderDate,
			Customer:          draft.Customer,
			ItemName:          alloc.Product,
			LengthM:           alloc.LengthM,
			Qty:               alloc.Qty,
			TotalUnitCost:     alloc.TotalUnitCost,
			TotalSellerPrice:  alloc.TotalSellerPrice,
			ProfitTotal:       alloc.ProfitTotal,
			AllocatedPieceIDs: alloc.PieceIDs,
			Status:            entities.OrderActive,
		})
	}

	if err := m.stocks.UpsertAll(pieces); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}
	if err := m.orders.UpsertAll(lines); err != nil {
		return nil, fmt.Errorf("failed to persist orders: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"orderId": orderID,
		"lines":   len(allocations),
		"total":   orderTotal.String(),
	}).Info("order placed")

	return &PlacementResult{
		OrderID:    orderID,
		OrderDate:  orderDate,
		Lines:      allocations,
		OrderTotal: orderTotal,
	}, nil
}

// ReverseOrder cancels or returns an ACTIVE order, restoring every
// allocated piece to IN_STOCK. Line totals are kept for historical
// reporting; only the status changes. Anomalous piece references are
// logged and reported as faults while the rest of the reversal proceeds.
func (m *OrderLifecycleManager) ReverseOrder(orderID string, newStatus entities.OrderStatus) (*ReversalResult, error) {
	if !newStatus.Terminal() {
		return nil, &entities.ValidationError{Field: "status", Reason: fmt.Sprintf("reversal status must be CANCELLED or RETURNED, got %s", newStatus)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lines, err := m.orders.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	var orderLines []int
	for i := range lines {
		if lines[i].OrderID == orderID {
			orderLines = append(orderLines, i)
		}
	}
	if len(orderLines) == 0 {
		return nil, &entities.OrderNotFoundError{OrderID: orderID}
	}
	if current := lines[orderLines[0]].Status; current.Terminal() {
		return nil, &entities.AlreadyFinalizedError{OrderID: orderID, Current: current}
	}

	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	byID := make(map[string]int, len(pieces))
	for i := range pieces {
		byID[pieces[i].PieceID] = i
	}

	result := &ReversalResult{OrderID: orderID, NewStatus: newStatus}
	for _, li := range orderLines {
		for _, pieceID := range lines[li].AllocatedPieceIDs {
			pi, ok := byID[pieceID]
			if !ok {
				result.Faults = append(result.Faults, m.fault(orderID, pieceID, "not found in stock table"))
				continue
			}
			if pieces[pi].Status == entities.Removed {
				result.Faults = append(result.Faults, m.fault(orderID, pieceID, "piece is REMOVED"))
				continue
			}
			if err := pieces[pi].Restock(); err != nil {
				result.Faults = append(result.Faults, m.fault(orderID, pieceID, err.Error()))
				continue
			}
			result.RestockedPieceIDs = append(result.RestockedPieceIDs, pieceID)
		}
		lines[li].Status = newStatus
	}

	if err := m.stocks.UpsertAll(pieces); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}
	if err := m.orders.UpsertAll(lines); err != nil {
		return nil, fmt.Errorf("failed to persist orders: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"orderId":   orderID,
		"newStatus": newStatus.String(),
		"restocked": len(result.RestockedPieceIDs),
		"faults":    len(result.Faults),
	}).Info("order reversed")

	return result, nil
}

// AddStock mints req.Qty new IN_STOCK pieces and persists them. Piece
// identifiers continue the sequence from the current table size.
func (m *OrderLifecycleManager) AddStock(req AddStockRequest) ([]entities.StockPiece, error) {
	if err := m.validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}
	if req.UnitCost.IsNegative() {
		return nil, &entities.ValidationError{Field: "UnitCost", Reason: "cannot be negative"}
	}
	if req.SellerPrice.IsNegative() {
		return nil, &entities.ValidationError{Field: "SellerPrice", Reason: "cannot be negative"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	dateAdded := m.now()
	minted := make([]entities.StockPiece, 0, req.Qty)
	for i := 0; i < req.Qty; i++ {
		pieceID := entities.MintPieceID(req.Product, req.LengthM, len(pieces)+i+1)
		piece, err := entities.NewStockPiece(pieceID, req.Product, req.LengthM, dateAdded, req.SellerPrice, req.UnitCost)
		if err != nil {
			return nil, err
		}
		minted = append(minted, *piece)
	}

	pieces = append(pieces, minted...)
	if err := m.stocks.UpsertAll(pieces); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"product": req.Product,
		"lengthM": req.LengthM,
		"qty":     req.Qty,
	}).Info("stock added")

	return minted, nil
}

// RemoveStock marks the given IN_STOCK pieces as REMOVED. Pieces that are
// SOLD, already REMOVED, or unknown are skipped with a fault; the rest
// proceed. Nothing is ever physically deleted.
func (m *OrderLifecycleManager) RemoveStock(pieceIDs []string) (*RemovalResult, error) {
	if len(pieceIDs) == 0 {
		return nil, &entities.ValidationError{Field: "pieceIDs", Reason: "at least one piece id is required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	byID := make(map[string]int, len(pieces))
	for i := range pieces {
		byID[pieces[i].PieceID] = i
	}

	result := &RemovalResult{}
	for _, pieceID := range pieceIDs {
		pi, ok := byID[pieceID]
		if !ok {
			result.Skipped = append(result.Skipped, m.fault("", pieceID, "not found in stock table"))
			continue
		}
		if err := pieces[pi].Remove(); err != nil {
			result.Skipped = append(result.Skipped, m.fault("", pieceID, err.Error()))
			continue
		}
		result.RemovedPieceIDs = append(result.RemovedPieceIDs, pieceID)
	}

	if err := m.stocks.UpsertAll(pieces); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"removed": len(result.RemovedPieceIDs),
		"skipped": len(result.Skipped),
	}).Info("stock removed")

	return result, nil
}

// ProductNames returns the sorted distinct product names across stock
func (m *OrderLifecycleManager) ProductNames() ([]string, error) {
	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for i := range pieces {
		if !seen[pieces[i].ProductName] {
			seen[pieces[i].ProductName] = true
			names = append(names, pieces[i].ProductName)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Availability counts IN_STOCK pieces for the given product and length
func (m *OrderLifecycleManager) Availability(product string, lengthM int) (int, error) {
	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load stock: %w", err)
	}
	return m.engine.Available(pieces, product, lengthM), nil
}

// AvailabilityTable counts IN_STOCK pieces grouped by product and length
func (m *OrderLifecycleManager) AvailabilityTable() (map[string]map[int]int, error) {
	pieces, err := m.stocks.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	table := make(map[string]map[int]int)
	for i := range pieces {
		if pieces[i].Status != entities.InStock {
			continue
		}
		byLength, ok := table[pieces[i].ProductName]
		if !ok {
			byLength = make(map[int]int)
			table[pieces[i].ProductName] = byLength
		}
		byLength[pieces[i].LengthM]++
	}
	return table, nil
}

func (m *OrderLifecycleManager) validateDraft(draft entities.OrderDraft) error {
	if err := m.validate.Struct(draft); err != nil {
		return asValidationError(err)
	}
	return nil
}

func (m *OrderLifecycleManager) fault(orderID, pieceID, reason string) *entities.DataIntegrityFault {
	f := &entities.DataIntegrityFault{PieceID: pieceID, Reason: reason}
	m.log.WithFields(logrus.Fields{
		"orderId": orderID,
		"pieceId": pieceID,
		"reason":  reason,
	}).Warn("data integrity fault")
	return f
}

// mintOrderID builds an order identifier from the placement time plus a
// short random suffix, so two placements within the same second cannot
// collide.
func mintOrderID(at time.Time) string {
	return fmt.Sprintf("ORD_%s_%s", at.Format("20060102150405"), uuid.NewString()[:8])
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &entities.ValidationError{
			Field:  first.Namespace(),
			Reason: fmt.Sprintf("failed %q constraint", first.Tag()),
		}
	}
	return &entities.ValidationError{Reason: err.Error()}
}
