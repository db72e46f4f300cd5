package services

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/infrastructure/repositories/memory"
)

var testClock = time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*OrderLifecycleManager, *memory.StockRepository, *memory.OrderRepository) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	stocks := memory.NewStockRepository()
	orders := memory.NewOrderRepository()
	manager := NewOrderLifecycleManager(stocks, orders, log)
	manager.now = func() time.Time { return testClock }
	return manager, stocks, orders
}

func seedStock(t *testing.T, m *OrderLifecycleManager, product string, lengthM, qty int, cost, price int64) {
	t.Helper()
	_, err := m.AddStock(AddStockRequest{
		Product:     product,
		LengthM:     lengthM,
		Qty:         qty,
		UnitCost:    decimal.NewFromInt(cost),
		SellerPrice: decimal.NewFromInt(price),
	})
	require.NoError(t, err)
}

func testCustomer() entities.Customer {
	return entities.Customer{
		Name:    "Nimal Perera",
		Address: "12 Galle Road",
		Phone1:  "0771234567",
		City:    "Colombo",
	}
}

func TestPlaceOrder(t *testing.T) {
	manager, stocks, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	result, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 2}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.OrderID, "ORD_20260305143000_"))
	assert.True(t, result.OrderDate.Equal(testClock))
	require.Len(t, result.Lines, 1)
	assert.Equal(t, []string{"COB_5m_1", "COB_5m_2"}, result.Lines[0].PieceIDs)
	assert.True(t, result.OrderTotal.Equal(decimal.NewFromInt(3600)))

	// stock table: first two pieces SOLD with the order's id and date
	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	for i := 0; i < 2; i++ {
		assert.Equal(t, entities.Sold, pieces[i].Status)
		assert.Equal(t, result.OrderID, pieces[i].OrderID)
		require.NotNil(t, pieces[i].SoldDate)
		assert.True(t, pieces[i].SoldDate.Equal(testClock))
	}
	assert.Equal(t, entities.InStock, pieces[2].Status)

	// order table: one ACTIVE line matching the allocation
	lines, err := orders.LoadAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, result.OrderID, lines[0].OrderID)
	assert.Equal(t, entities.OrderActive, lines[0].Status)
	assert.Equal(t, 2, lines[0].Qty)
	assert.NoError(t, lines[0].Validate())
}

func TestPlaceOrder_MultiLineSharedStock(t *testing.T) {
	manager, _, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	result, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines: []entities.DraftLine{
			{Product: "COB", LengthM: 5, Qty: 2},
			{Product: "COB", LengthM: 5, Qty: 1},
		},
	})
	require.NoError(t, err)

	// a later line never re-selects pieces reserved by an earlier one
	require.Len(t, result.Lines, 2)
	assert.Equal(t, []string{"COB_5m_1", "COB_5m_2"}, result.Lines[0].PieceIDs)
	assert.Equal(t, []string{"COB_5m_3"}, result.Lines[1].PieceIDs)

	lines, err := orders.LoadAll()
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, lines[0].OrderID, lines[1].OrderID)
}

func TestPlaceOrder_AllOrNothing(t *testing.T) {
	manager, stocks, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	_, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines: []entities.DraftLine{
			{Product: "COB", LengthM: 5, Qty: 2},
			{Product: "COB", LengthM: 5, Qty: 2},
		},
	})
	require.Error(t, err)

	var insufficient *entities.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Requested)
	assert.Equal(t, 1, insufficient.Available)

	// nothing persisted: the first line's allocation was discarded too
	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	for i := range pieces {
		assert.Equal(t, entities.InStock, pieces[i].Status)
	}
	lines, err := orders.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft func() entities.OrderDraft
	}{
		{"missing customer name", func() entities.OrderDraft {
			c := testCustomer()
			c.Name = ""
			return entities.OrderDraft{Customer: c, Lines: []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 1}}}
		}},
		{"missing phone", func() entities.OrderDraft {
			c := testCustomer()
			c.Phone1 = ""
			return entities.OrderDraft{Customer: c, Lines: []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 1}}}
		}},
		{"no lines", func() entities.OrderDraft {
			return entities.OrderDraft{Customer: testCustomer()}
		}},
		{"zero qty", func() entities.OrderDraft {
			return entities.OrderDraft{Customer: testCustomer(), Lines: []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 0}}}
		}},
		{"zero length", func() entities.OrderDraft {
			return entities.OrderDraft{Customer: testCustomer(), Lines: []entities.DraftLine{{Product: "COB", LengthM: 0, Qty: 1}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, stocks, _ := newTestManager(t)
			seedStock(t, manager, "COB", 5, 2, 1200, 1800)

			_, err := manager.PlaceOrder(tt.draft())
			require.Error(t, err)

			var verr *entities.ValidationError
			assert.True(t, errors.As(err, &verr))

			pieces, err := stocks.LoadAll()
			require.NoError(t, err)
			for i := range pieces {
				assert.Equal(t, entities.InStock, pieces[i].Status)
			}
		})
	}
}

func TestReverseOrder(t *testing.T) {
	manager, stocks, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 2, 1200, 1800)

	placed, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 2}},
	})
	require.NoError(t, err)

	reversal, err := manager.ReverseOrder(placed.OrderID, entities.OrderReturned)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderReturned, reversal.NewStatus)
	assert.ElementsMatch(t, placed.Lines[0].PieceIDs, reversal.RestockedPieceIDs)
	assert.Empty(t, reversal.Faults)

	// pieces back in stock with sale fields cleared
	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	for i := range pieces {
		assert.Equal(t, entities.InStock, pieces[i].Status)
		assert.Empty(t, pieces[i].OrderID)
		assert.Nil(t, pieces[i].SoldDate)
	}

	// line keeps its totals for reporting; only the status changed
	lines, err := orders.LoadAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, entities.OrderReturned, lines[0].Status)
	assert.True(t, lines[0].TotalSellerPrice.Equal(decimal.NewFromInt(3600)))
	assert.Equal(t, placed.Lines[0].PieceIDs, lines[0].AllocatedPieceIDs)
}

func TestReverseOrder_AlreadyFinalized(t *testing.T) {
	manager, _, _ := newTestManager(t)
	seedStock(t, manager, "COB", 5, 1, 1200, 1800)

	placed, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 1}},
	})
	require.NoError(t, err)

	_, err = manager.ReverseOrder(placed.OrderID, entities.OrderCancelled)
	require.NoError(t, err)

	_, err = manager.ReverseOrder(placed.OrderID, entities.OrderReturned)
	require.Error(t, err)

	var finalized *entities.AlreadyFinalizedError
	require.True(t, errors.As(err, &finalized))
	assert.Equal(t, placed.OrderID, finalized.OrderID)
	assert.Equal(t, entities.OrderCancelled, finalized.Current)
}

func TestReverseOrder_NotFound(t *testing.T) {
	manager, _, _ := newTestManager(t)

	_, err := manager.ReverseOrder("ORD_missing", entities.OrderCancelled)
	require.Error(t, err)

	var notFound *entities.OrderNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestReverseOrder_NonTerminalStatus(t *testing.T) {
	manager, _, _ := newTestManager(t)

	_, err := manager.ReverseOrder("ORD_1", entities.OrderActive)
	require.Error(t, err)

	var verr *entities.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestReverseOrder_DataIntegrityFaults(t *testing.T) {
	manager, stocks, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	placed, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 3}},
	})
	require.NoError(t, err)

	// corrupt the stock table behind the manager's back: one piece
	// vanishes, one turns up REMOVED
	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	pieces[1].Status = entities.Removed
	pieces[1].OrderID = ""
	pieces[1].SoldDate = nil
	require.NoError(t, stocks.UpsertAll(pieces[1:]))

	reversal, err := manager.ReverseOrder(placed.OrderID, entities.OrderCancelled)
	require.NoError(t, err)

	assert.Equal(t, []string{"COB_5m_3"}, reversal.RestockedPieceIDs)
	require.Len(t, reversal.Faults, 2)
	reasons := []string{reversal.Faults[0].Reason, reversal.Faults[1].Reason}
	assert.Contains(t, reasons, "not found in stock table")
	assert.Contains(t, reasons, "piece is REMOVED")

	// the reversal still completed
	lines, err := orders.LoadAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, entities.OrderCancelled, lines[0].Status)
}

func TestCancelThenReorderReallocatesPieces(t *testing.T) {
	manager, _, _ := newTestManager(t)
	seedStock(t, manager, "COB", 5, 2, 1200, 1800)

	first, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 2}},
	})
	require.NoError(t, err)

	_, err = manager.ReverseOrder(first.OrderID, entities.OrderCancelled)
	require.NoError(t, err)

	second, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 2}},
	})
	require.NoError(t, err)

	// restocked pieces are selectable again, in the same stored order
	assert.Equal(t, first.Lines[0].PieceIDs, second.Lines[0].PieceIDs)
	assert.NotEqual(t, first.OrderID, second.OrderID)
}

func TestReturnedOrderContributesNothingToRevenue(t *testing.T) {
	manager, stocks, orders := newTestManager(t)
	seedStock(t, manager, "COB", 5, 2, 100, 150)

	placed, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 2}},
	})
	require.NoError(t, err)

	_, err = manager.ReverseOrder(placed.OrderID, entities.OrderReturned)
	require.NoError(t, err)

	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	lines, err := orders.LoadAll()
	require.NoError(t, err)

	summary := NewSummaryAggregator().Summarize(pieces, lines)
	assert.Equal(t, 2, summary.InStockCount)
	assert.Equal(t, 0, summary.SoldCount)
	assert.Equal(t, 0, summary.ActiveOrders)
	assert.Equal(t, 1, summary.ReturnedOrders)
	assert.True(t, summary.Revenue.IsZero())
	assert.True(t, summary.OrderProfit.IsZero())
}

func TestAddStock(t *testing.T) {
	manager, stocks, _ := newTestManager(t)

	minted, err := manager.AddStock(AddStockRequest{
		Product:     "COB",
		LengthM:     5,
		Qty:         2,
		UnitCost:    decimal.NewFromInt(1200),
		SellerPrice: decimal.NewFromInt(1800),
	})
	require.NoError(t, err)
	require.Len(t, minted, 2)
	assert.Equal(t, "COB_5m_1", minted[0].PieceID)
	assert.Equal(t, "COB_5m_2", minted[1].PieceID)

	// the sequence continues from the table size, across products
	minted, err = manager.AddStock(AddStockRequest{
		Product:     "Neon",
		LengthM:     10,
		Qty:         1,
		UnitCost:    decimal.NewFromInt(2000),
		SellerPrice: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Neon_10m_3", minted[0].PieceID)

	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	assert.Len(t, pieces, 3)
	for i := range pieces {
		assert.True(t, pieces[i].DateAdded.Equal(testClock))
		assert.NoError(t, pieces[i].Validate())
	}
}

func TestAddStock_Validation(t *testing.T) {
	manager, _, _ := newTestManager(t)

	tests := []struct {
		name string
		req  AddStockRequest
	}{
		{"empty product", AddStockRequest{LengthM: 5, Qty: 1}},
		{"zero length", AddStockRequest{Product: "COB", Qty: 1}},
		{"zero qty", AddStockRequest{Product: "COB", LengthM: 5}},
		{"negative cost", AddStockRequest{Product: "COB", LengthM: 5, Qty: 1, UnitCost: decimal.NewFromInt(-1)}},
		{"negative price", AddStockRequest{Product: "COB", LengthM: 5, Qty: 1, SellerPrice: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.AddStock(tt.req)
			require.Error(t, err)

			var verr *entities.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestRemoveStock(t *testing.T) {
	manager, stocks, _ := newTestManager(t)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	_, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: testCustomer(),
		Lines:    []entities.DraftLine{{Product: "COB", LengthM: 5, Qty: 1}},
	})
	require.NoError(t, err)

	result, err := manager.RemoveStock([]string{"COB_5m_2", "COB_5m_1", "COB_5m_99"})
	require.NoError(t, err)

	assert.Equal(t, []string{"COB_5m_2"}, result.RemovedPieceIDs)
	require.Len(t, result.Skipped, 2)

	pieces, err := stocks.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, entities.Sold, pieces[0].Status)
	assert.Equal(t, entities.Removed, pieces[1].Status)
	assert.Equal(t, entities.InStock, pieces[2].Status)
}

func TestProductNamesAndAvailability(t *testing.T) {
	manager, _, _ := newTestManager(t)
	seedStock(t, manager, "Neon", 10, 2, 2000, 2500)
	seedStock(t, manager, "COB", 5, 3, 1200, 1800)

	names, err := manager.ProductNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"COB", "Neon"}, names)

	count, err := manager.Availability("COB", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	table, err := manager.AvailabilityTable()
	require.NoError(t, err)
	assert.Equal(t, map[string]map[int]int{
		"Neon": {10: 2},
		"COB":  {5: 3},
	}, table)
}
