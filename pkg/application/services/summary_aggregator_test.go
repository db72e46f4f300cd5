package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

func soldPiece(t *testing.T, id string, price, cost int64, orderID string) entities.StockPiece {
	t.Helper()
	p := testPiece(t, id, "COB", 5, price, cost)
	require.NoError(t, p.MarkSold(orderID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), nil))
	return p
}

func orderLine(id string, status entities.OrderStatus, price, cost int64, qty int) entities.OrderLine {
	ids := make([]string, qty)
	for i := range ids {
		ids[i] = "p"
	}
	return entities.OrderLine{
		OrderID:           id,
		OrderDate:         time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		ItemName:          "COB",
		LengthM:           5,
		Qty:               qty,
		TotalSellerPrice:  decimal.NewFromInt(price),
		TotalUnitCost:     decimal.NewFromInt(cost),
		ProfitTotal:       decimal.NewFromInt(price - cost),
		AllocatedPieceIDs: ids,
		Status:            status,
	}
}

func TestSummarize_EmptyInputsYieldZeroes(t *testing.T) {
	s := NewSummaryAggregator().Summarize(nil, nil)

	assert.Equal(t, 0, s.TotalOrders)
	assert.True(t, s.StockProfitPct.IsZero())
	assert.True(t, s.OrderProfitPct.IsZero())
	assert.True(t, s.InventoryTurnover.IsZero())
	assert.True(t, s.CancellationRate.IsZero())
	assert.True(t, s.ReturnRate.IsZero())
	assert.True(t, s.SuccessRate.IsZero())
}

func TestSummarize(t *testing.T) {
	stock := []entities.StockPiece{
		testPiece(t, "COB_5m_1", "COB", 5, 1800, 1200),
		soldPiece(t, "COB_5m_2", 1800, 1200, "ORD_1"),
	}
	removed := testPiece(t, "COB_5m_3", "COB", 5, 1800, 1200)
	require.NoError(t, removed.Remove())
	stock = append(stock, removed)

	orders := []entities.OrderLine{
		orderLine("ORD_1", entities.OrderActive, 1800, 1200, 1),
		orderLine("ORD_2", entities.OrderCancelled, 3600, 2400, 2),
		orderLine("ORD_3", entities.OrderReturned, 1800, 1200, 1),
		orderLine("ORD_4", entities.OrderActive, 1800, 1200, 1),
	}

	s := NewSummaryAggregator().Summarize(stock, orders)

	assert.Equal(t, 1, s.InStockCount)
	assert.Equal(t, 1, s.SoldCount)
	assert.Equal(t, 1, s.RemovedCount)
	assert.True(t, s.StockCost.Equal(decimal.NewFromInt(3600)))
	assert.True(t, s.StockValue.Equal(decimal.NewFromInt(5400)))
	assert.True(t, s.StockProfit.Equal(decimal.NewFromInt(1800)))
	assert.True(t, s.StockProfitPct.Equal(decimal.NewFromInt(50)))

	// money figures count ACTIVE lines only
	assert.Equal(t, 4, s.TotalOrders)
	assert.Equal(t, 2, s.ActiveOrders)
	assert.Equal(t, 1, s.CancelledOrders)
	assert.Equal(t, 1, s.ReturnedOrders)
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(3600)))
	assert.True(t, s.OrderCost.Equal(decimal.NewFromInt(2400)))
	assert.True(t, s.OrderProfit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, s.OrderProfitPct.Equal(decimal.NewFromInt(50)))

	assert.True(t, s.CancellationRate.Equal(decimal.NewFromInt(25)))
	assert.True(t, s.ReturnRate.Equal(decimal.NewFromInt(25)))
	assert.True(t, s.SuccessRate.Equal(decimal.NewFromInt(50)))
}

func TestStockTotals(t *testing.T) {
	stock := []entities.StockPiece{
		testPiece(t, "COB_5m_1", "COB", 5, 1800, 1200),
		testPiece(t, "COB_5m_2", "COB", 5, 1800, 1200),
	}

	totals := NewSummaryAggregator().StockTotals(stock)
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.SellValue.Equal(decimal.NewFromInt(3600)))
	assert.True(t, totals.Cost.Equal(decimal.NewFromInt(2400)))
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, totals.ProfitPct.Equal(decimal.NewFromInt(50)))

	empty := NewSummaryAggregator().StockTotals(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.ProfitPct.IsZero())
}

func TestOrderTotals(t *testing.T) {
	orders := []entities.OrderLine{
		orderLine("ORD_1", entities.OrderActive, 1800, 1200, 1),
		orderLine("ORD_2", entities.OrderCancelled, 3600, 2400, 2),
	}

	totals := NewSummaryAggregator().OrderTotals(orders)
	assert.True(t, totals.TotalPrice.Equal(decimal.NewFromInt(5400)))
	assert.Equal(t, 3, totals.TotalQty)
}
