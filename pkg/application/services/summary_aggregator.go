package services

import (
	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// Summary is the full rollup over a filtered stock set and a filtered
// order set. Revenue, cost and profit figures for orders count ACTIVE
// lines only; CANCELLED and RETURNED lines contribute to their counts
// and rates but not to money totals.
type Summary struct {
	// Stock rollup
	InStockCount   int
	SoldCount      int
	RemovedCount   int
	StockCost      decimal.Decimal
	StockValue     decimal.Decimal
	StockProfit    decimal.Decimal
	StockProfitPct decimal.Decimal

	// Order rollup (ACTIVE lines only for money figures)
	TotalOrders     int
	ActiveOrders    int
	CancelledOrders int
	ReturnedOrders  int
	Revenue         decimal.Decimal
	OrderCost       decimal.Decimal
	OrderProfit     decimal.Decimal
	OrderProfitPct  decimal.Decimal

	// Derived business metrics
	InventoryTurnover decimal.Decimal
	CancellationRate  decimal.Decimal
	ReturnRate        decimal.Decimal
	SuccessRate       decimal.Decimal
}

// StockTotals is the footer rollup of a filtered stock view
type StockTotals struct {
	Count     int
	SellValue decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
	ProfitPct decimal.Decimal
}

// OrderTotals is the footer rollup of a filtered order view
type OrderTotals struct {
	TotalPrice decimal.Decimal
	TotalQty   int
}

// SummaryAggregator computes read-side rollups. It is pure: it never
// touches a repository and never mutates its inputs.
type SummaryAggregator struct{}

// NewSummaryAggregator creates a new aggregator
func NewSummaryAggregator() *SummaryAggregator {
	return &SummaryAggregator{}
}

// Summarize computes the full business rollup. Every ratio guards its
// denominator and yields zero rather than an error or a special float.
func (a *SummaryAggregator) Summarize(stock []entities.StockPiece, orders []entities.OrderLine) *Summary {
	s := &Summary{
		StockCost:   decimal.Zero,
		StockValue:  decimal.Zero,
		Revenue:     decimal.Zero,
		OrderCost:   decimal.Zero,
		OrderProfit: decimal.Zero,
	}

	for _, p := range stock {
		switch p.Status {
		case entities.InStock:
			s.InStockCount++
		case entities.Sold:
			s.SoldCount++
		case entities.Removed:
			s.RemovedCount++
		}
		s.StockCost = s.StockCost.Add(p.UnitCost)
		s.StockValue = s.StockValue.Add(p.SellerPrice)
	}
	s.StockProfit = s.StockValue.Sub(s.StockCost)
	s.StockProfitPct = percentOf(s.StockProfit, s.StockCost)

	for _, l := range orders {
		s.TotalOrders++
		switch l.Status {
		case entities.OrderActive:
			s.ActiveOrders++
			s.Revenue = s.Revenue.Add(l.TotalSellerPrice)
			s.OrderCost = s.OrderCost.Add(l.TotalUnitCost)
			s.OrderProfit = s.OrderProfit.Add(l.ProfitTotal)
		case entities.OrderCancelled:
			s.CancelledOrders++
		case entities.OrderReturned:
			s.ReturnedOrders++
		}
	}
	s.OrderProfitPct = percentOf(s.OrderProfit, s.OrderCost)
	s.InventoryTurnover = ratioOf(s.Revenue, s.StockValue)

	totalOrders := decimal.NewFromInt(int64(s.TotalOrders))
	s.CancellationRate = percentOf(decimal.NewFromInt(int64(s.CancelledOrders)), totalOrders)
	s.ReturnRate = percentOf(decimal.NewFromInt(int64(s.ReturnedOrders)), totalOrders)
	if s.TotalOrders > 0 {
		s.SuccessRate = hundred.Sub(s.CancellationRate).Sub(s.ReturnRate)
	} else {
		s.SuccessRate = decimal.Zero
	}

	return s
}

// StockTotals computes the footer rollup of a filtered stock view
func (a *SummaryAggregator) StockTotals(stock []entities.StockPiece) *StockTotals {
	t := &StockTotals{SellValue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
	for _, p := range stock {
		t.Count++
		t.SellValue = t.SellValue.Add(p.SellerPrice)
		t.Cost = t.Cost.Add(p.UnitCost)
		t.Profit = t.Profit.Add(p.Profit)
	}
	t.ProfitPct = percentOf(t.Profit, t.Cost)
	return t
}

// OrderTotals computes the footer rollup of a filtered order view
func (a *SummaryAggregator) OrderTotals(orders []entities.OrderLine) *OrderTotals {
	t := &OrderTotals{TotalPrice: decimal.Zero}
	for _, l := range orders {
		t.TotalPrice = t.TotalPrice.Add(l.TotalSellerPrice)
		t.TotalQty += l.Qty
	}
	return t
}

// percentOf returns num/den*100, or zero when the denominator is zero
func percentOf(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred)
}

// ratioOf returns num/den, or zero when the denominator is zero
func ratioOf(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
