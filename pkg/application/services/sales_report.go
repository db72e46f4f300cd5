package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

// MonthlySales is one month's bucket of a sales report
type MonthlySales struct {
	Month     time.Month
	Sales     decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
	Qty       int
	ProfitPct decimal.Decimal
}

// SalesReport aggregates one year of ACTIVE order lines into monthly
// buckets, newest month first, plus a yearly total and a few insights.
type SalesReport struct {
	Year             int
	Product          string // empty = all products
	Months           []MonthlySales
	Yearly           MonthlySales
	BestMonth        *MonthlySales
	WorstMonth       *MonthlySales
	AvgMonthlyProfit decimal.Decimal
}

// BuildSalesReport computes the sales report for a year. Only ACTIVE
// lines count; an optional product narrows the selection. Months with no
// orders are omitted.
func (a *SummaryAggregator) BuildSalesReport(orders []entities.OrderLine, year int, product string) *SalesReport {
	report := &SalesReport{Year: year, Product: product}

	buckets := make(map[time.Month]*MonthlySales)
	for _, l := range orders {
		if l.Status != entities.OrderActive || l.OrderDate.Year() != year {
			continue
		}
		if product != "" && l.ItemName != product {
			continue
		}
		b, ok := buckets[l.OrderDate.Month()]
		if !ok {
			b = &MonthlySales{Month: l.OrderDate.Month(), Sales: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
			buckets[l.OrderDate.Month()] = b
		}
		b.Sales = b.Sales.Add(l.TotalSellerPrice)
		b.Cost = b.Cost.Add(l.TotalUnitCost)
		b.Profit = b.Profit.Add(l.ProfitTotal)
		b.Qty += l.Qty
	}

	if len(buckets) == 0 {
		return report
	}

	months := make([]MonthlySales, 0, len(buckets))
	for _, b := range buckets {
		b.ProfitPct = percentOf(b.Profit, b.Cost)
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month > months[j].Month
	})
	report.Months = months

	yearly := MonthlySales{Sales: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
	profitSum := decimal.Zero
	for i := range months {
		m := &months[i]
		yearly.Sales = yearly.Sales.Add(m.Sales)
		yearly.Cost = yearly.Cost.Add(m.Cost)
		yearly.Profit = yearly.Profit.Add(m.Profit)
		yearly.Qty += m.Qty
		profitSum = profitSum.Add(m.Profit)

		if report.BestMonth == nil || m.Profit.GreaterThan(report.BestMonth.Profit) {
			report.BestMonth = m
		}
		if report.WorstMonth == nil || m.Profit.LessThan(report.WorstMonth.Profit) {
			report.WorstMonth = m
		}
	}
	yearly.ProfitPct = percentOf(yearly.Profit, yearly.Cost)
	report.Yearly = yearly
	report.AvgMonthlyProfit = profitSum.Div(decimal.NewFromInt(int64(len(months))))

	return report
}
