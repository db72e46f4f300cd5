package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/domain/entities"
)

// WriteStockTable renders a stock view with a totals footer
func WriteStockTable(w io.Writer, pieces []entities.StockPiece, totals *services.StockTotals) {
	fmt.Fprintf(w, "📦 Stock\n")
	fmt.Fprintf(w, "========\n\n")

	fmt.Fprintf(w, "%-20s %-15s %-8s %-20s %-12s %-12s %-12s %-10s\n",
		"Piece ID", "Product", "Length", "Added", "Price", "Cost", "Profit", "Status")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 116))

	for _, p := range pieces {
		fmt.Fprintf(w, "%-20s %-15s %-8s %-20s %-12s %-12s %-12s %-10s\n",
			p.PieceID,
			p.ProductName,
			fmt.Sprintf("%dm", p.LengthM),
			entities.FormatTimestamp(p.DateAdded),
			p.SellerPrice.StringFixed(2),
			p.UnitCost.StringFixed(2),
			p.Profit.StringFixed(2),
			p.Status.String())
	}

	fmt.Fprintf(w, "\nPieces: %d  Sell Value: %s  Cost: %s  Profit: %s (%s%%)\n",
		totals.Count,
		totals.SellValue.StringFixed(2),
		totals.Cost.StringFixed(2),
		totals.Profit.StringFixed(2),
		totals.ProfitPct.StringFixed(1))
}

// WriteOrderTable renders an order view with a totals footer
func WriteOrderTable(w io.Writer, lines []entities.OrderLine, totals *services.OrderTotals) {
	fmt.Fprintf(w, "🧾 Orders\n")
	fmt.Fprintf(w, "=========\n\n")

	fmt.Fprintf(w, "%-24s %-20s %-18s %-12s %-8s %-5s %-12s %-12s %-10s\n",
		"Order ID", "Date", "Customer", "Item", "Length", "Qty", "Total", "Profit", "Status")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 128))

	for _, l := range lines {
		fmt.Fprintf(w, "%-24s %-20s %-18s %-12s %-8s %-5d %-12s %-12s %-10s\n",
			l.OrderID,
			entities.FormatTimestamp(l.OrderDate),
			l.Customer.Name,
			l.ItemName,
			fmt.Sprintf("%dm", l.LengthM),
			l.Qty,
			l.TotalSellerPrice.StringFixed(2),
			l.ProfitTotal.StringFixed(2),
			l.Status.String())
	}

	fmt.Fprintf(w, "\nLines: %d  Pieces: %d  Total Price: %s\n",
		len(lines), totals.TotalQty, totals.TotalPrice.StringFixed(2))
}

// WriteSummary renders the full business rollup
func WriteSummary(w io.Writer, s *services.Summary) {
	fmt.Fprintf(w, "📊 Business Summary\n")
	fmt.Fprintf(w, "===================\n\n")

	fmt.Fprintf(w, "Stock\n")
	fmt.Fprintf(w, "  In Stock:       %d\n", s.InStockCount)
	fmt.Fprintf(w, "  Sold:           %d\n", s.SoldCount)
	fmt.Fprintf(w, "  Removed:        %d\n", s.RemovedCount)
	fmt.Fprintf(w, "  Stock Cost:     %s\n", s.StockCost.StringFixed(2))
	fmt.Fprintf(w, "  Stock Value:    %s\n", s.StockValue.StringFixed(2))
	fmt.Fprintf(w, "  Stock Profit:   %s (%s%%)\n\n", s.StockProfit.StringFixed(2), s.StockProfitPct.StringFixed(1))

	fmt.Fprintf(w, "Orders\n")
	fmt.Fprintf(w, "  Total:          %d\n", s.TotalOrders)
	fmt.Fprintf(w, "  Active:         %d\n", s.ActiveOrders)
	fmt.Fprintf(w, "  Cancelled:      %d\n", s.CancelledOrders)
	fmt.Fprintf(w, "  Returned:       %d\n", s.ReturnedOrders)
	fmt.Fprintf(w, "  Revenue:        %s\n", s.Revenue.StringFixed(2))
	fmt.Fprintf(w, "  Cost:           %s\n", s.OrderCost.StringFixed(2))
	fmt.Fprintf(w, "  Profit:         %s (%s%%)\n\n", s.OrderProfit.StringFixed(2), s.OrderProfitPct.StringFixed(1))

	fmt.Fprintf(w, "Metrics\n")
	fmt.Fprintf(w, "  Inventory Turnover: %s\n", s.InventoryTurnover.StringFixed(2))
	fmt.Fprintf(w, "  Cancellation Rate:  %s%%\n", s.CancellationRate.StringFixed(1))
	fmt.Fprintf(w, "  Return Rate:        %s%%\n", s.ReturnRate.StringFixed(1))
	fmt.Fprintf(w, "  Success Rate:       %s%%\n", s.SuccessRate.StringFixed(1))
}

// WriteSalesReport renders a yearly sales report, newest month first
func WriteSalesReport(w io.Writer, r *services.SalesReport) {
	scope := "All Products"
	if r.Product != "" {
		scope = r.Product
	}
	fmt.Fprintf(w, "📈 Sales Report %d - %s\n", r.Year, scope)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 40))

	if len(r.Months) == 0 {
		fmt.Fprintf(w, "No sales recorded for %d.\n", r.Year)
		return
	}

	fmt.Fprintf(w, "%-12s %-12s %-12s %-12s %-6s %-8s\n",
		"Month", "Sales", "Cost", "Profit", "Qty", "Profit%")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 66))

	for _, m := range r.Months {
		fmt.Fprintf(w, "%-12s %-12s %-12s %-12s %-6d %-8s\n",
			m.Month.String(),
			m.Sales.StringFixed(2),
			m.Cost.StringFixed(2),
			m.Profit.StringFixed(2),
			m.Qty,
			m.ProfitPct.StringFixed(1))
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 66))
	fmt.Fprintf(w, "%-12s %-12s %-12s %-12s %-6d %-8s\n",
		"Yearly",
		r.Yearly.Sales.StringFixed(2),
		r.Yearly.Cost.StringFixed(2),
		r.Yearly.Profit.StringFixed(2),
		r.Yearly.Qty,
		r.Yearly.ProfitPct.StringFixed(1))

	fmt.Fprintf(w, "\nBest Month:  %s (%s profit)\n", r.BestMonth.Month, r.BestMonth.Profit.StringFixed(2))
	fmt.Fprintf(w, "Worst Month: %s (%s profit)\n", r.WorstMonth.Month, r.WorstMonth.Profit.StringFixed(2))
	fmt.Fprintf(w, "Avg Monthly Profit: %s\n", r.AvgMonthlyProfit.StringFixed(2))
}

// WritePlacement renders the receipt of a placed order
func WritePlacement(w io.Writer, res *services.PlacementResult) {
	fmt.Fprintf(w, "✅ Order %s placed at %s\n\n", res.OrderID, entities.FormatTimestamp(res.OrderDate))
	for _, line := range res.Lines {
		fmt.Fprintf(w, "  %s %dm x%d @ %s = %s  pieces: %s\n",
			line.Product,
			line.LengthM,
			line.Qty,
			line.UnitPrice.StringFixed(2),
			line.TotalSellerPrice.StringFixed(2),
			strings.Join(line.PieceIDs, ", "))
	}
	fmt.Fprintf(w, "\nOrder Total: %s\n", res.OrderTotal.StringFixed(2))
}

// WriteReversal renders the outcome of an order reversal, faults
// included
func WriteReversal(w io.Writer, res *services.ReversalResult) {
	fmt.Fprintf(w, "↩️  Order %s set to %s\n", res.OrderID, res.NewStatus.String())
	if len(res.RestockedPieceIDs) > 0 {
		fmt.Fprintf(w, "Restocked: %s\n", strings.Join(res.RestockedPieceIDs, ", "))
	}
	for _, f := range res.Faults {
		fmt.Fprintf(w, "⚠️  %s\n", f.Error())
	}
}

// WriteAvailability renders in-stock counts per product and length,
// sorted for stable output
func WriteAvailability(w io.Writer, avail map[string]map[int]int) {
	fmt.Fprintf(w, "📋 Availability\n")
	fmt.Fprintf(w, "===============\n\n")

	products := make([]string, 0, len(avail))
	for product := range avail {
		products = append(products, product)
	}
	sort.Strings(products)

	for _, product := range products {
		fmt.Fprintf(w, "%s\n", product)
		byLength := avail[product]
		lengths := make([]int, 0, len(byLength))
		for lengthM := range byLength {
			lengths = append(lengths, lengthM)
		}
		sort.Ints(lengths)
		for _, lengthM := range lengths {
			fmt.Fprintf(w, "  %3dm: %d\n", lengthM, byLength[lengthM])
		}
	}
}
