package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/infrastructure/repositories/memory"
	"github.com/piyumals/stripstock/pkg/interfaces/cli/output"
)

func main() {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	stocks := memory.NewStockRepository()
	orders := memory.NewOrderRepository()
	manager := services.NewOrderLifecycleManager(stocks, orders, log)

	// Receive a purchase of LED strips
	fmt.Println("📦 Receiving stock...")
	pieces, err := manager.AddStock(services.AddStockRequest{
		Product:     "COB Strip",
		LengthM:     5,
		Qty:         4,
		UnitCost:    decimal.NewFromInt(1200),
		SellerPrice: decimal.NewFromInt(1800),
	})
	if err != nil {
		fmt.Printf("❌ Add stock failed: %v\n", err)
		return
	}
	for _, p := range pieces {
		fmt.Printf("  %s\n", p.PieceID)
	}

	// Place an order for two pieces
	fmt.Println("\n🛒 Placing order...")
	result, err := manager.PlaceOrder(entities.OrderDraft{
		Customer: entities.Customer{
			Name:    "Nimal Perera",
			Address: "12 Galle Road",
			Phone1:  "0771234567",
			City:    "Colombo",
		},
		Lines: []entities.DraftLine{
			{Product: "COB Strip", LengthM: 5, Qty: 2},
		},
	})
	if err != nil {
		fmt.Printf("❌ Order failed: %v\n", err)
		return
	}
	output.WritePlacement(os.Stdout, result)

	// The customer returns the order; pieces go back to stock
	fmt.Println("\n↩️  Processing return...")
	reversal, err := manager.ReverseOrder(result.OrderID, entities.OrderReturned)
	if err != nil {
		fmt.Printf("❌ Reversal failed: %v\n", err)
		return
	}
	output.WriteReversal(os.Stdout, reversal)

	// Roll everything up
	fmt.Println()
	stockRows, _ := stocks.LoadAll()
	orderRows, _ := orders.LoadAll()
	aggregator := services.NewSummaryAggregator()
	output.WriteSummary(os.Stdout, aggregator.Summarize(stockRows, orderRows))
}
