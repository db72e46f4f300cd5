package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/piyumals/stripstock/pkg/interfaces/cli/commands"
)

// command is the shape every subcommand satisfies
type command interface {
	Execute(ctx context.Context) error
}

func main() {
	// .env is optional; flags and real env still apply without it
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, err := buildCommand(os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(2)
	}

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildCommand(name string, args []string) (command, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	backend := fs.String("backend", envOr("STRIPSTOCK_BACKEND", "xlsx"), "Persistence backend: xlsx, sqlite or memory")
	stockFile := fs.String("stock-file", envOr("STOCK_FILE", "stock.xlsx"), "Stock workbook path (xlsx backend)")
	ordersFile := fs.String("orders-file", envOr("ORDERS_FILE", "orders.xlsx"), "Orders workbook path (xlsx backend)")
	dbFile := fs.String("db", envOr("DB_FILE", "stripstock.db"), "Database path (sqlite backend)")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")

	switch name {
	case "add-stock":
		product := fs.String("product", "", "Product name")
		length := fs.Int("length", 0, "Piece length in meters")
		qty := fs.Int("qty", 1, "Number of pieces to add")
		cost := fs.String("cost", "", "Unit cost per piece")
		price := fs.String("price", "", "Seller price per piece")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewAddStockCommand(commands.AddStockConfig{
			Config:      sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			Product:     *product,
			LengthM:     *length,
			Qty:         *qty,
			UnitCost:    *cost,
			SellerPrice: *price,
		}), nil

	case "remove-stock":
		pieces := fs.String("pieces", "", "Comma-separated piece ids")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewRemoveStockCommand(commands.RemoveStockConfig{
			Config:   sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			PieceIDs: *pieces,
		}), nil

	case "place-order":
		customer := fs.String("customer", "", "Customer name")
		address := fs.String("address", "", "Delivery address")
		phone1 := fs.String("phone1", "", "Primary phone number")
		phone2 := fs.String("phone2", "", "Secondary phone number")
		city := fs.String("city", "", "Delivery city")
		items := fs.String("items", "", "Order lines as product:length:qty[:price], comma-separated")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewPlaceOrderCommand(commands.PlaceOrderConfig{
			Config:       sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			CustomerName: *customer,
			Address:      *address,
			Phone1:       *phone1,
			Phone2:       *phone2,
			City:         *city,
			Items:        *items,
		}), nil

	case "reverse-order":
		orderID := fs.String("order", "", "Order id")
		status := fs.String("status", "CANCELLED", "Target status: CANCELLED or RETURNED")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewReverseOrderCommand(commands.ReverseOrderConfig{
			Config:  sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			OrderID: *orderID,
			Status:  *status,
		}), nil

	case "list-stock":
		product := fs.String("product", "", "Filter by product name")
		length := fs.Int("length", 0, "Filter by length in meters")
		status := fs.String("status", "", "Filter by status: IN_STOCK, SOLD or REMOVED")
		period := fs.String("period", "all", "Date window: all, today, 7d, month, last-month, 3m, 6m, 12m")
		from := fs.String("from", "", "Custom window start (YYYY-MM-DD)")
		to := fs.String("to", "", "Custom window end (YYYY-MM-DD)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewListStockCommand(commands.ListStockConfig{
			Config:  sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			Product: *product,
			LengthM: *length,
			Status:  *status,
			Period:  *period,
			From:    *from,
			To:      *to,
		}), nil

	case "list-orders":
		customer := fs.String("customer", "", "Filter by customer name substring")
		product := fs.String("product", "", "Filter by product name")
		length := fs.Int("length", 0, "Filter by length in meters")
		status := fs.String("status", "", "Filter by status: ACTIVE, CANCELLED or RETURNED")
		period := fs.String("period", "all", "Date window: all, today, 7d, month, last-month, 3m, 6m, 12m")
		from := fs.String("from", "", "Custom window start (YYYY-MM-DD)")
		to := fs.String("to", "", "Custom window end (YYYY-MM-DD)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewListOrdersCommand(commands.ListOrdersConfig{
			Config:   sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			Customer: *customer,
			Product:  *product,
			LengthM:  *length,
			Status:   *status,
			Period:   *period,
			From:     *from,
			To:       *to,
		}), nil

	case "availability":
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewAvailabilityCommand(commands.AvailabilityConfig{
			Config: sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
		}), nil

	case "summary":
		period := fs.String("period", "all", "Date window: all, today, 7d, month, last-month, 3m, 6m, 12m")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewSummaryCommand(commands.SummaryConfig{
			Config: sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			Period: *period,
		}), nil

	case "report":
		year := fs.Int("year", 0, "Report year (default: current year)")
		product := fs.String("product", "", "Limit to one product")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewReportCommand(commands.ReportConfig{
			Config:  sharedConfig(*backend, *stockFile, *ordersFile, *dbFile, *verbose),
			Year:    *year,
			Product: *product,
		}), nil

	default:
		return nil, fmt.Errorf("unknown command: %s", name)
	}
}

func sharedConfig(backend, stockFile, ordersFile, dbFile string, verbose bool) commands.Config {
	return commands.Config{
		Backend:    backend,
		StockFile:  stockFile,
		OrdersFile: ordersFile,
		DBFile:     dbFile,
		Verbose:    verbose,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `stripstock - LED strip inventory and order management

Usage:
  stripstock <command> [flags]

Commands:
  add-stock      Register purchased pieces
  remove-stock   Retire damaged or lost pieces
  place-order    Allocate stock and record an order
  reverse-order  Cancel or return an order
  list-stock     Show the stock table with filters and totals
  list-orders    Show the order table with filters and totals
  availability   Show in-stock counts per product and length
  summary        Show the business rollup
  report         Show a yearly sales report

Run 'stripstock <command> -h' for command flags.
`)
}
