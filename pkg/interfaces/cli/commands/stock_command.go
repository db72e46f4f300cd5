package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/interfaces/cli/output"
)

// AddStockConfig holds configuration for the add-stock command
type AddStockConfig struct {
	Config
	Product     string
	LengthM     int
	Qty         int
	UnitCost    string
	SellerPrice string
}

// AddStockCommand registers freshly purchased pieces
type AddStockCommand struct {
	config AddStockConfig
}

// NewAddStockCommand creates a new add-stock command
func NewAddStockCommand(config AddStockConfig) *AddStockCommand {
	return &AddStockCommand{config: config}
}

// Execute runs the add-stock command
func (c *AddStockCommand) Execute(ctx context.Context) error {
	unitCost, err := decimal.NewFromString(c.config.UnitCost)
	if err != nil {
		return &entities.ValidationError{Field: "cost", Reason: fmt.Sprintf("invalid decimal %q", c.config.UnitCost)}
	}
	sellerPrice, err := decimal.NewFromString(c.config.SellerPrice)
	if err != nil {
		return &entities.ValidationError{Field: "price", Reason: fmt.Sprintf("invalid decimal %q", c.config.SellerPrice)}
	}

	manager, err := NewManager(c.config.Config)
	if err != nil {
		return err
	}

	pieces, err := manager.AddStock(services.AddStockRequest{
		Product:     c.config.Product,
		LengthM:     c.config.LengthM,
		Qty:         c.config.Qty,
		UnitCost:    unitCost,
		SellerPrice: sellerPrice,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Added %d piece(s) of %s (%dm)\n", len(pieces), c.config.Product, c.config.LengthM)
	for _, p := range pieces {
		fmt.Printf("  %s\n", p.PieceID)
	}
	return nil
}

// RemoveStockConfig holds configuration for the remove-stock command
type RemoveStockConfig struct {
	Config
	PieceIDs string // comma-separated piece ids
}

// RemoveStockCommand retires damaged or lost pieces
type RemoveStockCommand struct {
	config RemoveStockConfig
}

// NewRemoveStockCommand creates a new remove-stock command
func NewRemoveStockCommand(config RemoveStockConfig) *RemoveStockCommand {
	return &RemoveStockCommand{config: config}
}

// Execute runs the remove-stock command
func (c *RemoveStockCommand) Execute(ctx context.Context) error {
	ids := entities.SplitPieceIDs(c.config.PieceIDs)
	if len(ids) == 0 {
		return &entities.ValidationError{Field: "pieces", Reason: "no piece ids given"}
	}

	manager, err := NewManager(c.config.Config)
	if err != nil {
		return err
	}

	result, err := manager.RemoveStock(ids)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Removed %d piece(s)\n", len(result.RemovedPieceIDs))
	for _, f := range result.Skipped {
		fmt.Printf("⚠️  %s\n", f.Error())
	}
	return nil
}

// ListStockConfig holds configuration for the list-stock command. From
// and To, when set, override the preset period with a custom window.
type ListStockConfig struct {
	Config
	Product string
	LengthM int
	Status  string
	Period  string
	From    string
	To      string
}

// ListStockCommand renders a filtered stock view with totals
type ListStockCommand struct {
	config ListStockConfig
}

// NewListStockCommand creates a new list-stock command
func NewListStockCommand(config ListStockConfig) *ListStockCommand {
	return &ListStockCommand{config: config}
}

// Execute runs the list-stock command
func (c *ListStockCommand) Execute(ctx context.Context) error {
	filter := services.StockFilter{
		Product: c.config.Product,
		LengthM: c.config.LengthM,
	}
	if s := strings.TrimSpace(c.config.Status); s != "" {
		status, err := entities.ParseStockStatus(s)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	window, err := resolveWindow(c.config.Period, c.config.From, c.config.To)
	if err != nil {
		return err
	}
	filter.Added = window

	stocks, _, err := OpenRepositories(c.config.Config)
	if err != nil {
		return err
	}
	pieces, err := stocks.LoadAll()
	if err != nil {
		return err
	}

	view := services.FilterStock(pieces, filter)
	aggregator := services.NewSummaryAggregator()
	output.WriteStockTable(os.Stdout, view, aggregator.StockTotals(view))
	return nil
}

// resolveWindow turns a preset period or a custom from/to pair into a
// filter window. Explicit bounds win over the preset.
func resolveWindow(period, from, to string) (services.DateRange, error) {
	if from == "" && to == "" {
		preset, err := services.ParseDatePreset(period)
		if err != nil {
			return services.DateRange{}, err
		}
		return preset.Window(time.Now()), nil
	}

	var window services.DateRange
	if from != "" {
		start, err := entities.ParseTimestamp(from)
		if err != nil {
			return services.DateRange{}, err
		}
		window.Start = start
	}
	if to != "" {
		end, err := entities.ParseTimestamp(to)
		if err != nil {
			return services.DateRange{}, err
		}
		window.End = end
	}
	return window, nil
}

// AvailabilityConfig holds configuration for the availability command
type AvailabilityConfig struct {
	Config
}

// AvailabilityCommand shows in-stock counts per product and length
type AvailabilityCommand struct {
	config AvailabilityConfig
}

// NewAvailabilityCommand creates a new availability command
func NewAvailabilityCommand(config AvailabilityConfig) *AvailabilityCommand {
	return &AvailabilityCommand{config: config}
}

// Execute runs the availability command
func (c *AvailabilityCommand) Execute(ctx context.Context) error {
	manager, err := NewManager(c.config.Config)
	if err != nil {
		return err
	}
	table, err := manager.AvailabilityTable()
	if err != nil {
		return err
	}
	output.WriteAvailability(os.Stdout, table)
	return nil
}
