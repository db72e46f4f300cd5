package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/interfaces/cli/output"
)

// PlaceOrderConfig holds configuration for the place-order command.
// Items is a comma-separated list of product:length:qty[:price] specs;
// the optional price overrides the catalog seller price for that line.
type PlaceOrderConfig struct {
	Config
	CustomerName string
	Address      string
	Phone1       string
	Phone2       string
	City         string
	Items        string
}

// PlaceOrderCommand allocates stock and records a new order
type PlaceOrderCommand struct {
	config PlaceOrderConfig
}

// NewPlaceOrderCommand creates a new place-order command
func NewPlaceOrderCommand(config PlaceOrderConfig) *PlaceOrderCommand {
	return &PlaceOrderCommand{config: config}
}

// Execute runs the place-order command
func (c *PlaceOrderCommand) Execute(ctx context.Context) error {
	lines, err := parseItemSpecs(c.config.Items)
	if err != nil {
		return err
	}

	draft := entities.OrderDraft{
		Customer: entities.Customer{
			Name:    c.config.CustomerName,
			Address: c.config.Address,
			Phone1:  c.config.Phone1,
			Phone2:  c.config.Phone2,
			City:    c.config.City,
		},
		Lines: lines,
	}

	manager, err := NewManager(c.config.Config)
	if err != nil {
		return err
	}
	result, err := manager.PlaceOrder(draft)
	if err != nil {
		return err
	}

	output.WritePlacement(os.Stdout, result)
	return nil
}

// parseItemSpecs decodes product:length:qty[:price] specs
func parseItemSpecs(items string) ([]entities.DraftLine, error) {
	var lines []entities.DraftLine
	for _, spec := range strings.Split(items, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		parts := strings.Split(spec, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, &entities.ValidationError{
				Field:  "items",
				Reason: fmt.Sprintf("bad item spec %q, want product:length:qty[:price]", spec),
			}
		}

		lengthM, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, &entities.ValidationError{Field: "items", Reason: fmt.Sprintf("invalid length %q", parts[1])}
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, &entities.ValidationError{Field: "items", Reason: fmt.Sprintf("invalid qty %q", parts[2])}
		}

		line := entities.DraftLine{Product: parts[0], LengthM: lengthM, Qty: qty}
		if len(parts) == 4 {
			price, err := decimal.NewFromString(parts[3])
			if err != nil {
				return nil, &entities.ValidationError{Field: "items", Reason: fmt.Sprintf("invalid price %q", parts[3])}
			}
			line.PriceOverride = &price
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, &entities.ValidationError{Field: "items", Reason: "no items given"}
	}
	return lines, nil
}

// ReverseOrderConfig holds configuration for the reverse-order command
type ReverseOrderConfig struct {
	Config
	OrderID string
	Status  string // CANCELLED or RETURNED
}

// ReverseOrderCommand cancels or returns an order and restocks its
// pieces
type ReverseOrderCommand struct {
	config ReverseOrderConfig
}

// NewReverseOrderCommand creates a new reverse-order command
func NewReverseOrderCommand(config ReverseOrderConfig) *ReverseOrderCommand {
	return &ReverseOrderCommand{config: config}
}

// Execute runs the reverse-order command
func (c *ReverseOrderCommand) Execute(ctx context.Context) error {
	status, err := entities.ParseOrderStatus(c.config.Status)
	if err != nil {
		return err
	}

	manager, err := NewManager(c.config.Config)
	if err != nil {
		return err
	}
	result, err := manager.ReverseOrder(c.config.OrderID, status)
	if err != nil {
		return err
	}

	output.WriteReversal(os.Stdout, result)
	return nil
}

// ListOrdersConfig holds configuration for the list-orders command. From
// and To, when set, override the preset period with a custom window.
type ListOrdersConfig struct {
	Config
	Customer string
	Product  string
	LengthM  int
	Status   string
	Period   string
	From     string
	To       string
}

// ListOrdersCommand renders a filtered order view with totals
type ListOrdersCommand struct {
	config ListOrdersConfig
}

// NewListOrdersCommand creates a new list-orders command
func NewListOrdersCommand(config ListOrdersConfig) *ListOrdersCommand {
	return &ListOrdersCommand{config: config}
}

// Execute runs the list-orders command
func (c *ListOrdersCommand) Execute(ctx context.Context) error {
	filter := services.OrderFilter{
		Customer: c.config.Customer,
		Product:  c.config.Product,
		LengthM:  c.config.LengthM,
	}
	if s := strings.TrimSpace(c.config.Status); s != "" {
		status, err := entities.ParseOrderStatus(s)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	window, err := resolveWindow(c.config.Period, c.config.From, c.config.To)
	if err != nil {
		return err
	}
	filter.Placed = window

	_, orders, err := OpenRepositories(c.config.Config)
	if err != nil {
		return err
	}
	lines, err := orders.LoadAll()
	if err != nil {
		return err
	}

	view := services.FilterOrders(lines, filter)
	aggregator := services.NewSummaryAggregator()
	output.WriteOrderTable(os.Stdout, view, aggregator.OrderTotals(view))
	return nil
}
