package commands

import (
	"context"
	"os"
	"time"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/interfaces/cli/output"
)

// SummaryConfig holds configuration for the summary command
type SummaryConfig struct {
	Config
	Period string
}

// SummaryCommand renders the full business rollup
type SummaryCommand struct {
	config SummaryConfig
}

// NewSummaryCommand creates a new summary command
func NewSummaryCommand(config SummaryConfig) *SummaryCommand {
	return &SummaryCommand{config: config}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context) error {
	preset, err := services.ParseDatePreset(c.config.Period)
	if err != nil {
		return err
	}
	window := preset.Window(time.Now())

	stocks, orders, err := OpenRepositories(c.config.Config)
	if err != nil {
		return err
	}
	pieces, err := stocks.LoadAll()
	if err != nil {
		return err
	}
	lines, err := orders.LoadAll()
	if err != nil {
		return err
	}

	stockView := services.FilterStock(pieces, services.StockFilter{Added: window})
	orderView := services.FilterOrders(lines, services.OrderFilter{Placed: window})

	aggregator := services.NewSummaryAggregator()
	output.WriteSummary(os.Stdout, aggregator.Summarize(stockView, orderView))
	return nil
}

// ReportConfig holds configuration for the report command
type ReportConfig struct {
	Config
	Year    int
	Product string
}

// ReportCommand renders a yearly sales report
type ReportCommand struct {
	config ReportConfig
}

// NewReportCommand creates a new report command
func NewReportCommand(config ReportConfig) *ReportCommand {
	return &ReportCommand{config: config}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	year := c.config.Year
	if year == 0 {
		year = time.Now().Year()
	}

	_, orders, err := OpenRepositories(c.config.Config)
	if err != nil {
		return err
	}
	lines, err := orders.LoadAll()
	if err != nil {
		return err
	}

	aggregator := services.NewSummaryAggregator()
	report := aggregator.BuildSalesReport(lines, year, c.config.Product)
	output.WriteSalesReport(os.Stdout, report)
	return nil
}
