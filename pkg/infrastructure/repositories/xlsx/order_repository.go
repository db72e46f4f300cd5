package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

var orderHeader = []string{
	"order_id", "order_date", "customer_name", "address", "phone1", "phone2",
	"city", "item_name", "length_m", "qty", "total_unit_cost",
	"total_seller_price", "profit_total", "allocated_piece_ids", "status",
}

// OrderRepository persists the order table as a single-sheet xlsx
// workbook, one row per order line. Allocated piece ids are stored as a
// comma-joined cell.
type OrderRepository struct {
	path string
}

// NewOrderRepository opens an order workbook, creating an empty one
// with just the header row when the file does not exist yet.
func NewOrderRepository(path string) (*OrderRepository, error) {
	r := &OrderRepository{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeWorkbook(path, orderHeader, nil); err != nil {
			return nil, fmt.Errorf("failed to create orders file %s: %w", path, err)
		}
	}
	return r, nil
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadAll reads every order line from the workbook in sheet order
func (r *OrderRepository) LoadAll() ([]entities.OrderLine, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders file %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("orders sheet is missing its header row")
	}
	if !headerMatches(rows[0], orderHeader) {
		return nil, fmt.Errorf("orders sheet header mismatch. Expected: %v, Got: %v", orderHeader, rows[0])
	}

	var lines []entities.OrderLine
	for i, row := range rows[1:] {
		line, err := parseOrderRow(row)
		if err != nil {
			return nil, fmt.Errorf("orders sheet row %d: %w", i+2, err)
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// UpsertAll rewrites the workbook with the given record set
func (r *OrderRepository) UpsertAll(lines []entities.OrderLine) error {
	rows := make([][]interface{}, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []interface{}{
			l.OrderID,
			entities.FormatTimestamp(l.OrderDate),
			l.Customer.Name,
			l.Customer.Address,
			l.Customer.Phone1,
			l.Customer.Phone2,
			l.Customer.City,
			l.ItemName,
			l.LengthM,
			l.Qty,
			l.TotalUnitCost.String(),
			l.TotalSellerPrice.String(),
			l.ProfitTotal.String(),
			entities.JoinPieceIDs(l.AllocatedPieceIDs),
			l.Status.String(),
		})
	}
	if err := writeWorkbook(r.path, orderHeader, rows); err != nil {
		return fmt.Errorf("failed to write orders file %s: %w", r.path, err)
	}
	return nil
}

func parseOrderRow(row []string) (*entities.OrderLine, error) {
	row = padRow(row, len(orderHeader))

	orderDate, err := entities.ParseTimestamp(row[1])
	if err != nil {
		return nil, err
	}
	lengthM, err := parseInt(row[8], "length_m")
	if err != nil {
		return nil, err
	}
	qty, err := parseInt(row[9], "qty")
	if err != nil {
		return nil, err
	}
	totalCost, err := parseDecimal(row[10], "total_unit_cost")
	if err != nil {
		return nil, err
	}
	totalPrice, err := parseDecimal(row[11], "total_seller_price")
	if err != nil {
		return nil, err
	}
	profitTotal, err := parseDecimal(row[12], "profit_total")
	if err != nil {
		return nil, err
	}
	status, err := entities.ParseOrderStatus(row[14])
	if err != nil {
		return nil, err
	}

	line := &entities.OrderLine{
		OrderID:   row[0],
		OrderDate: orderDate,
		Customer: entities.Customer{
			Name:    row[2],
			Address: row[3],
			Phone1:  row[4],
			Phone2:  row[5],
			City:    row[6],
		},
		ItemName:          row[7],
		LengthM:           lengthM,
		Qty:               qty,
		TotalUnitCost:     totalCost,
		TotalSellerPrice:  totalPrice,
		ProfitTotal:       profitTotal,
		AllocatedPieceIDs: entities.SplitPieceIDs(row[13]),
		Status:            status,
	}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}
