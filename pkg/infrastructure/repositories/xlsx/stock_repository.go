package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

const sheetName = "Sheet1"

var stockHeader = []string{
	"piece_id", "product_name", "length_m", "date_added",
	"seller_price", "unit_cost", "profit", "status", "sold_date", "order_id",
}

// StockRepository persists the stock table as a single-sheet xlsx
// workbook. The whole table is rewritten on every UpsertAll; the save
// goes through a temp file and a rename so a crash mid-write never
// leaves a truncated workbook behind.
type StockRepository struct {
	path string
}

// NewStockRepository opens a stock workbook, creating an empty one with
// just the header row when the file does not exist yet.
func NewStockRepository(path string) (*StockRepository, error) {
	r := &StockRepository{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeWorkbook(path, stockHeader, nil); err != nil {
			return nil, fmt.Errorf("failed to create stock file %s: %w", path, err)
		}
	}
	return r, nil
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadAll reads every stock piece from the workbook in sheet order
func (r *StockRepository) LoadAll() ([]entities.StockPiece, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stock file %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("stock sheet is missing its header row")
	}
	if !headerMatches(rows[0], stockHeader) {
		return nil, fmt.Errorf("stock sheet header mismatch. Expected: %v, Got: %v", stockHeader, rows[0])
	}

	var pieces []entities.StockPiece
	for i, row := range rows[1:] {
		piece, err := parseStockRow(row)
		if err != nil {
			return nil, fmt.Errorf("stock sheet row %d: %w", i+2, err)
		}
		pieces = append(pieces, *piece)
	}
	return pieces, nil
}

// UpsertAll rewrites the workbook with the given record set
func (r *StockRepository) UpsertAll(pieces []entities.StockPiece) error {
	rows := make([][]interface{}, 0, len(pieces))
	for _, p := range pieces {
		soldDate := ""
		if p.SoldDate != nil {
			soldDate = entities.FormatTimestamp(*p.SoldDate)
		}
		rows = append(rows, []interface{}{
			p.PieceID,
			p.ProductName,
			p.LengthM,
			entities.FormatTimestamp(p.DateAdded),
			p.SellerPrice.String(),
			p.UnitCost.String(),
			p.Profit.String(),
			p.Status.String(),
			soldDate,
			p.OrderID,
		})
	}
	if err := writeWorkbook(r.path, stockHeader, rows); err != nil {
		return fmt.Errorf("failed to write stock file %s: %w", r.path, err)
	}
	return nil
}

func parseStockRow(row []string) (*entities.StockPiece, error) {
	row = padRow(row, len(stockHeader))

	lengthM, err := parseInt(row[2], "length_m")
	if err != nil {
		return nil, err
	}
	dateAdded, err := entities.ParseTimestamp(row[3])
	if err != nil {
		return nil, err
	}
	sellerPrice, err := parseDecimal(row[4], "seller_price")
	if err != nil {
		return nil, err
	}
	unitCost, err := parseDecimal(row[5], "unit_cost")
	if err != nil {
		return nil, err
	}
	profit, err := parseDecimal(row[6], "profit")
	if err != nil {
		return nil, err
	}
	status, err := entities.ParseStockStatus(row[7])
	if err != nil {
		return nil, err
	}

	var soldDate *time.Time
	if row[8] != "" {
		t, err := entities.ParseTimestamp(row[8])
		if err != nil {
			return nil, err
		}
		soldDate = &t
	}

	piece := &entities.StockPiece{
		PieceID:     row[0],
		ProductName: row[1],
		LengthM:     lengthM,
		DateAdded:   dateAdded,
		SellerPrice: sellerPrice,
		UnitCost:    unitCost,
		Profit:      profit,
		Status:      status,
		SoldDate:    soldDate,
		OrderID:     row[9],
	}
	if err := piece.Validate(); err != nil {
		return nil, err
	}
	return piece, nil
}

// writeWorkbook builds a fresh workbook and swaps it into place
func writeWorkbook(path string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stripstock-*.xlsx")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func headerMatches(got, expected []string) bool {
	if len(got) < len(expected) {
		return false
	}
	for i, h := range expected {
		if got[i] != h {
			return false
		}
	}
	return true
}

// padRow extends a short row with empty cells. excelize drops trailing
// empty cells from GetRows.
func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func parseInt(s, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return v, nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}
