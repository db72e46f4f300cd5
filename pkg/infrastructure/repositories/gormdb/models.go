package gormdb

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/piyumals/stripstock/pkg/domain/entities"
)

// StockPieceRow is the database shape of a stock piece. Seq preserves
// insertion order across the delete-and-reinsert replace cycle.
type StockPieceRow struct {
	Seq         int64           `gorm:"primaryKey;autoIncrement"`
	PieceID     string          `gorm:"uniqueIndex;not null"`
	ProductName string          `gorm:"index;not null"`
	LengthM     int             `gorm:"not null"`
	DateAdded   time.Time       `gorm:"not null"`
	SellerPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	Profit      decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	Status      string          `gorm:"index;not null"`
	SoldDate    *time.Time
	OrderID     string `gorm:"index"`
}

// TableName for StockPieceRow
func (StockPieceRow) TableName() string {
	return "stock_pieces"
}

// OrderLineRow is the database shape of an order line
type OrderLineRow struct {
	Seq               int64     `gorm:"primaryKey;autoIncrement"`
	OrderID           string    `gorm:"index;not null"`
	OrderDate         time.Time `gorm:"not null"`
	CustomerName      string    `gorm:"index;not null"`
	Address           string
	Phone1            string
	Phone2            string
	City              string
	ItemName          string `gorm:"index;not null"`
	LengthM           int    `gorm:"not null"`
	Qty               int    `gorm:"not null"`
	TotalUnitCost     decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	TotalSellerPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	ProfitTotal       decimal.Decimal `gorm:"type:decimal(20,4);default:0"`
	AllocatedPieceIDs string
	Status            string `gorm:"index;not null"`
}

// TableName for OrderLineRow
func (OrderLineRow) TableName() string {
	return "order_lines"
}

func toStockRow(p entities.StockPiece) StockPieceRow {
	return StockPieceRow{
		PieceID:     p.PieceID,
		ProductName: p.ProductName,
		LengthM:     p.LengthM,
		DateAdded:   p.DateAdded,
		SellerPrice: p.SellerPrice,
		UnitCost:    p.UnitCost,
		Profit:      p.Profit,
		Status:      p.Status.String(),
		SoldDate:    p.SoldDate,
		OrderID:     p.OrderID,
	}
}

func fromStockRow(r StockPieceRow) (*entities.StockPiece, error) {
	status, err := entities.ParseStockStatus(r.Status)
	if err != nil {
		return nil, err
	}
	piece := &entities.StockPiece{
		PieceID:     r.PieceID,
		ProductName: r.ProductName,
		LengthM:     r.LengthM,
		DateAdded:   r.DateAdded,
		SellerPrice: r.SellerPrice,
		UnitCost:    r.UnitCost,
		Profit:      r.Profit,
		Status:      status,
		SoldDate:    r.SoldDate,
		OrderID:     r.OrderID,
	}
	if err := piece.Validate(); err != nil {
		return nil, err
	}
	return piece, nil
}

func toOrderRow(l entities.OrderLine) OrderLineRow {
	return OrderLineRow{
		OrderID:           l.OrderID,
		OrderDate:         l.OrderDate,
		CustomerName:      l.Customer.Name,
		Address:           l.Customer.Address,
		Phone1:            l.Customer.Phone1,
		Phone2:            l.Customer.Phone2,
		City:              l.Customer.City,
		ItemName:          l.ItemName,
		LengthM:           l.LengthM,
		Qty:               l.Qty,
		TotalUnitCost:     l.TotalUnitCost,
		TotalSellerPrice:  l.TotalSellerPrice,
		ProfitTotal:       l.ProfitTotal,
		AllocatedPieceIDs: entities.JoinPieceIDs(l.AllocatedPieceIDs),
		Status:            l.Status.String(),
	}
}

func fromOrderRow(r OrderLineRow) (*entities.OrderLine, error) {
	status, err := entities.ParseOrderStatus(r.Status)
	if err != nil {
		return nil, err
	}
	line := &entities.OrderLine{
		OrderID:   r.OrderID,
		OrderDate: r.OrderDate,
		Customer: entities.Customer{
			Name:    r.CustomerName,
			Address: r.Address,
			Phone1:  r.Phone1,
			Phone2:  r.Phone2,
			City:    r.City,
		},
		ItemName:          r.ItemName,
		LengthM:           r.LengthM,
		Qty:               r.Qty,
		TotalUnitCost:     r.TotalUnitCost,
		TotalSellerPrice:  r.TotalSellerPrice,
		ProfitTotal:       r.ProfitTotal,
		AllocatedPieceIDs: entities.SplitPieceIDs(r.AllocatedPieceIDs),
		Status:            status,
	}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}
