package gormdb

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

// StockRepository persists the stock table in a relational database via
// GORM. UpsertAll replaces the whole table inside one transaction, so a
// failed write never leaves a partial record set behind.
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a GORM-backed stock repository and
// migrates its schema.
func NewStockRepository(db *gorm.DB) (*StockRepository, error) {
	if err := db.AutoMigrate(&StockPieceRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate stock schema: %w", err)
	}
	return &StockRepository{db: db}, nil
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadAll reads every stock piece in insertion order
func (r *StockRepository) LoadAll() ([]entities.StockPiece, error) {
	var rows []StockPieceRow
	if err := r.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock pieces: %w", err)
	}

	var pieces []entities.StockPiece
	for _, row := range rows {
		piece, err := fromStockRow(row)
		if err != nil {
			return nil, fmt.Errorf("stock piece %s: %w", row.PieceID, err)
		}
		pieces = append(pieces, *piece)
	}
	return pieces, nil
}

// UpsertAll replaces the stored table with the given record set
func (r *StockRepository) UpsertAll(pieces []entities.StockPiece) error {
	rows := make([]StockPieceRow, 0, len(pieces))
	for _, p := range pieces {
		rows = append(rows, toStockRow(p))
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&StockPieceRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to write stock pieces: %w", err)
	}
	return nil
}
