package gormdb

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

// OrderRepository persists order lines in a relational database via
// GORM
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a GORM-backed order repository and
// migrates its schema.
func NewOrderRepository(db *gorm.DB) (*OrderRepository, error) {
	if err := db.AutoMigrate(&OrderLineRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate order schema: %w", err)
	}
	return &OrderRepository{db: db}, nil
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadAll reads every order line in insertion order
func (r *OrderRepository) LoadAll() ([]entities.OrderLine, error) {
	var rows []OrderLineRow
	if err := r.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	var lines []entities.OrderLine
	for _, row := range rows {
		line, err := fromOrderRow(row)
		if err != nil {
			return nil, fmt.Errorf("order line %s: %w", row.OrderID, err)
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// UpsertAll replaces the stored table with the given record set
func (r *OrderRepository) UpsertAll(lines []entities.OrderLine) error {
	rows := make([]OrderLineRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, toOrderRow(l))
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&OrderLineRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to write order lines: %w", err)
	}
	return nil
}
