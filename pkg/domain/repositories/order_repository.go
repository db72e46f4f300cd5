package repositories

import "github.com/piyumals/stripstock/pkg/domain/entities"

// OrderRepository provides access to the order line table, with the same
// whole-table load/replace contract as StockRepository.
type OrderRepository interface {
	LoadAll() ([]entities.OrderLine, error)
	UpsertAll(lines []entities.OrderLine) error
}
