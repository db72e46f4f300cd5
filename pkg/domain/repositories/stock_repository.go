package repositories

import "github.com/piyumals/stripstock/pkg/domain/entities"

// StockRepository provides access to the stock piece table. The backing
// store keeps rows in insertion order; LoadAll must preserve it because
// allocation is first-available over the stored order.
//
// UpsertAll replaces the backing store with the given complete record
// set in one atomic step. Callers perform read-modify-write against a
// snapshot from LoadAll and never issue partial writes.
type StockRepository interface {
	LoadAll() ([]entities.StockPiece, error)
	UpsertAll(pieces []entities.StockPiece) error
}
