package memory

import (
	"sync"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

// StockRepository provides in-memory stock storage, preserving insertion
// order. LoadAll and UpsertAll copy, so callers can mutate snapshots
// freely before writing back.
type StockRepository struct {
	mu     sync.RWMutex
	pieces []entities.StockPiece
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadAll returns a copy of all stock pieces in stored order
func (r *StockRepository) LoadAll() ([]entities.StockPiece, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.StockPiece, len(r.pieces))
	copy(out, r.pieces)
	return out, nil
}

// UpsertAll replaces the stored table with the given record set
func (r *StockRepository) UpsertAll(pieces []entities.StockPiece) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make([]entities.StockPiece, len(pieces))
	copy(replacement, pieces)
	r.pieces = replacement
	return nil
}
