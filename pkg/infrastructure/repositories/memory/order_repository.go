package memory

import (
	"sync"

	"github.com/piyumals/stripstock/pkg/domain/entities"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage, preserving insertion
// order
type OrderRepository struct {
	mu    sync.RWMutex
	lines []entities.OrderLine
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadAll returns a copy of all order lines in stored order
func (r *OrderRepository) LoadAll() ([]entities.OrderLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.OrderLine, len(r.lines))
	copy(out, r.lines)
	for i := range out {
		ids := make([]string, len(r.lines[i].AllocatedPieceIDs))
		copy(ids, r.lines[i].AllocatedPieceIDs)
		out[i].AllocatedPieceIDs = ids
	}
	return out, nil
}

// UpsertAll replaces the stored table with the given record set
func (r *OrderRepository) UpsertAll(lines []entities.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make([]entities.OrderLine, len(lines))
	copy(replacement, lines)
	for i := range replacement {
		ids := make([]string, len(lines[i].AllocatedPieceIDs))
		copy(ids, lines[i].AllocatedPieceIDs)
		replacement[i].AllocatedPieceIDs = ids
	}
	r.lines = replacement
	return nil
}
