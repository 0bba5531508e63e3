package expense

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryRepository keeps expenses in process memory. Reads return copies,
// so callers always work on a stable snapshot.
type MemoryRepository struct {
	mu      sync.RWMutex
	byGroup map[string][]*Expense
}

// NewMemoryRepository creates an empty in-memory expense repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byGroup: make(map[string][]*Expense)}
}

func (r *MemoryRepository) Create(_ context.Context, expense *Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byGroup[expense.GroupID] = append(r.byGroup[expense.GroupID], expense.Clone())
	return nil
}

func (r *MemoryRepository) ListByGroupID(_ context.Context, groupID string) ([]*Expense, error) {
	r.mu.RLock()
	stored := r.byGroup[groupID]
	expenses := make([]*Expense, len(stored))
	for i, e := range stored {
		expenses[i] = e.Clone()
	}
	r.mu.RUnlock()

	slices.SortStableFunc(expenses, func(a, b *Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return expenses, nil
}

func (r *MemoryRepository) TotalByGroupID(_ context.Context, groupID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, e := range r.byGroup[groupID] {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r *MemoryRepository) DeleteByGroupID(_ context.Context, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byGroup, groupID)
	return nil
}
