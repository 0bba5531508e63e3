package group

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryRepository keeps groups in process memory. Reads return copies.
type MemoryRepository struct {
	mu     sync.RWMutex
	groups map[string]*Group
}

// NewMemoryRepository creates an empty in-memory group repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{groups: make(map[string]*Group)}
}

func (r *MemoryRepository) Create(_ context.Context, group *Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.groups {
		if strings.EqualFold(g.Name, group.Name) {
			return ErrGroupNameTaken
		}
	}
	r.groups[group.ID] = group.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name string) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if strings.EqualFold(g.Name, name) {
			return g.Clone(), nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]*Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g.Clone())
	}
	slices.SortFunc(groups, func(a, b *Group) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return groups, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}
