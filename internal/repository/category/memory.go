package category

import (
	"context"
	"sort"
	"sync"

	"pos-terminal/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Category
}

func NewMemory(categories []domain.Category) Repository {
	items := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		items[c.ID] = c
	}
	return &memoryRepo{items: items}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	out := make([]domain.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memoryRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	r.items[c.ID] = c
	r.mu.Unlock()
	return &c, nil
}
