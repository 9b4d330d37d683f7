package product

import (
	"context"
	"sync"

	"pos-terminal/internal/domain"
)

// memoryRepo keeps products in insertion order.
type memoryRepo struct {
	mu    sync.RWMutex
	items []domain.Product
}

// NewMemory returns a Repository preloaded with products.
func NewMemory(products []domain.Product) Repository {
	items := make([]domain.Product, len(products))
	copy(items, products)
	return &memoryRepo{items: items}
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Product
	for _, p := range r.items {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = p
			clone := p
			return &clone, nil
		}
	}
	r.items = append(r.items, p)
	clone := p
	return &clone, nil
}
