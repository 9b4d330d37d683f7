package customer

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pos-terminal/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
	now   func() time.Time
}

// NewMemory returns an in-memory Repository preloaded with customers.
func NewMemory(customers []domain.Customer) Repository {
	items := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		items[c.ID] = c
	}
	return &memoryRepo{items: items, now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[c.ID]; exists {
		return nil, domain.ErrAlreadyExists
	}
	c.Email = strings.ToLower(c.Email)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now().UTC()
	}
	r.items[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepo) List(_ context.Context, query string) ([]domain.Customer, error) {
	r.mu.RLock()
	var out []domain.Customer
	for _, c := range r.items {
		if MatchesQuery(c, query) {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
