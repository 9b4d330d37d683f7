package product

import (
	"context"
	"strings"

	"pos-terminal/internal/domain"
)

// Filter narrows a product listing. Empty fields, and the "all" category, match everything.
type Filter struct {
	Category string
	Query    string
}

// Matches applies the filter to a single product: category equality and a case-insensitive
// substring match on name or SKU.
func (f Filter) Matches(p domain.Product) bool {
	if f.Category != "" && f.Category != domain.AllCategories && p.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q)
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
