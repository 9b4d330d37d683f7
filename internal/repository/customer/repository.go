package customer

import (
	"context"
	"strings"

	"pos-terminal/internal/domain"
)

// Repository persists and fetches customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, query string) ([]domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// MatchesQuery reports whether c matches a case-insensitive search on name or email, or a
// substring of the phone number.
func MatchesQuery(c domain.Customer, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	lower := strings.ToLower(q)
	return strings.Contains(strings.ToLower(c.Name), lower) ||
		strings.Contains(c.Phone, q) ||
		(c.Email != "" && strings.Contains(strings.ToLower(c.Email), lower))
}
