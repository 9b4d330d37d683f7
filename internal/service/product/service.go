package product

import (
	"context"
	"strings"

	"pos-terminal/internal/domain"
	productrepo "pos-terminal/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns products in category (empty or "all" for every category) whose name or SKU
// contains query.
func (s *Service) List(ctx context.Context, category, query string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.Filter{
		Category: strings.TrimSpace(category),
		Query:    query,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
