package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
	custrepo "pos-terminal/internal/repository/customer"
)

// Service manages the customer directory.
type Service struct {
	repo  custrepo.Repository
	newID func() string
}

// New creates a Service that assigns random UUIDs to new customers.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// CreateInput captures the fields accepted when registering a customer at the till.
type CreateInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Create registers a new customer. Name and phone are required.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone required", domain.ErrInvalidInput)
	}
	return s.repo.Create(ctx, domain.Customer{
		ID:         s.newID(),
		Name:       name,
		Phone:      phone,
		Email:      strings.TrimSpace(in.Email),
		TotalSpent: decimal.Zero,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns customers matching query on name, phone or email.
func (s *Service) List(ctx context.Context, query string) ([]domain.Customer, error) {
	return s.repo.List(ctx, query)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
