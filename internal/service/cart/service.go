// Package cart holds the till's in-progress sale: line items in insertion order and the
// optionally attached customer.
package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
)

// Service is the mutable cart. All methods are safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	lines    []domain.LineItem
	customer *domain.Customer
}

func New() *Service {
	return &Service{}
}

// AddToCart increments the line for p, or appends a new line with quantity 1. An existing
// line keeps its original product snapshot and discount.
func (s *Service) AddToCart(p domain.Product) domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity++
		return cloneLine(s.lines[i])
	}
	line := domain.LineItem{Product: p, Quantity: 1}
	s.lines = append(s.lines, line)
	return line
}

// RemoveFromCart drops the line for productID.
func (s *Service) RemoveFromCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("cart line %q: %w", productID, domain.ErrNotFound)
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return nil
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes the line.
func (s *Service) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("cart line %q: %w", productID, domain.ErrNotFound)
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return nil
	}
	s.lines[i].Quantity = quantity
	return nil
}

// ApplyItemDiscount replaces the discount on a line. A zero value clears it.
func (s *Service) ApplyItemDiscount(productID string, typ domain.DiscountType, value decimal.Decimal) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, typ)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: discount value must not be negative", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("cart line %q: %w", productID, domain.ErrNotFound)
	}
	if value.IsZero() {
		s.lines[i].Discount = nil
		return nil
	}
	s.lines[i].Discount = &domain.Discount{Type: typ, Value: value}
	return nil
}

// ClearCart empties the lines and detaches the customer.
func (s *Service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.customer = nil
}

// SetCustomer attaches c to the sale; nil detaches.
func (s *Service) SetCustomer(c *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.customer = nil
		return
	}
	clone := *c
	s.customer = &clone
}

// Snapshot returns a copy of the cart that callers may keep.
func (s *Service) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.Cart{Lines: make([]domain.LineItem, 0, len(s.lines))}
	for _, l := range s.lines {
		out.Lines = append(out.Lines, cloneLine(l))
	}
	if s.customer != nil {
		c := *s.customer
		out.Customer = &c
	}
	return out
}

func (s *Service) ItemCount() int {
	return s.Snapshot().ItemCount()
}

func (s *Service) indexOf(productID string) int {
	for i, l := range s.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneLine(l domain.LineItem) domain.LineItem {
	if l.Discount != nil {
		d := *l.Discount
		l.Discount = &d
	}
	if l.Product.Cost != nil {
		c := *l.Product.Cost
		l.Product.Cost = &c
	}
	return l
}
