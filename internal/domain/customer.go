package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a store customer. The till only ever holds a reference to one.
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email,omitempty"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	VisitCount int             `json:"visitCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}
