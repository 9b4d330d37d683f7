package domain

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// LineItem is one product in the cart. Quantity is always at least 1.
type LineItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	Discount *Discount `json:"discount,omitempty"`
}

// Cart is a point-in-time copy of the till's cart, in insertion order.
type Cart struct {
	Lines    []LineItem `json:"lineItems"`
	Customer *Customer  `json:"customer,omitempty"`
}

// ItemCount returns the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Totals holds the derived pricing values of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
