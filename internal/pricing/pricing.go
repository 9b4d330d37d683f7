// Package pricing derives cart totals. Every function is pure and recomputes from the lines it is
// given; nothing is cached between calls.
package pricing

import (
	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineSubtotal is price × quantity before any discount.
func LineSubtotal(line domain.LineItem) decimal.Decimal {
	return line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineDiscount returns the discount amount for a single line. Fixed discounts are not clamped to
// the line subtotal.
func LineDiscount(line domain.LineItem) decimal.Decimal {
	if line.Discount == nil {
		return decimal.Zero
	}
	switch line.Discount.Type {
	case domain.DiscountPercentage:
		return LineSubtotal(line).Mul(line.Discount.Value).Div(hundred)
	case domain.DiscountFixed:
		return line.Discount.Value
	default:
		return decimal.Zero
	}
}

// LineTotal is the line subtotal less its discount.
func LineTotal(line domain.LineItem) decimal.Decimal {
	return LineSubtotal(line).Sub(LineDiscount(line))
}

func Subtotal(lines []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineSubtotal(l))
	}
	return sum
}

func Discount(lines []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineDiscount(l))
	}
	return sum
}

// TaxableBase is subtotal less discount, floored at zero.
func TaxableBase(lines []domain.LineItem) decimal.Decimal {
	base := Subtotal(lines).Sub(Discount(lines))
	if base.IsNegative() {
		return decimal.Zero
	}
	return base
}

// Tax applies taxRate (a percentage) to the taxable base.
func Tax(lines []domain.LineItem, taxRate decimal.Decimal) decimal.Decimal {
	return TaxableBase(lines).Mul(taxRate).Div(hundred)
}

// Total is subtotal - discount + tax.
func Total(lines []domain.LineItem, taxRate decimal.Decimal) decimal.Decimal {
	return Subtotal(lines).Sub(Discount(lines)).Add(Tax(lines, taxRate))
}

// Summarize computes all totals for lines under the given settings.
func Summarize(lines []domain.LineItem, settings domain.Settings) domain.Totals {
	subtotal := Subtotal(lines)
	discount := Discount(lines)
	tax := Tax(lines, settings.TaxRate)
	return domain.Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}
}
