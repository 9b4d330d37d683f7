package httpserver

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/pricing"
	"pos-terminal/internal/service/checkout"
	"pos-terminal/internal/service/till"
)

type productResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Category       string `json:"category"`
	Price          string `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
	Cost           string `json:"cost,omitempty"`
	Stock          int    `json:"stock"`
	StockStatus    string `json:"stockStatus,omitempty"`
	IsService      bool   `json:"isService"`
	Image          string `json:"image,omitempty"`
}

func toProductResponse(p domain.Product, currency domain.Currency) productResponse {
	out := productResponse{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		Category:       p.Category,
		Price:          p.Price.StringFixed(2),
		PriceFormatted: pricing.FormatCurrency(p.Price, currency),
		Stock:          p.Stock,
		StockStatus:    p.StockStatus(),
		IsService:      p.IsService,
		Image:          p.Image,
	}
	if p.Cost != nil {
		out.Cost = p.Cost.StringFixed(2)
	}
	return out
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type customerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	TotalSpent string    `json:"totalSpent"`
	VisitCount int       `json:"visitCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		TotalSpent: c.TotalSpent.StringFixed(2),
		VisitCount: c.VisitCount,
		CreatedAt:  c.CreatedAt,
	}
}

func toCustomerPtr(c *domain.Customer) *customerResponse {
	if c == nil {
		return nil
	}
	out := toCustomerResponse(*c)
	return &out
}

type settingsResponse struct {
	Currency   string      `json:"currency"`
	TaxRate    json.Number `json:"taxRate"`
	IsDarkMode bool        `json:"isDarkMode"`
}

func toSettingsResponse(s domain.Settings) settingsResponse {
	return settingsResponse{
		Currency:   string(s.Currency),
		TaxRate:    json.Number(s.TaxRate.String()),
		IsDarkMode: s.IsDarkMode,
	}
}

type totalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func toTotalsResponse(t domain.Totals) totalsResponse {
	return totalsResponse{
		Subtotal: t.Subtotal.String(),
		Discount: t.Discount.String(),
		Tax:      t.Tax.String(),
		Total:    t.Total.String(),
	}
}

type discountResponse struct {
	Type  domain.DiscountType `json:"type"`
	Value string              `json:"value"`
}

type lineItemResponse struct {
	ProductID    string            `json:"productId"`
	Name         string            `json:"name"`
	SKU          string            `json:"sku"`
	UnitPrice    string            `json:"unitPrice"`
	Quantity     int               `json:"quantity"`
	Discount     *discountResponse `json:"discount"`
	LineSubtotal string            `json:"lineSubtotal"`
	LineDiscount string            `json:"lineDiscount"`
	LineTotal    string            `json:"lineTotal"`
}

func toLineItems(lines []domain.LineItem) []lineItemResponse {
	out := make([]lineItemResponse, 0, len(lines))
	for _, l := range lines {
		item := lineItemResponse{
			ProductID:    l.Product.ID,
			Name:         l.Product.Name,
			SKU:          l.Product.SKU,
			UnitPrice:    l.Product.Price.String(),
			Quantity:     l.Quantity,
			LineSubtotal: pricing.LineSubtotal(l).String(),
			LineDiscount: pricing.LineDiscount(l).String(),
			LineTotal:    pricing.LineTotal(l).String(),
		}
		if l.Discount != nil {
			item.Discount = &discountResponse{Type: l.Discount.Type, Value: l.Discount.Value.String()}
		}
		out = append(out, item)
	}
	return out
}

type cartResponse struct {
	LineItems []lineItemResponse      `json:"lineItems"`
	Customer  *customerResponse       `json:"customer"`
	ItemCount int                     `json:"itemCount"`
	Currency  string                  `json:"currency"`
	Totals    totalsResponse          `json:"totals"`
	Formatted pricing.FormattedTotals `json:"formatted"`
}

func toCartResponse(v till.CartView) cartResponse {
	return cartResponse{
		LineItems: toLineItems(v.Cart.Lines),
		Customer:  toCustomerPtr(v.Cart.Customer),
		ItemCount: v.ItemCount,
		Currency:  string(v.Currency),
		Totals:    toTotalsResponse(v.Totals),
		Formatted: pricing.FormatTotals(v.Totals, v.Currency),
	}
}

type receiptResponse struct {
	TransactionID string             `json:"transactionId"`
	PaymentMethod string             `json:"paymentMethod"`
	Tendered      string             `json:"tendered"`
	Change        string             `json:"change"`
	LineItems     []lineItemResponse `json:"lineItems"`
	Customer      *customerResponse  `json:"customer"`
	CompletedAt   time.Time          `json:"completedAt"`
}

type checkoutResponse struct {
	State           string                  `json:"state"`
	PaymentMethod   string                  `json:"paymentMethod"`
	Tendered        string                  `json:"tendered"`
	Change          string                  `json:"change"`
	ChangeFormatted string                  `json:"changeFormatted"`
	QuickAmounts    []string                `json:"quickAmounts"`
	Currency        string                  `json:"currency"`
	Totals          totalsResponse          `json:"totals"`
	Formatted       pricing.FormattedTotals `json:"formatted"`
	Receipt         *receiptResponse        `json:"receipt"`
}

func toCheckoutResponse(v checkout.View) checkoutResponse {
	out := checkoutResponse{
		State:           v.State.String(),
		PaymentMethod:   string(v.Method),
		Tendered:        v.Tendered.String(),
		Change:          v.Change.String(),
		ChangeFormatted: pricing.FormatCurrency(v.Change, v.Currency),
		QuickAmounts:    decimalStrings(v.QuickAmounts),
		Currency:        string(v.Currency),
		Totals:          toTotalsResponse(v.Totals),
		Formatted:       pricing.FormatTotals(v.Totals, v.Currency),
	}
	if r := v.Receipt; r != nil {
		out.Receipt = &receiptResponse{
			TransactionID: r.TransactionID,
			PaymentMethod: string(r.Method),
			Tendered:      r.Tendered.String(),
			Change:        r.Change.String(),
			LineItems:     toLineItems(r.Lines),
			Customer:      toCustomerPtr(r.Customer),
			CompletedAt:   r.CompletedAt,
		}
	}
	return out
}

func decimalStrings(in []decimal.Decimal) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		out = append(out, d.String())
	}
	return out
}
