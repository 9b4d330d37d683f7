package domain

import "github.com/shopspring/decimal"

// AllCategories is the pseudo-category that matches every product.
const AllCategories = "all"

type Product struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku"`
	Category  string           `json:"category"`
	Price     decimal.Decimal  `json:"price"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	Stock     int              `json:"stock"`
	IsService bool             `json:"isService"`
	Image     string           `json:"image,omitempty"`
}

// StockStatus reports the shelf status shown next to a product. Services have none.
func (p Product) StockStatus() string {
	switch {
	case p.IsService:
		return ""
	case p.Stock <= 0:
		return "out_of_stock"
	case p.Stock <= 10:
		return "low_stock"
	default:
		return "in_stock"
	}
}
