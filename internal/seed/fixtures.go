package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cost(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

// Categories returns the demo categories, starting with the catch-all filter.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: domain.AllCategories, Name: "All Items", Position: 0},
		{ID: "beverages", Name: "Beverages", Position: 1},
		{ID: "food", Name: "Food", Position: 2},
		{ID: "snacks", Name: "Snacks", Position: 3},
		{ID: "services", Name: "Services", Position: 4},
	}
}

// Products returns the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Espresso", SKU: "BEV001", Category: "beverages", Price: money("3.50"), Cost: cost("0.80"), Stock: 999},
		{ID: "2", Name: "Cappuccino", SKU: "BEV002", Category: "beverages", Price: money("4.50"), Cost: cost("1.20"), Stock: 999},
		{ID: "3", Name: "Latte", SKU: "BEV003", Category: "beverages", Price: money("4.75"), Cost: cost("1.30"), Stock: 999},
		{ID: "4", Name: "Iced Americano", SKU: "BEV004", Category: "beverages", Price: money("4.00"), Cost: cost("0.90"), Stock: 999},
		{ID: "5", Name: "Green Tea", SKU: "BEV005", Category: "beverages", Price: money("3.00"), Cost: cost("0.50"), Stock: 50},
		{ID: "6", Name: "Fresh Orange Juice", SKU: "BEV006", Category: "beverages", Price: money("5.50"), Cost: cost("2.00"), Stock: 30},
		{ID: "7", Name: "Avocado Toast", SKU: "FOOD001", Category: "food", Price: money("9.50"), Cost: cost("3.50"), Stock: 25},
		{ID: "8", Name: "Caesar Salad", SKU: "FOOD002", Category: "food", Price: money("11.00"), Cost: cost("4.00"), Stock: 20},
		{ID: "9", Name: "Club Sandwich", SKU: "FOOD003", Category: "food", Price: money("12.50"), Cost: cost("4.50"), Stock: 15},
		{ID: "10", Name: "Veggie Wrap", SKU: "FOOD004", Category: "food", Price: money("10.00"), Cost: cost("3.00"), Stock: 18},
		{ID: "11", Name: "Chocolate Croissant", SKU: "SNK001", Category: "snacks", Price: money("4.00"), Cost: cost("1.00"), Stock: 40},
		{ID: "12", Name: "Blueberry Muffin", SKU: "SNK002", Category: "snacks", Price: money("3.50"), Cost: cost("0.90"), Stock: 35},
		{ID: "13", Name: "Cookie Pack", SKU: "SNK003", Category: "snacks", Price: money("5.00"), Cost: cost("1.50"), Stock: 50},
		{ID: "14", Name: "Energy Bar", SKU: "SNK004", Category: "snacks", Price: money("3.00"), Cost: cost("1.00"), Stock: 60},
		{ID: "15", Name: "Haircut", SKU: "SRV001", Category: "services", Price: money("25.00"), Stock: 999, IsService: true},
		{ID: "16", Name: "Hair Coloring", SKU: "SRV002", Category: "services", Price: money("75.00"), Stock: 999, IsService: true},
	}
}

// Customers returns the demo customer directory.
func Customers() []domain.Customer {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return []domain.Customer{
		{ID: "1", Name: "John Smith", Phone: "+1 234 567 8901", Email: "john@email.com", TotalSpent: money("245.50"), VisitCount: 12, CreatedAt: base},
		{ID: "2", Name: "Sarah Johnson", Phone: "+1 234 567 8902", Email: "sarah@email.com", TotalSpent: money("189.00"), VisitCount: 8, CreatedAt: base.Add(24 * time.Hour)},
		{ID: "3", Name: "Michael Brown", Phone: "+1 234 567 8903", TotalSpent: money("567.25"), VisitCount: 24, CreatedAt: base.Add(48 * time.Hour)},
	}
}
