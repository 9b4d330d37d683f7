// Package till wires one register together: the cart, the checkout dialog and the settings
// that price them. Cart mutations are refused while a sale is processing or its receipt is open.
package till

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/pricing"
	cartsvc "pos-terminal/internal/service/cart"
	"pos-terminal/internal/service/checkout"
)

type productLookup interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type customerLookup interface {
	Get(ctx context.Context, id string) (*domain.Customer, error)
}

type settingsSource interface {
	Get(ctx context.Context) domain.Settings
}

type Till struct {
	products  productLookup
	customers customerLookup
	settings  settingsSource
	cart      *cartsvc.Service
	checkout  *checkout.Checkout
}

func New(products productLookup, customers customerLookup, settings settingsSource, cart *cartsvc.Service, co *checkout.Checkout) *Till {
	return &Till{
		products:  products,
		customers: customers,
		settings:  settings,
		cart:      cart,
		checkout:  co,
	}
}

func (t *Till) Checkout() *checkout.Checkout {
	return t.checkout
}

// CartView is the cart together with its derived totals.
type CartView struct {
	Cart      domain.Cart
	ItemCount int
	Totals    domain.Totals
	Currency  domain.Currency
}

func (t *Till) Cart(ctx context.Context) CartView {
	settings := t.settings.Get(ctx)
	cart := t.cart.Snapshot()
	return CartView{
		Cart:      cart,
		ItemCount: cart.ItemCount(),
		Totals:    pricing.Summarize(cart.Lines, settings),
		Currency:  settings.Currency,
	}
}

// AddProduct looks the product up in the catalog and adds one unit of it.
func (t *Till) AddProduct(ctx context.Context, productID string) (CartView, error) {
	p, err := t.products.Get(ctx, productID)
	if err != nil {
		return CartView{}, fmt.Errorf("product %q: %w", productID, err)
	}
	err = t.checkout.Guarded("add item", func() error {
		t.cart.AddToCart(*p)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}

func (t *Till) RemoveProduct(ctx context.Context, productID string) (CartView, error) {
	err := t.checkout.Guarded("remove item", func() error {
		return t.cart.RemoveFromCart(productID)
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}

func (t *Till) UpdateQuantity(ctx context.Context, productID string, quantity int) (CartView, error) {
	err := t.checkout.Guarded("update quantity", func() error {
		return t.cart.UpdateQuantity(productID, quantity)
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}

func (t *Till) ApplyDiscount(ctx context.Context, productID string, typ domain.DiscountType, value decimal.Decimal) (CartView, error) {
	err := t.checkout.Guarded("apply discount", func() error {
		return t.cart.ApplyItemDiscount(productID, typ, value)
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}

func (t *Till) Clear(ctx context.Context) (CartView, error) {
	err := t.checkout.Guarded("clear cart", func() error {
		t.cart.ClearCart()
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}

// AssignCustomer attaches the customer with the given id, or detaches when id is empty.
func (t *Till) AssignCustomer(ctx context.Context, customerID string) (CartView, error) {
	var c *domain.Customer
	if customerID != "" {
		var err error
		c, err = t.customers.Get(ctx, customerID)
		if err != nil {
			return CartView{}, fmt.Errorf("customer %q: %w", customerID, err)
		}
	}
	err := t.checkout.Guarded("assign customer", func() error {
		t.cart.SetCustomer(c)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return t.Cart(ctx), nil
}
