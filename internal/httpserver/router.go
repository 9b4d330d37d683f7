package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	customersvc "pos-terminal/internal/service/customer"
	"pos-terminal/internal/service/checkout"
	"pos-terminal/internal/service/till"
)

type ProductService interface {
	List(ctx context.Context, category, query string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CustomerService interface {
	List(ctx context.Context, query string) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	Get(ctx context.Context) domain.Settings
	Update(ctx context.Context, next domain.Settings) (domain.Settings, error)
}

type TillService interface {
	Cart(ctx context.Context) till.CartView
	AddProduct(ctx context.Context, productID string) (till.CartView, error)
	RemoveProduct(ctx context.Context, productID string) (till.CartView, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (till.CartView, error)
	ApplyDiscount(ctx context.Context, productID string, typ domain.DiscountType, value decimal.Decimal) (till.CartView, error)
	Clear(ctx context.Context) (till.CartView, error)
	AssignCustomer(ctx context.Context, customerID string) (till.CartView, error)
}

type CheckoutService interface {
	View(ctx context.Context) checkout.View
	Open(ctx context.Context) error
	SelectMethod(m domain.PaymentMethod) error
	SetTendered(amount decimal.Decimal) error
	Complete(ctx context.Context) (*domain.Receipt, error)
	Acknowledge() error
	Close() error
}

// Deps are the services the routes are served from.
type Deps struct {
	ProductSvc  ProductService
	CategorySvc CategoryService
	CustomerSvc CustomerService
	Settings    SettingsService
	Till        TillService
	Checkout    CheckoutService
}

func (d Deps) validate() error {
	switch {
	case d.ProductSvc == nil:
		return errors.New("httpserver: product service required")
	case d.CategorySvc == nil:
		return errors.New("httpserver: category service required")
	case d.CustomerSvc == nil:
		return errors.New("httpserver: customer service required")
	case d.Settings == nil:
		return errors.New("httpserver: settings service required")
	case d.Till == nil:
		return errors.New("httpserver: till required")
	case d.Checkout == nil:
		return errors.New("httpserver: checkout required")
	}
	return nil
}

type handlers struct {
	logger *zap.Logger
	deps   Deps
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db Pinger, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger), cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, deps: deps}

	router.GET("/categories", h.listCategories)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)

	router.GET("/customers", h.listCustomers)
	router.POST("/customers", h.createCustomer)
	router.GET("/customers/:id", h.getCustomer)
	router.DELETE("/customers/:id", h.deleteCustomer)

	router.GET("/settings", h.getSettings)
	router.PUT("/settings", h.updateSettings)

	cart := router.Group("/cart")
	cart.GET("", h.getCart)
	cart.DELETE("", h.clearCart)
	cart.POST("/items", h.addCartItem)
	cart.PATCH("/items/:productId", h.updateCartItem)
	cart.DELETE("/items/:productId", h.removeCartItem)
	cart.PUT("/items/:productId/discount", h.applyDiscount)
	cart.PUT("/customer", h.assignCustomer)

	co := router.Group("/checkout")
	co.GET("", h.getCheckout)
	co.POST("/open", h.openCheckout)
	co.PUT("/method", h.selectMethod)
	co.PUT("/tender", h.setTender)
	co.POST("/complete", h.completeCheckout)
	co.POST("/acknowledge", h.acknowledgeCheckout)
	co.POST("/close", h.closeCheckout)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
