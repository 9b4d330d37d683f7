package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
	categoryrepo "pos-terminal/internal/repository/category"
	custrepo "pos-terminal/internal/repository/customer"
	"pos-terminal/internal/repository/kv"
	productrepo "pos-terminal/internal/repository/product"
	"pos-terminal/internal/seed"
	cartsvc "pos-terminal/internal/service/cart"
	categorysvc "pos-terminal/internal/service/category"
	"pos-terminal/internal/service/checkout"
	customersvc "pos-terminal/internal/service/customer"
	productsvc "pos-terminal/internal/service/product"
	"pos-terminal/internal/service/settings"
	"pos-terminal/internal/service/till"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestRouter(t *testing.T, db Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := productsvc.New(productrepo.NewMemory(seed.Products()))
	customers := customersvc.New(custrepo.NewMemory(seed.Customers()))
	store := settings.New(kv.NewMemory(), nil)
	cart := cartsvc.New()
	co := checkout.New(cart, store, checkout.WithDelay(0))

	router, err := buildRouter(zap.NewNop(), db, Deps{
		ProductSvc:  products,
		CategorySvc: categorysvc.New(categoryrepo.NewMemory(seed.Categories())),
		CustomerSvc: customers,
		Settings:    store,
		Till:        till.New(products, customers, store, cart, co),
		Checkout:    co,
	}, nil)
	require.NoError(t, err)
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	_, err := buildRouter(zap.NewNop(), nil, Deps{}, nil)
	assert.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, nil)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/readyz", nil).Code)

	down := newTestRouter(t, stubPinger{err: errors.New("refused")})
	assert.Equal(t, http.StatusServiceUnavailable, do(t, down, http.MethodGet, "/readyz", nil).Code)
}

func TestCatalogRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[struct {
		Results []categoryResponse `json:"results"`
	}](t, rec)
	require.Len(t, cats.Results, 5)
	assert.Equal(t, "all", cats.Results[0].ID)

	rec = do(t, router, http.MethodGet, "/products?category=snacks&q=muffin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Results []productResponse `json:"results"`
		Count   int               `json:"count"`
	}](t, rec)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "SNK002", list.Results[0].SKU)
	assert.Equal(t, "3.50", list.Results[0].Price)
	assert.Equal(t, "₦3.50", list.Results[0].PriceFormatted)

	rec = do(t, router, http.MethodGet, "/products/15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[productResponse](t, rec)
	assert.True(t, p.IsService)
	assert.Empty(t, p.StockStatus)

	rec = do(t, router, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	e := decode[errorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}

func TestCustomerRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/customers?q=john", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, 2, found.Count)

	rec = do(t, router, http.MethodPost, "/customers", map[string]string{"name": "Ada Obi", "phone": "+234 801"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[customerResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "0.00", created.TotalSpent)

	rec = do(t, router, http.MethodPost, "/customers", map[string]string{"name": "No Phone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/customers/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/customers/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/customers/"+created.ID, nil).Code)
}

func TestSettingsRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"currency":"ngn","taxRate":7.5,"isDarkMode":false}`, rec.Body.String())

	rec = do(t, router, http.MethodPut, "/settings", map[string]any{"currency": "usd", "taxRate": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"currency":"usd","taxRate":10,"isDarkMode":false}`, rec.Body.String())

	rec = do(t, router, http.MethodPut, "/settings", map[string]any{"isDarkMode": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"currency":"usd","taxRate":10,"isDarkMode":true}`, rec.Body.String())

	rec = do(t, router, http.MethodPut, "/settings", map[string]any{"currency": "jpy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router, http.MethodPut, "/settings", map[string]any{"taxRate": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartResponse](t, rec)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "7", cart.Totals.Subtotal)
	assert.Equal(t, "0.525", cart.Totals.Tax)
	assert.Equal(t, "7.525", cart.Totals.Total)
	assert.Equal(t, "₦7.53", cart.Formatted.Total)

	rec = do(t, router, http.MethodPut, "/cart/items/1/discount", map[string]any{"type": "percentage", "value": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartResponse](t, rec)
	require.NotNil(t, cart.LineItems[0].Discount)
	assert.Equal(t, "0.7", cart.Totals.Discount)

	rec = do(t, router, http.MethodPut, "/cart/items/1/discount", map[string]any{"type": "bogo", "value": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPatch, "/cart/items/1", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[cartResponse](t, rec).ItemCount)

	rec = do(t, router, http.MethodPatch, "/cart/items/42", map[string]int{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "404"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/cart/customer", map[string]string{"customerId": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartResponse](t, rec)
	require.NotNil(t, cart.Customer)
	assert.Equal(t, "Sarah Johnson", cart.Customer.Name)

	rec = do(t, router, http.MethodPut, "/cart/customer", map[string]any{"customerId": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[cartResponse](t, rec).Customer)

	rec = do(t, router, http.MethodDelete, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartResponse](t, rec).LineItems)

	do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "2"})
	rec = do(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[cartResponse](t, rec).ItemCount)
}

func TestCheckoutRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/checkout/open", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "9"})

	rec = do(t, router, http.MethodPost, "/checkout/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[checkoutResponse](t, rec)
	assert.Equal(t, "selecting_method", view.State)
	assert.Equal(t, "cash", view.PaymentMethod)
	assert.Equal(t, "13.4375", view.Totals.Total)
	assert.Equal(t, []string{"14", "15", "20"}, view.QuickAmounts)

	rec = do(t, router, http.MethodPost, "/checkout/open", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPut, "/checkout/tender", map[string]any{"amount": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, "/checkout/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodPut, "/checkout/tender", map[string]any{"amount": "20"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6.5625", decode[checkoutResponse](t, rec).Change)

	rec = do(t, router, http.MethodPut, "/checkout/method", map[string]string{"method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/checkout/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[checkoutResponse](t, rec)
	assert.Equal(t, "complete", view.State)
	require.NotNil(t, view.Receipt)
	assert.NotEmpty(t, view.Receipt.TransactionID)
	assert.Equal(t, "6.5625", view.Receipt.Change)

	rec = do(t, router, http.MethodPost, "/cart/items", map[string]string{"productId": "1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/checkout/acknowledge", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decode[checkoutResponse](t, rec).State)

	rec = do(t, router, http.MethodGet, "/cart", nil)
	assert.Zero(t, decode[cartResponse](t, rec).ItemCount)

	rec = do(t, router, http.MethodPost, "/checkout/acknowledge", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrInvalidInput:       http.StatusBadRequest,
		domain.ErrEmptyCart:          http.StatusBadRequest,
		domain.ErrNotFound:           http.StatusNotFound,
		domain.ErrAlreadyExists:      http.StatusConflict,
		domain.ErrCheckoutBusy:       http.StatusConflict,
		domain.ErrInvalidTransition:  http.StatusConflict,
		domain.ErrInsufficientTender: http.StatusUnprocessableEntity,
		errors.New("boom"):           http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(recovery(zap.NewNop()))
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := do(t, router, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusInternalServerError, decode[errorResponse](t, rec).StatusCode)
}
