package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/service/till"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type discountRequest struct {
	Type  domain.DiscountType `json:"type" binding:"required"`
	Value decimal.Decimal     `json:"value"`
}

type assignCustomerRequest struct {
	CustomerID *string `json:"customerId"`
}

func (h *handlers) respondCart(c *gin.Context, status int, v till.CartView, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, toCartResponse(v))
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.deps.Till.Cart(c.Request.Context())))
}

func (h *handlers) clearCart(c *gin.Context) {
	v, err := h.deps.Till.Clear(c.Request.Context())
	h.respondCart(c, http.StatusOK, v, err)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId required")
		return
	}
	v, err := h.deps.Till.AddProduct(c.Request.Context(), req.ProductID)
	h.respondCart(c, http.StatusOK, v, err)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity required")
		return
	}
	v, err := h.deps.Till.UpdateQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	h.respondCart(c, http.StatusOK, v, err)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	v, err := h.deps.Till.RemoveProduct(c.Request.Context(), c.Param("productId"))
	h.respondCart(c, http.StatusOK, v, err)
}

func (h *handlers) applyDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "type and value required")
		return
	}
	v, err := h.deps.Till.ApplyDiscount(c.Request.Context(), c.Param("productId"), req.Type, req.Value)
	h.respondCart(c, http.StatusOK, v, err)
}

func (h *handlers) assignCustomer(c *gin.Context) {
	var req assignCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	id := ""
	if req.CustomerID != nil {
		id = *req.CustomerID
	}
	v, err := h.deps.Till.AssignCustomer(c.Request.Context(), id)
	h.respondCart(c, http.StatusOK, v, err)
}
