package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
)

type methodRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required"`
}

type tenderRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

func (h *handlers) checkoutView(c *gin.Context, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutResponse(h.deps.Checkout.View(c.Request.Context())))
}

func (h *handlers) getCheckout(c *gin.Context) {
	h.checkoutView(c, nil)
}

func (h *handlers) openCheckout(c *gin.Context) {
	h.checkoutView(c, h.deps.Checkout.Open(c.Request.Context()))
}

func (h *handlers) selectMethod(c *gin.Context) {
	var req methodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "method required")
		return
	}
	h.checkoutView(c, h.deps.Checkout.SelectMethod(req.Method))
}

func (h *handlers) setTender(c *gin.Context) {
	var req tenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount required")
		return
	}
	h.checkoutView(c, h.deps.Checkout.SetTendered(*req.Amount))
}

// completeCheckout blocks for the processing delay; a client disconnect aborts the sale.
func (h *handlers) completeCheckout(c *gin.Context) {
	_, err := h.deps.Checkout.Complete(c.Request.Context())
	h.checkoutView(c, err)
}

func (h *handlers) acknowledgeCheckout(c *gin.Context) {
	h.checkoutView(c, h.deps.Checkout.Acknowledge())
}

func (h *handlers) closeCheckout(c *gin.Context) {
	h.checkoutView(c, h.deps.Checkout.Close())
}
