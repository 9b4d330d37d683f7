package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pos-terminal/internal/domain"
)

// settingsRequest is a partial update; absent fields keep their current value.
type settingsRequest struct {
	Currency   *string          `json:"currency"`
	TaxRate    *decimal.Decimal `json:"taxRate"`
	IsDarkMode *bool            `json:"isDarkMode"`
}

func (h *handlers) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, toSettingsResponse(h.deps.Settings.Get(c.Request.Context())))
}

func (h *handlers) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	next := h.deps.Settings.Get(ctx)
	if req.Currency != nil {
		next.Currency = domain.Currency(*req.Currency)
	}
	if req.TaxRate != nil {
		next.TaxRate = *req.TaxRate
	}
	if req.IsDarkMode != nil {
		next.IsDarkMode = *req.IsDarkMode
	}
	saved, err := h.deps.Settings.Update(ctx, next)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(saved))
}
