package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}

func (h *handlers) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := h.deps.ProductSvc.List(ctx, c.Query("category"), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	currency := h.deps.Settings.Get(ctx).Currency
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, currency))
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}

func (h *handlers) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.deps.ProductSvc.Get(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p, h.deps.Settings.Get(ctx).Currency))
}
