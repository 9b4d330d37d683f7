package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "pos-terminal/internal/service/customer"
)

func (h *handlers) listCustomers(c *gin.Context) {
	list, err := h.deps.CustomerSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]customerResponse, 0, len(list))
	for _, cust := range list {
		out = append(out, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}

func (h *handlers) createCustomer(c *gin.Context) {
	var req customersvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	cust, err := h.deps.CustomerSvc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(*cust))
}

func (h *handlers) getCustomer(c *gin.Context) {
	cust, err := h.deps.CustomerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*cust))
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	if err := h.deps.CustomerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
