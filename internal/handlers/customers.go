package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/service"
)

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  customerRequest  true  "Customer"
// @Success      200   {object}  map[string]int
// @Router       /api/v1/customers [post]
// @Security     BearerAuth
func (h *Handler) createCustomer(c *gin.Context) {
	var input customerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	id, err := h.services.Customers.Create(c.Request.Context(), c.GetInt(ctxBusinessID), service.CustomerParams{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	})
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Router       /api/v1/customers [get]
// @Security     BearerAuth
func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.services.Customers.List(c.Request.Context(), c.GetInt(ctxBusinessID))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Router       /api/v1/customers/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	cust, err := h.services.Customers.Get(c.Request.Context(), c.GetInt(ctxBusinessID), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if cust == nil {
		h.fail(c, http.StatusNotFound, service.ErrCustomerAbsent)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Router       /api/v1/customers/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateCustomer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var input customerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	err := h.services.Customers.Update(c.Request.Context(), c.GetInt(ctxBusinessID), id, service.CustomerParams{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrCustomerAbsent) {
			status = http.StatusNotFound
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Delete customer
// @Tags         customers
// @Router       /api/v1/customers/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Customers.Delete(c.Request.Context(), c.GetInt(ctxBusinessID), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
