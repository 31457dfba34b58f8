package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/service"
)

type invoiceRequest struct {
	SaleID int    `json:"sale_id" binding:"required"`
	DueAt  string `json:"due_at"`
}

// @Summary      Issue an invoice for a recorded sale
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  invoiceRequest  true  "Invoice"
// @Success      200   {object}  models.Invoice
// @Router       /api/v1/invoices [post]
// @Security     BearerAuth
func (h *Handler) createInvoice(c *gin.Context) {
	var input invoiceRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	dueAt := time.Now().UTC().AddDate(0, 0, 30)
	if input.DueAt != "" {
		t, err := parseQueryTime(input.DueAt, true)
		if err != nil {
			h.fail(c, http.StatusBadRequest, errors.New("invalid due_at"))
			return
		}
		dueAt = t
	}

	inv, err := h.services.Invoices.CreateFromSale(c.Request.Context(), c.GetInt(ctxBusinessID), input.SaleID, dueAt)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrSaleAbsent) {
			status = http.StatusNotFound
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Router       /api/v1/invoices [get]
// @Security     BearerAuth
func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.services.Invoices.List(c.Request.Context(), c.GetInt(ctxBusinessID))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(invoices), "invoices": invoices})
}

// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Router       /api/v1/invoices/{id} [get]
// @Security     BearerAuth
func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	inv, err := h.services.Invoices.Get(c.Request.Context(), c.GetInt(ctxBusinessID), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if inv == nil {
		h.fail(c, http.StatusNotFound, service.ErrInvoiceAbsent)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// @Summary      Mark invoice paid
// @Tags         invoices
// @Produce      json
// @Router       /api/v1/invoices/{id}/pay [post]
// @Security     BearerAuth
func (h *Handler) payInvoice(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Invoices.MarkPaid(c.Request.Context(), c.GetInt(ctxBusinessID), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrInvoiceAbsent) {
			status = http.StatusNotFound
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "paid"})
}
