package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/service"
)

type printRequest struct {
	PrinterName string `json:"printer_name"`
}

const defaultPrinter = "receipt"

// @Summary      Queue a receipt print for a sale
// @Tags         printing
// @Accept       json
// @Produce      json
// @Param        body  body  printRequest  false  "Printer selection"
// @Success      202   {object}  map[string]string
// @Router       /api/v1/sales/{id}/receipt/print [post]
// @Security     BearerAuth
func (h *Handler) printReceipt(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	// The printer name is optional; an empty body is fine.
	var input printRequest
	_ = c.ShouldBindJSON(&input)
	if input.PrinterName == "" {
		input.PrinterName = defaultPrinter
	}

	html, err := h.services.Receipts.RenderSale(c.Request.Context(), c.GetInt(ctxBusinessID), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrSaleAbsent) {
			status = http.StatusNotFound
		}
		h.fail(c, status, err)
		return
	}

	jobID := h.queue.Submit(html, input.PrinterName, "receipt")
	if h.log != nil {
		h.log.Infow("print_job_queued", "job_id", jobID, "sale_id", id, "printer", input.PrinterName)
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID, "status": "queued"})
}

// @Summary      Get print job status
// @Tags         printing
// @Produce      json
// @Success      200  {object}  printqueue.Snapshot
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/print-jobs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPrintJob(c *gin.Context) {
	snap, found := h.queue.Status(c.Param("id"))
	if !found {
		h.fail(c, http.StatusNotFound, errors.New("print job not found"))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Cancel a queued print job
// @Tags         printing
// @Produce      json
// @Router       /api/v1/print-jobs/{id} [delete]
// @Security     BearerAuth
func (h *Handler) cancelPrintJob(c *gin.Context) {
	jobID := c.Param("id")
	if h.queue.Cancel(jobID) {
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
		return
	}
	// Either unknown or already past the point of cancellation.
	if _, found := h.queue.Status(jobID); !found {
		h.fail(c, http.StatusNotFound, errors.New("print job not found"))
		return
	}
	h.fail(c, http.StatusConflict, errors.New("print job is no longer cancellable"))
}
