package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Sales summary over a date range
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "RFC3339 or YYYY-MM-DD, default now-24h"
// @Param        to    query  string  false  "RFC3339 or YYYY-MM-DD, default now"
// @Success      200   {object}  service.SalesSummary
// @Router       /api/v1/reports/sales-summary [get]
// @Security     BearerAuth
func (h *Handler) salesSummary(c *gin.Context) {
	from, to, err := saleRange(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	summary, err := h.services.Reports.SalesSummary(c.Request.Context(), c.GetInt(ctxBusinessID), from, to)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
