package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/service"
)

type saleItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

type saleRequest struct {
	CustomerID    int               `json:"customer_id"`
	Items         []saleItemRequest `json:"items" binding:"required"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
}

// parseQueryTime parses a from/to query parameter. Date-only values are
// accepted; for the "to" side they mean end of that day.
func parseQueryTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// saleRange reads the optional from/to query range, defaulting to the
// last 24 hours.
func saleRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, to := now.Add(-24*time.Hour), now

	if raw := c.Query("from"); raw != "" {
		t, err := parseQueryTime(raw, false)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from parameter")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseQueryTime(raw, true)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to parameter")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not precede from")
	}
	return from, to, nil
}

// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  saleRequest  true  "Sale"
// @Success      200   {object}  models.Sale
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/v1/sales [post]
// @Security     BearerAuth
func (h *Handler) recordSale(c *gin.Context) {
	var input saleRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	params := service.SaleParams{
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
	}
	for _, it := range input.Items {
		params.Items = append(params.Items, service.SaleItemParams{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	sale, err := h.services.Sales.Record(c.Request.Context(), c.GetInt(ctxBusinessID), c.GetInt(ctxUserID), params)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrInsufficientStock) {
			status = http.StatusConflict
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// @Summary      List sales in a time range
// @Tags         sales
// @Produce      json
// @Param        from  query  string  false  "RFC3339 or YYYY-MM-DD, default now-24h"
// @Param        to    query  string  false  "RFC3339 or YYYY-MM-DD, default now"
// @Router       /api/v1/sales [get]
// @Security     BearerAuth
func (h *Handler) listSales(c *gin.Context) {
	from, to, err := saleRange(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	sales, err := h.services.Sales.List(c.Request.Context(), c.GetInt(ctxBusinessID), from, to)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sales), "sales": sales})
}

// @Summary      Get sale
// @Tags         sales
// @Produce      json
// @Router       /api/v1/sales/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSale(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	sale, err := h.services.Sales.Get(c.Request.Context(), c.GetInt(ctxBusinessID), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if sale == nil {
		h.fail(c, http.StatusNotFound, service.ErrSaleAbsent)
		return
	}
	c.JSON(http.StatusOK, sale)
}
