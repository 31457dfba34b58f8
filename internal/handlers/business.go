package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/models"
	"tillpoint/internal/service"
)

type businessRequest struct {
	Name      string  `json:"name" binding:"required"`
	Subdomain string  `json:"subdomain"`
	Currency  string  `json:"currency"`
	TaxRate   float64 `json:"tax_rate"`
	LogoURL   string  `json:"logo_url"`
}

// @Summary      Create a business (tenant bootstrap)
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  businessRequest  true  "Business"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Router       /businesses [post]
func (h *Handler) createBusiness(c *gin.Context) {
	var input businessRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.Businesses.Create(c.Request.Context(), service.BusinessParams{
		Name:      input.Name,
		Subdomain: input.Subdomain,
		Currency:  input.Currency,
		TaxRate:   input.TaxRate,
		LogoURL:   input.LogoURL,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Get own business
// @Tags         business
// @Produce      json
// @Success      200  {object}  models.Business
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/business [get]
// @Security     BearerAuth
func (h *Handler) getBusiness(c *gin.Context) {
	biz, err := h.services.Businesses.Get(c.Request.Context(), c.GetInt(ctxBusinessID))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if biz == nil {
		h.fail(c, http.StatusNotFound, service.ErrUnknownBusiness)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// @Summary      Update own business settings
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  businessRequest  true  "Business"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/v1/business [put]
// @Security     BearerAuth
func (h *Handler) updateBusiness(c *gin.Context) {
	var input businessRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Businesses.Update(c.Request.Context(), models.Business{
		ID:       c.GetInt(ctxBusinessID),
		Name:     input.Name,
		Currency: input.Currency,
		TaxRate:  input.TaxRate,
		LogoURL:  input.LogoURL,
	})
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
