package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/service"
)

var errBadID = errors.New("invalid id parameter")

// idParam parses the :id path segment, failing the request on garbage.
func (h *Handler) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadID.Error()})
		return 0, false
	}
	return id, true
}

type productRequest struct {
	CategoryID int     `json:"category_id"`
	Name       string  `json:"name" binding:"required"`
	SKU        string  `json:"sku"`
	Barcode    string  `json:"barcode"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
}

func (h *Handler) productParams(input productRequest) service.ProductParams {
	return service.ProductParams{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		SKU:        input.SKU,
		Barcode:    input.Barcode,
		Price:      input.Price,
		Stock:      input.Stock,
	}
}

// @Summary      Create product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  productRequest  true  "Product"
// @Success      200   {object}  map[string]int
// @Router       /api/v1/products [post]
// @Security     BearerAuth
func (h *Handler) createProduct(c *gin.Context) {
	var input productRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	id, err := h.services.Catalog.CreateProduct(c.Request.Context(), c.GetInt(ctxBusinessID), h.productParams(input))
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/products [get]
// @Security     BearerAuth
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.services.Catalog.ListProducts(c.Request.Context(), c.GetInt(ctxBusinessID))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// @Summary      Get product
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  models.Product
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/products/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	p, err := h.services.Catalog.GetProduct(c.Request.Context(), c.GetInt(ctxBusinessID), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if p == nil {
		h.fail(c, http.StatusNotFound, service.ErrProductAbsent)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Router       /api/v1/products/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var input productRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	err := h.services.Catalog.UpdateProduct(c.Request.Context(), c.GetInt(ctxBusinessID), id, h.productParams(input))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrProductAbsent) {
			status = http.StatusNotFound
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Delete product
// @Tags         catalog
// @Router       /api/v1/products/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Catalog.DeleteProduct(c.Request.Context(), c.GetInt(ctxBusinessID), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary      Create category
// @Tags         catalog
// @Router       /api/v1/categories [post]
// @Security     BearerAuth
func (h *Handler) createCategory(c *gin.Context) {
	var input categoryRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	id, err := h.services.Catalog.CreateCategory(c.Request.Context(), c.GetInt(ctxBusinessID), input.Name)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      List categories
// @Tags         catalog
// @Router       /api/v1/categories [get]
// @Security     BearerAuth
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.services.Catalog.ListCategories(c.Request.Context(), c.GetInt(ctxBusinessID))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// @Summary      Delete category
// @Tags         catalog
// @Router       /api/v1/categories/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Catalog.DeleteCategory(c.Request.Context(), c.GetInt(ctxBusinessID), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
