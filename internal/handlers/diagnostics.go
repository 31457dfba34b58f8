package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/errorcode"
)

type errorListing struct {
	Code string `json:"code"`
	errorcode.Entry
}

// @Summary      List registered error codes
// @Tags         diagnostics
// @Produce      json
// @Param        area      query  string  false  "filter by area, e.g. POS"
// @Param        severity  query  string  false  "filter by severity"
// @Param        q         query  string  false  "substring match on title or devCause"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/errors [get]
// @Security     BearerAuth
func (h *Handler) listErrors(c *gin.Context) {
	area := strings.ToUpper(c.Query("area"))
	severity := strings.ToLower(c.Query("severity"))
	q := strings.ToLower(c.Query("q"))

	out := make([]errorListing, 0)
	for code, entry := range h.errors.All() {
		if area != "" && string(entry.Area) != area {
			continue
		}
		if severity != "" && string(entry.Severity) != severity {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(entry.Title), q) &&
			!strings.Contains(strings.ToLower(entry.DevCause), q) {
			continue
		}
		out = append(out, errorListing{Code: code, Entry: entry})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	c.JSON(http.StatusOK, gin.H{
		"total":  h.errors.TotalCodes(),
		"count":  len(out),
		"errors": out,
	})
}

// @Summary      Recently seen error codes
// @Tags         diagnostics
// @Produce      json
// @Param        limit  query  int  false  "max entries, default 20"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/errors/recent [get]
// @Security     BearerAuth
func (h *Handler) recentErrors(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.fail(c, http.StatusBadRequest, errors.New("invalid limit parameter"))
			return
		}
		limit = n
	}
	recent := h.errors.Recent(limit)
	c.JSON(http.StatusOK, gin.H{"count": len(recent), "recent": recent})
}

// @Summary      Error code details
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  errorcode.Entry
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/v1/admin/errors/{code} [get]
// @Security     BearerAuth
func (h *Handler) getErrorDetails(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	entry, found := h.errors.Details(code)
	if !found {
		h.fail(c, http.StatusNotFound, errors.New("unknown error code"))
		return
	}
	c.JSON(http.StatusOK, errorListing{Code: code, Entry: entry})
}
