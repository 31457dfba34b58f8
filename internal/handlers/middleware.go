package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tillpoint/internal/errorcode"
	"tillpoint/internal/service"
)

// Context keys set by the middleware chain.
const (
	ctxUserID     = "userId"
	ctxBusinessID = "businessId"
	ctxRole       = "role"
	ctxStartedAt  = "startedAt"
)

func (h *Handler) claimsMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxBusinessID, claims.BusinessID)
	c.Set(ctxRole, claims.Role)
	c.Next()
}

// tenantMiddleware cross-checks the token's business against the request
// subdomain when one is present ("acme.pos.example.com" → "acme"). Requests
// on bare hosts (localhost, IPs) pass through on the token tenant alone.
func (h *Handler) tenantMiddleware(c *gin.Context) {
	sub := subdomainOf(c.Request.Host)
	if sub == "" {
		c.Next()
		return
	}

	biz, err := h.services.ResolveSubdomain(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, service.ErrUnknownBusiness) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown business subdomain"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve business"})
		return
	}
	if biz.ID != c.GetInt(ctxBusinessID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not belong to this business"})
		return
	}
	c.Next()
}

// subdomainOf extracts the left-most label of a multi-label host, or ""
// when the host has no subdomain to speak of.
func subdomainOf(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	// Numeric hosts are never tenant subdomains.
	for _, r := range labels[0] {
		if r >= '0' && r <= '9' {
			continue
		}
		return strings.ToLower(labels[0])
	}
	return ""
}

func (h *Handler) adminOnly(c *gin.Context) {
	if c.GetString(ctxRole) != "admin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	c.Next()
}

// errorEnvelope converts errors attached by handlers into the standard
// error envelope, classifying each through the error-code registry so the
// operator sees a stable code instead of a raw message.
func (h *Handler) errorEnvelope(c *gin.Context) {
	started := time.Now()
	c.Set(ctxStartedAt, started)

	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	code, entry := h.errors.Classify(errorcode.Context{
		Endpoint:       c.Request.URL.Path,
		Method:         c.Request.Method,
		ErrorType:      errKind(err),
		ErrorMessage:   err.Error(),
		StatusCode:     status,
		UserID:         c.GetInt(ctxUserID),
		UserRole:       c.GetString(ctxRole),
		BusinessID:     c.GetInt(ctxBusinessID),
		PayloadSize:    int(c.Request.ContentLength),
		ProcessingTime: time.Since(started),
	})

	correlationID := uuid.NewString()
	if h.log != nil {
		h.log.Errorw("request_failed",
			"error_code", code, "correlation_id", correlationID,
			"path", c.Request.URL.Path, "status", status, "err", err)
	}

	c.JSON(status, gin.H{
		"ok":            false,
		"errorCode":     code,
		"message":       entry.UserMessage,
		"correlationId": correlationID,
		"details":       err.Error(),
	})
}

// fail records an error for the envelope middleware and fixes the status.
func (h *Handler) fail(c *gin.Context, status int, err error) {
	c.Status(status)
	_ = c.Error(err)
}

// errKind names the innermost error's concrete type, standing in for the
// exception class the classifier keys on. The package qualifier is kept
// on purpose: it often carries the signal (e.g. sqlite.Error).
func errKind(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	return strings.TrimPrefix(t.String(), "*")
}
