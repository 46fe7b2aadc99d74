// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the tenant partition for every API request. Upstream
// authentication is expected to set the operator's e-mail; the tenant id is
// the e-mail's local part. Service and super-admin accounts may instead send
// an explicit X-Tenant-ID, which wins when present.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawdesk/go-vet-backend/internal/tenant"
)

const (
	headerUserEmail = "X-User-Email"
	headerUserID    = "X-User-ID"
	headerTenantID  = "X-Tenant-ID"

	ctxKeyTenantID = "tenantID"
	ctxKeyUserID   = "userID"
)

// Tenant returns a middleware that derives the tenant and user for the
// request and stores them in the Gin context under "tenantID" and "userID".
// Requests that resolve to no tenant are rejected with 401.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(headerUserEmail))
		explicit := strings.TrimSpace(c.GetHeader(headerTenantID))

		id, err := tenant.Resolve(explicit, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "missing or invalid tenant identity",
			})
			return
		}

		user := strings.TrimSpace(c.GetHeader(headerUserID))
		if user == "" {
			user = email
		}

		c.Set(ctxKeyTenantID, id)
		c.Set(ctxKeyUserID, user)
		c.Next()
	}
}

// TenantFrom returns the tenant id stored by Tenant(), or "".
func TenantFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyTenantID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// UserFrom returns the user id stored by Tenant(), or "".
func UserFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
