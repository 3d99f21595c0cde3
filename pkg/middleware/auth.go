package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/configs"
)

// Context keys set by AuthMiddleware and read by the handlers.
const (
	ContextTenantKey = "auth.tenant"
	ContextOwnerKey  = "auth.owner"
)

// AuthMiddleware verifies the headers injected by the external auth proxy
// (oauth2-proxy style): the authenticated user's email in
// X-Auth-Request-Email or X-Forwarded-Email, and the tenant in X-Tenant-ID.
// Requests without both are rejected; the service itself performs no
// authentication. Configured path prefixes (metrics, health) are exempt,
// and dev mode may fall back to query parameters.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		email := strings.TrimSpace(c.GetHeader("X-Auth-Request-Email"))
		if email == "" {
			email = strings.TrimSpace(c.GetHeader("X-Forwarded-Email"))
		}

		tenant := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))

		if conf.DevAllowQuery {
			if email == "" {
				email = strings.TrimSpace(c.Query("user"))
			}

			if tenant == "" {
				tenant = strings.TrimSpace(c.Query("tenant"))
			}
		}

		if email == "" || tenant == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextOwnerKey, email)
		c.Set(ContextTenantKey, tenant)

		c.Next()
	}
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
