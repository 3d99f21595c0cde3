package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/magicfolder/mfvault/pkg/configs"
)

func newAuthTestRouter(conf configs.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware(conf))
	r.GET("/api/v1/duplicates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant": c.GetString(ContextTenantKey),
			"owner":  c.GetString(ContextOwnerKey),
		})
	})
	r.GET("/api/v1/health/db", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func TestAuthMiddlewareRejectsMissingHeaders(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{Enabled: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRequiresTenant(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{Enabled: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates", nil)
	req.Header.Set("X-Auth-Request-Email", "user@example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsProxyHeaders(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{Enabled: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates", nil)
	req.Header.Set("X-Forwarded-Email", "user@example.com")
	req.Header.Set("X-Tenant-ID", "t1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tenant":"t1"`)
	assert.Contains(t, w.Body.String(), `"owner":"user@example.com"`)
}

func TestAuthMiddlewareSkipPaths(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{
		Enabled:   true,
		SkipPaths: []string{"/api/v1/health"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/db", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareDevQueryFallback(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{Enabled: true, DevAllowQuery: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates?user=dev@example.com&tenant=t1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	r := newAuthTestRouter(configs.AuthConfig{Enabled: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duplicates", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
