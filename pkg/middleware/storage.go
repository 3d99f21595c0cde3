package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/context"
	"github.com/magicfolder/mfvault/pkg/internal/storage"
)

// StorageMiddleware carries the storage manager in the request context so
// per-request services can reach the shared clients.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
