// Package api binds the versioned API surface onto a gin engine.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/router"
)

// RegisterGroup mounts every route under /api/v1.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterAll(e.Group("/api/v1"))

	return e
}
