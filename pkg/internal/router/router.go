// Package router binds the HTTP paths to their handlers. Handlers live in
// pkg/internal/handle; this package only wires them to gin groups.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAll wires every API route under the given group.
func RegisterAll(g *gin.RouterGroup) {
	RegisterVaultRoutes(g)
	RegisterHealthCheckRoute(g)
	RegisterSchedulerRoutes(g)
}
