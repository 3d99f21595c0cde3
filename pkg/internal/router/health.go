package router

import (
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/handle"
)

// RegisterHealthCheckRoute binds the per-component health probes.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/s3", handle.HealthS3)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}
