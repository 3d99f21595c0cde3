package router

import (
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/handle"
)

// RegisterSchedulerRoutes binds the cron job ops endpoints.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	g.GET("/scheduler/jobs", handle.SchedulerJobs)
	g.GET("/scheduler/jobs/:name", handle.SchedulerJob)
	g.DELETE("/scheduler/jobs/:name", handle.SchedulerRemoveJob)
}
