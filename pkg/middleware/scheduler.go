package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/scheduler"
)

type schedulerKey struct{}

// SchedulerMiddleware carries the cron scheduler in the request context for
// the ops endpoints.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), schedulerKey{}, sched)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetScheduler fetches the scheduler injected by SchedulerMiddleware.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	if sched, ok := c.Request.Context().Value(schedulerKey{}).(*scheduler.Scheduler); ok {
		return sched
	}

	return nil
}
