package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
)

// RunHashAudit triggers one on-demand integrity audit run and returns the
// report. The nightly cron runs the same code path.
func RunHashAudit(c *gin.Context) {
	if _, err := checkIdentity(c); err != nil {
		respondError(c, err)
		return
	}

	var req types.HashAuditRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	report, err := svc.RunHashAudit(ctx, req.SampleSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
