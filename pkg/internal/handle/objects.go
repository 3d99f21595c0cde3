package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
)

// BulkObjectAction applies one action to many objects with per-id results.
func BulkObjectAction(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.BulkActionRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.RunBulkAction(ctx, id.Tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ObjectURL returns a presigned GET URL for the object's display version.
func ObjectURL(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.ObjectURL(ctx, id.Tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
