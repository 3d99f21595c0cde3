package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
)

// BeginUpload issues a presigned PUT URL into quarantine and creates the
// staging record.
func BeginUpload(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.BeginUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.BeginUpload(ctx, id.Tenant, id.Owner, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkUploaded records the client's claim that the staged bytes landed.
func MarkUploaded(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.MarkUploaded(ctx, id.Tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FinalizeIngest verifies and commits a staged upload. Safe to retry; an
// already ingested upload returns its recorded result.
func FinalizeIngest(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.FinalizeIngest(ctx, id.Tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
