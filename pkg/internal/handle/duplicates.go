package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/log"
)

// ListDuplicateGroups pages through the tenant's duplicate groups.
func ListDuplicateGroups(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.ListDuplicateGroupsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.ListDuplicateGroups(ctx, id.Tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DismissDuplicateGroup removes a group the tenant judged a false positive.
func DismissDuplicateGroup(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.DismissDuplicateGroup(ctx, id.Tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetKeepBest designates the canonical version of a duplicate group.
func SetKeepBest(c *gin.Context) {
	id, err := checkIdentity(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.KeepBestRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()
	svc := service.NewVaultService(ctx)

	resp, err := svc.SetKeepBest(ctx, id.Tenant, id.Owner, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
