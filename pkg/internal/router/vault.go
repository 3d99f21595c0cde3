package router

import (
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/handle"
)

// RegisterVaultRoutes binds the ingestion and deduplication API:
//
//	POST   /uploads               -> BeginUpload
//	POST   /uploads/:id/complete  -> MarkUploaded
//	POST   /uploads/:id/ingest    -> FinalizeIngest
//	GET    /duplicates            -> ListDuplicateGroups
//	DELETE /duplicates/:id        -> DismissDuplicateGroup
//	POST   /duplicates/:id/keep   -> SetKeepBest
//	POST   /objects/bulk          -> BulkObjectAction
//	GET    /objects/:id/url       -> ObjectURL
//	POST   /audit/hash            -> RunHashAudit
func RegisterVaultRoutes(g *gin.RouterGroup) {
	uploads := g.Group("/uploads")
	{
		uploads.POST("", handle.BeginUpload)
		uploads.POST("/:id/complete", handle.MarkUploaded)
		uploads.POST("/:id/ingest", handle.FinalizeIngest)
	}

	duplicates := g.Group("/duplicates")
	{
		duplicates.GET("", handle.ListDuplicateGroups)
		duplicates.DELETE("/:id", handle.DismissDuplicateGroup)
		duplicates.POST("/:id/keep", handle.SetKeepBest)
	}

	objects := g.Group("/objects")
	{
		objects.POST("/bulk", handle.BulkObjectAction)
		objects.GET("/:id/url", handle.ObjectURL)
	}

	g.POST("/audit/hash", handle.RunHashAudit)
}
