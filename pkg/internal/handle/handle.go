// Package handle implements the HTTP request handlers.
package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/internal/types"
	"github.com/magicfolder/mfvault/pkg/middleware"
	"github.com/magicfolder/mfvault/pkg/rule"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// identity is the caller extracted from the auth middleware: the tenant the
// request operates in and the authenticated user's email.
type identity struct {
	Tenant string
	Owner  string
}

// checkIdentity resolves the caller. The auth middleware populates the
// context keys; outside release mode a default identity keeps curl and
// tests simple.
func checkIdentity(c *gin.Context) (identity, error) {
	tenant := strings.TrimSpace(c.GetString(middleware.ContextTenantKey))
	owner := strings.TrimSpace(c.GetString(middleware.ContextOwnerKey))

	if (tenant == "" || owner == "") && gin.Mode() != gin.ReleaseMode {
		if tenant == "" {
			tenant = "test-tenant"
		}

		if owner == "" {
			owner = "test-user@example.com"
		}
	}

	if tenant == "" || owner == "" {
		return identity{}, types.Unauthorized("missing identity headers")
	}

	if err := rule.ValidateVar(owner, "required,email"); err != nil {
		return identity{}, types.Unauthorized("invalid user identity")
	}

	return identity{Tenant: tenant, Owner: owner}, nil
}

// respondError maps a service error onto the wire.
func respondError(c *gin.Context, err error) {
	e := types.AsError(err)
	c.JSON(e.HTTPStatus(), gin.H{"error": string(e.Code), "message": e.Message})
}
