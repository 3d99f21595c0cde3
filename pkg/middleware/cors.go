package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/magicfolder/mfvault/pkg/configs"
)

// CORSMiddleware builds the CORS policy. Auth and tenant headers must be
// allowed or browser clients cannot reach the API through the proxy.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AddAllowHeaders("X-Auth-Request-Email", "X-Forwarded-Email", "X-Tenant-ID")

	if cfg.Debug {
		config.AllowOrigins = nil
		config.AllowAllOrigins = true
	}

	return cors.New(config)
}
