package configs

import "github.com/spf13/viper"

// AuthConfig controls identity enforcement. The auth provider itself is
// external (oauth2-proxy style): it injects the authenticated user's email
// and the tenant id as request headers, and this service only verifies their
// presence.
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	SkipPaths     []string `mapstructure:"skip_paths"`      // path prefixes exempt from auth (metrics, health)
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // allow ?tenant=&user= fallback for local debugging
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
	})
}
