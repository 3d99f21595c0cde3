package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig holds the Prometheus metrics settings.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"`
	Pprof          bool   `mapstructure:"pprof"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "mfvault")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
}
