// Package configs manages application configuration: database, object
// storage, message queue, server, logging and vault pipeline settings.
// Multiple formats are supported (YAML, JSON, TOML, dotenv) with hot reload.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion is stamped into client metadata and event headers.
const AppVersion = "1.0.0"

type (
	// AppConfig is the global application configuration.
	AppConfig struct {
		DB        DBConfig        `mapstructure:"db"`
		S3        S3Config        `mapstructure:"s3"`
		MQ        MQConfig        `mapstructure:"mq"`
		Server    ServerConfig    `mapstructure:"server"`
		Log       LogConfig       `mapstructure:"log"`
		Auth      AuthConfig      `mapstructure:"auth"`
		Metrics   MetricsConfig   `mapstructure:"metrics"`
		RateLimit RateLimitConfig `mapstructure:"rate_limit"`
		Vault     VaultConfig     `mapstructure:"vault"`
	}
)

var (
	globalConfig AppConfig
	appViper     *viper.Viper
)

// InitConfig loads the application configuration from a file or directory,
// applies defaults and env overrides, and optionally enables hot reload.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// A file: viper detects the type from the extension.
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}
		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("MFVAULT")

	if err := appViper.ReadInConfig(); err != nil {
		// defaults plus env are a valid configuration on their own
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults registers the defaults for every configuration section.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig    ServerConfig
		dbConfig        DBConfig
		s3Config        S3Config
		mqConfig        MQConfig
		logConfig       LogConfig
		authConfig      AuthConfig
		metricsConfig   MetricsConfig
		rateLimitConfig RateLimitConfig
		vaultConfig     VaultConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	mqConfig.setDefaults(v)
	logConfig.setDefaults(v)
	authConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	rateLimitConfig.setDefaults(v)
	vaultConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig returns the global configuration instance.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
