package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPresignExpiry keeps the unauthenticated write window short:
	// minutes, not hours.
	DefaultPresignExpiry = 15 // minutes
	DefaultUploadTTL     = 24 // hours before a stale staging record is collected
	DefaultMaxUploadSize = 512 * 1024 * 1024
	DefaultIngestTimeout = 120 // seconds for the whole finalize critical path

	DefaultAuditSampleSize = 100
	DefaultAuditBudget     = 60 // seconds of wall clock per audit run
)

// VaultConfig holds the ingestion/deduplication pipeline settings.
type VaultConfig struct {
	PresignExpiryMinutes int   `mapstructure:"presign_expiry_minutes" rule:"min=1,max=60"`
	UploadTTLHours       int   `mapstructure:"upload_ttl_hours"       rule:"min=1"`
	MaxUploadSizeBytes   int64 `mapstructure:"max_upload_size_bytes"  rule:"min=1"`
	IngestTimeoutSeconds int   `mapstructure:"ingest_timeout_seconds" rule:"min=1"`
	AuditSampleSize      int   `mapstructure:"audit_sample_size"      rule:"min=1"`
	AuditBudgetSeconds   int   `mapstructure:"audit_budget_seconds"   rule:"min=1"`
}

// PresignExpiry returns the presigned URL lifetime.
func (c *VaultConfig) PresignExpiry() time.Duration {
	return time.Duration(c.PresignExpiryMinutes) * time.Minute
}

// UploadTTL returns how long a staging record may linger before collection.
func (c *VaultConfig) UploadTTL() time.Duration {
	return time.Duration(c.UploadTTLHours) * time.Hour
}

// IngestTimeout bounds the finalize critical path.
func (c *VaultConfig) IngestTimeout() time.Duration {
	return time.Duration(c.IngestTimeoutSeconds) * time.Second
}

// AuditBudget returns the wall-clock cap for one hash audit run.
func (c *VaultConfig) AuditBudget() time.Duration {
	return time.Duration(c.AuditBudgetSeconds) * time.Second
}

func (c *VaultConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("vault.presign_expiry_minutes", DefaultPresignExpiry)
	v.SetDefault("vault.upload_ttl_hours", DefaultUploadTTL)
	v.SetDefault("vault.max_upload_size_bytes", DefaultMaxUploadSize)
	v.SetDefault("vault.ingest_timeout_seconds", DefaultIngestTimeout)
	v.SetDefault("vault.audit_sample_size", DefaultAuditSampleSize)
	v.SetDefault("vault.audit_budget_seconds", DefaultAuditBudget)
}
