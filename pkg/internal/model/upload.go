// Package model declares the persisted records of the ingestion and
// deduplication pipeline. Every row is scoped to exactly one tenant.
package model

import (
	"time"
)

// UploadStatus is the staging state machine: presigned → uploaded →
// ingested|failed. Only the ingest pipeline moves an upload to a terminal
// state.
type UploadStatus string

const (
	UploadStatusPresigned UploadStatus = "presigned"
	UploadStatusUploaded  UploadStatus = "uploaded"
	UploadStatusIngested  UploadStatus = "ingested"
	UploadStatusFailed    UploadStatus = "failed"
)

// Upload is the ephemeral staging record created when a presigned URL is
// issued. Terminal rows are collected by the TTL garbage collection job.
type Upload struct {
	ID       string       `gorm:"primaryKey;size:36"          json:"upload_id"`
	TenantID string       `gorm:"size:36;index;index:idx_upload_tenant_status" json:"tenant_id"`
	OwnerID  string       `gorm:"size:255;index"              json:"owner_id"`
	Status   UploadStatus `gorm:"size:16;index:idx_upload_tenant_status" json:"status"`

	FileName    string `gorm:"size:512"  json:"file_name"`
	ContentType string `gorm:"size:255"  json:"content_type"`
	// DeclaredHash is the client-computed digest; advisory only, never
	// trusted as identity.
	DeclaredHash string `gorm:"size:64" json:"declared_hash,omitempty"`

	// Ingest result, recorded before the status flips to ingested so a
	// retried finalize can return the prior outcome.
	ObjectID  string `gorm:"size:36" json:"object_id,omitempty"`
	VersionID string `gorm:"size:36" json:"version_id,omitempty"`
	GroupID   string `gorm:"size:36" json:"duplicate_group_id,omitempty"`
	FailCause string `gorm:"size:512" json:"fail_cause,omitempty"`

	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
