package model

import (
	"time"
)

// Version is an immutable, content-addressed snapshot of an Object's bytes.
// ContentHash is the server-computed SHA-256 hex digest and the
// exact-duplicate join key within a tenant; it never changes after insert.
// QuickHash is a 64-bit xxhash fingerprint used as a cheap secondary signal.
type Version struct {
	ID       string `gorm:"primaryKey;size:36"                        json:"version_id"`
	ObjectID string `gorm:"size:36;index"                             json:"object_id"`
	TenantID string `gorm:"size:36;index;index:idx_version_tenant_hash" json:"tenant_id"`

	ContentHash string `gorm:"size:64;index:idx_version_tenant_hash" json:"content_hash"`
	QuickHash   string `gorm:"size:16;index"                         json:"quick_hash"`
	SizeBytes   int64  `json:"size_bytes"`
	MimeType    string `gorm:"size:255" json:"mime_type"`

	CreatedAt time.Time `json:"created_at"`
}
