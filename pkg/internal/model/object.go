package model

import (
	"time"
)

// ObjectStatus is the lifecycle of a logical document. Deletion is a status
// transition, never a hard delete, so lineage and duplicate history survive.
type ObjectStatus string

const (
	ObjectStatusInbox    ObjectStatus = "inbox"
	ObjectStatusActive   ObjectStatus = "active"
	ObjectStatusArchived ObjectStatus = "archived"
	ObjectStatusDeleted  ObjectStatus = "deleted"
)

// Object is the stable, user-facing document identity. CurrentVersionID is a
// display pointer, not ownership: after a keep-best resolution it may name a
// Version owned by a different Object.
type Object struct {
	ID       string       `gorm:"primaryKey;size:36" json:"object_id"`
	TenantID string       `gorm:"size:36;index"      json:"tenant_id"`
	OwnerID  string       `gorm:"size:255;index"     json:"owner_id"`
	Title    string       `gorm:"size:512"           json:"title"`
	DocType  string       `gorm:"size:128;index"     json:"doc_type"`
	Status   ObjectStatus `gorm:"size:16;index"      json:"status"`

	CurrentVersionID string `gorm:"size:36" json:"current_version_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
