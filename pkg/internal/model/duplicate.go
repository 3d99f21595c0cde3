package model

import (
	"time"
)

// DuplicateReason distinguishes byte-identical clusters from heuristic ones.
type DuplicateReason string

const (
	DuplicateReasonExact DuplicateReason = "exact"
	DuplicateReasonNear  DuplicateReason = "near"
)

// DuplicateGroup clusters Versions believed to carry the same content.
// KeepVersionID, when set, names the member the tenant chose as canonical;
// membership is enforced at resolution time.
type DuplicateGroup struct {
	ID       string          `gorm:"primaryKey;size:36" json:"group_id"`
	TenantID string          `gorm:"size:36;index"      json:"tenant_id"`
	Reason   DuplicateReason `gorm:"size:8"             json:"reason"`

	KeepVersionID string `gorm:"size:36" json:"keep_version_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DuplicateGroupVersion is the many-to-many membership between groups and
// versions. Rows are removed when a group is dismissed; the Versions stay.
type DuplicateGroupVersion struct {
	GroupID   string    `gorm:"primaryKey;size:36" json:"group_id"`
	VersionID string    `gorm:"primaryKey;size:36;index" json:"version_id"`
	CreatedAt time.Time `json:"created_at"`
}
