package model

import (
	"time"
)

// Tag is ordinary reference data applied to Objects by bulk actions.
type Tag struct {
	ID       string `gorm:"primaryKey;size:36"                      json:"tag_id"`
	TenantID string `gorm:"size:36;index:idx_tag_tenant_name,unique" json:"tenant_id"`
	Name     string `gorm:"size:255;index:idx_tag_tenant_name,unique" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

// ObjectTag links Objects to Tags.
type ObjectTag struct {
	ObjectID  string    `gorm:"primaryKey;size:36" json:"object_id"`
	TagID     string    `gorm:"primaryKey;size:36" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// All lists every model for migration.
func All() []any {
	return []any{
		&Upload{},
		&Object{},
		&Version{},
		&DuplicateGroup{},
		&DuplicateGroupVersion{},
		&Tag{},
		&ObjectTag{},
	}
}
