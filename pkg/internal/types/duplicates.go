package types

import "time"

// VersionSummary is the member view inside a duplicate group listing.
type VersionSummary struct {
	VersionID   string    `json:"version_id"`
	ObjectID    string    `json:"object_id"`
	ContentHash string    `json:"content_hash"`
	SizeBytes   int64     `json:"size_bytes"`
	MimeType    string    `json:"mime_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DuplicateGroupItem is one group with its members, newest first.
type DuplicateGroupItem struct {
	GroupID       string           `json:"group_id"`
	Reason        string           `json:"reason"`
	KeepVersionID string           `json:"keep_version_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Members       []VersionSummary `json:"members"`
}

// ListDuplicateGroupsRequest paginates the tenant's groups.
type ListDuplicateGroupsRequest struct {
	Limit  int `form:"limit"  rule:"min=0,max=200"`
	Offset int `form:"offset" rule:"min=0"`
}

// ListDuplicateGroupsResponse carries one page plus the total group count.
type ListDuplicateGroupsResponse struct {
	Items []DuplicateGroupItem `json:"items"`
	Total int64                `json:"total"`
}

// DismissResponse reports whether the group row was removed.
type DismissResponse struct {
	Deleted bool `json:"deleted"`
}

// KeepBestRequest designates the canonical version for a group.
type KeepBestRequest struct {
	VersionID string `binding:"required" json:"version_id"`
}

// KeepBestResponse confirms the resolution.
type KeepBestResponse struct {
	GroupID           string `json:"group_id"`
	KeepVersionID     string `json:"keep_version_id"`
	RepointedObjectID string `json:"repointed_object_id,omitempty"`
}
