package queue

import "time"

// VersionRef identifies a committed version and its content identity.
type VersionRef struct {
	TenantID    string `json:"tenant_id"`
	ObjectID    string `json:"object_id"`
	VersionID   string `json:"version_id"`
	ContentHash string `json:"content_hash,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// UploadStagedPayload is published when a presigned upload URL is issued.
type UploadStagedPayload struct {
	TenantID  string    `json:"tenant_id"`
	UploadID  string    `json:"upload_id"`
	OwnerID   string    `json:"owner_id"`
	FileName  string    `json:"file_name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadFailedPayload is published when finalize marks an upload failed.
type UploadFailedPayload struct {
	TenantID string `json:"tenant_id"`
	UploadID string `json:"upload_id"`
	Cause    string `json:"cause,omitempty"`
}

// VersionIngestedPayload is published after a successful finalize.
type VersionIngestedPayload struct {
	Version  VersionRef `json:"version"`
	UploadID string     `json:"upload_id"`
	GroupID  string     `json:"duplicate_group_id,omitempty"`
}

// DuplicateDetectedPayload is published when ingest joins or creates a group.
type DuplicateDetectedPayload struct {
	TenantID string   `json:"tenant_id"`
	GroupID  string   `json:"group_id"`
	Reason   string   `json:"reason"`
	Members  []string `json:"member_version_ids"`
}

// DuplicateResolvedPayload is published on keep-best.
type DuplicateResolvedPayload struct {
	TenantID      string `json:"tenant_id"`
	GroupID       string `json:"group_id"`
	KeepVersionID string `json:"keep_version_id"`
	RepointedID   string `json:"repointed_object_id,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
}

// DuplicateDismissedPayload is published when a group is dismissed.
type DuplicateDismissedPayload struct {
	TenantID string `json:"tenant_id"`
	GroupID  string `json:"group_id"`
}

// ObjectsBulkUpdatedPayload is published after a bulk action.
type ObjectsBulkUpdatedPayload struct {
	TenantID string   `json:"tenant_id"`
	Action   string   `json:"action"`
	Updated  []string `json:"updated_object_ids"`
}

// AuditMismatch is one integrity finding.
type AuditMismatch struct {
	VersionID    string `json:"version_id"`
	ExpectedHash string `json:"expected_hash"`
	ActualHash   string `json:"actual_hash"`
}

// AuditCompletedPayload is published after a hash audit run.
type AuditCompletedPayload struct {
	Checked    int             `json:"checked"`
	Mismatches []AuditMismatch `json:"mismatches,omitempty"`
	Partial    bool            `json:"partial"`
	Timestamp  time.Time       `json:"timestamp"`
}
