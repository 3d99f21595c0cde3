// Package types declares the request/response structs of the vault API and
// the error taxonomy shared by services and handlers.
package types

// BeginUploadRequest asks for a presigned PUT URL into quarantine.
// DeclaredHash is optional and advisory: the pipeline verifies it against the
// server-side digest and never uses it as identity.
type BeginUploadRequest struct {
	FileName     string `binding:"required"  json:"file_name"`
	ContentType  string `json:"content_type,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"    rule:"min=0"`
	DeclaredHash string `json:"declared_hash,omitempty" rule:"omitempty,len=64,hexadecimal"`
}

// BeginUploadResponse carries the staging record id and the presigned URL.
type BeginUploadResponse struct {
	UploadID         string `json:"upload_id"`
	PresignedPutURL  string `json:"presigned_put_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// MarkUploadedResponse confirms the client's assertion that bytes were
// written to quarantine.
type MarkUploadedResponse struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

// IngestResponse is the outcome of finalize. DuplicateGroupID is set only
// when the content matched existing versions in the tenant.
type IngestResponse struct {
	ObjectID         string `json:"object_id"`
	VersionID        string `json:"version_id"`
	DuplicateGroupID string `json:"duplicate_group_id,omitempty"`
	ContentHash      string `json:"content_hash"`
}

// ObjectURLResponse carries a presigned GET URL for canonical content.
type ObjectURLResponse struct {
	ObjectID         string `json:"object_id"`
	VersionID        string `json:"version_id"`
	GetURL           string `json:"get_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}
