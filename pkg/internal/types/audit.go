package types

import "time"

// HashAuditRequest bounds one audit run. Zero SampleSize means the
// configured default.
type HashAuditRequest struct {
	SampleSize int `json:"sample_size,omitempty" rule:"min=0,max=10000"`
}

// HashMismatch is one integrity finding: the stored digest no longer
// matches the canonical bytes. Findings are reported, never auto-repaired.
type HashMismatch struct {
	VersionID    string `json:"version_id"`
	TenantID     string `json:"tenant_id"`
	ExpectedHash string `json:"expected_hash"`
	ActualHash   string `json:"actual_hash"`
}

// HashAuditReport is the outcome of one run. Partial is true when the
// wall-clock budget expired before the sample was exhausted.
type HashAuditReport struct {
	Checked    int            `json:"checked"`
	Mismatches []HashMismatch `json:"mismatches"`
	Partial    bool           `json:"partial"`
	Timestamp  time.Time      `json:"timestamp"`
}
