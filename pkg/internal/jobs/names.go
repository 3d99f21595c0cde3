package jobs

// Job names, stable identifiers for the ops endpoints.
const (
	JobUploadGC  = "upload.gc"
	JobHashAudit = "audit.hash"
)

// Cron expressions.
const (
	// CronUploadGC collects expired staging records every hour at :20.
	CronUploadGC = "20 * * * *"
	// CronHashAudit samples canonical blobs nightly, off peak.
	CronHashAudit = "30 3 * * *"
)
