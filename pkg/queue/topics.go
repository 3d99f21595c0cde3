// Topic constants. Naming: mf.<domain>.<action>, kept stable and backward
// compatible. Domains: upload (staging), version (canonical content),
// duplicate (grouping/resolution), objects (bulk mutations), audit.
package queue

const (
	// Staging area.
	TopicUploadStaged = "mf.upload.staged"   // presigned URL issued, staging record created
	TopicUploadFailed = "mf.upload.failed"   // finalize marked the upload failed
	TopicUploadGC     = "mf.upload.gc"       // expired staging records collected

	// Canonical content.
	TopicVersionIngested = "mf.version.ingested" // version committed to canonical storage

	// Duplicate lifecycle.
	TopicDuplicateDetected  = "mf.duplicate.detected"  // ingest attached a version to a group
	TopicDuplicateResolved  = "mf.duplicate.resolved"  // keep-best chose a canonical version
	TopicDuplicateDismissed = "mf.duplicate.dismissed" // tenant declared non-duplicates

	// Bulk object mutations.
	TopicObjectsBulkUpdated = "mf.objects.bulk_updated"

	// Integrity audit.
	TopicAuditCompleted = "mf.audit.completed"
)
