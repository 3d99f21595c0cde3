package types

// BulkAction is a batch state transition over logical objects.
type BulkAction string

const (
	BulkActionArchive BulkAction = "archive"
	BulkActionAddTag  BulkAction = "add_tag"
)

// BulkActionRequest applies one action to a set of objects. TagID is
// required for add_tag only.
type BulkActionRequest struct {
	ObjectIDs []string   `binding:"required,min=1" json:"object_ids"`
	Action    BulkAction `binding:"required"       json:"action"`
	TagID     string     `json:"tag_id,omitempty"`
}

// BulkItemResult reports the outcome for a single object id. Bulk actions
// are per-id partial success, never all-or-nothing.
type BulkItemResult struct {
	ObjectID string `json:"object_id"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// BulkActionResponse summarizes a bulk action.
type BulkActionResponse struct {
	Updated int              `json:"updated"`
	Results []BulkItemResult `json:"results"`
}
