// Package stats holds the normalized record model and the pure aggregation
// step that folds an accumulated record collection into a summary.
package stats

import "time"

// Record is one normalized liked post. Immutable after creation. Collections
// of records preserve the upstream ordering, newest first.
type Record struct {
	ID              int64
	CreatedAt       time.Time
	AuthorID        string
	InReplyToUserID string
}

// Directory maps author ids to display names. It is accumulated page by page
// with last-write-wins merge semantics; values are not expected to change
// across pages for the same id.
type Directory map[string]string

// DisplayName resolves an author id, falling back to the raw id when the
// directory has no usable entry.
func (d Directory) DisplayName(id string) string {
	if name, ok := d[id]; ok && name != "" {
		return name
	}
	return id
}
