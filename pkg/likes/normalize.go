package likes

import (
	"fmt"
	"strconv"
	"time"

	"likestats/pkg/stats"
	"likestats/pkg/twitter"
)

// MalformedRecordError indicates that a raw item is missing a required field
// or carries an unparseable value. The engine skips the single item and
// continues the page; one bad record never aborts a query.
type MalformedRecordError struct {
	ItemID string
	Field  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record %q: field %s: %v", e.ItemID, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed record %q: field %s missing", e.ItemID, e.Field)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Normalize converts one raw liked-post item into the internal record. Pure
// and total over well-formed input. The reply-target field is optional and
// stays empty when absent.
func Normalize(item twitter.Tweet) (stats.Record, error) {
	if item.ID == "" {
		return stats.Record{}, &MalformedRecordError{Field: "id"}
	}

	id, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return stats.Record{}, &MalformedRecordError{ItemID: item.ID, Field: "id", Err: err}
	}

	if item.CreatedAt == "" {
		return stats.Record{}, &MalformedRecordError{ItemID: item.ID, Field: "created_at"}
	}
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return stats.Record{}, &MalformedRecordError{ItemID: item.ID, Field: "created_at", Err: err}
	}

	if item.AuthorID == "" {
		return stats.Record{}, &MalformedRecordError{ItemID: item.ID, Field: "author_id"}
	}

	return stats.Record{
		ID:              id,
		CreatedAt:       createdAt,
		AuthorID:        item.AuthorID,
		InReplyToUserID: item.InReplyToUserID,
	}, nil
}
