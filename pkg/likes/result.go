package likes

import "likestats/pkg/stats"

// Status is the terminal status of one stats query.
type Status string

const (
	// StatusOK means the full liked-post history for the window was read.
	StatusOK Status = "ok"
	// StatusPartial means pagination ended early (rate limit, exhausted
	// retries) but stats were computed over what was accumulated.
	StatusPartial Status = "partial"
	// StatusNotFound means the user does not exist or has no likes in the
	// target window.
	StatusNotFound Status = "not_found"
	// StatusForbidden means the liked-post history is not accessible.
	StatusForbidden Status = "forbidden"
)

// QueryResult is the terminal value of one stats query. Stats is nil for
// StatusNotFound and StatusForbidden.
type QueryResult struct {
	Status Status         `json:"status"`
	Stats  *stats.Summary `json:"stats,omitempty"`
}
