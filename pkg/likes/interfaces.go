package likes

import (
	"context"

	"likestats/pkg/twitter"
)

// TwitterClient defines the upstream operations the query engine depends on.
type TwitterClient interface {
	ResolveUser(ctx context.Context, handle string) (*twitter.User, error)
	FetchLikedPage(ctx context.Context, userID string, cursor twitter.Cursor) (*twitter.LikedPage, error)
}
