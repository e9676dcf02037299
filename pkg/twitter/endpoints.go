package twitter

import (
	"fmt"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the production upstream API root.
const DefaultBaseURL = "https://api.twitter.com/2"

// tweetFields are the per-item fields a stats query needs.
const tweetFields = "created_at,author_id,in_reply_to_user_id"

// userByUsernameURL builds the identity-lookup endpoint URL.
func userByUsernameURL(baseURL, handle string) string {
	return fmt.Sprintf("%s/users/by/username/%s", baseURL, url.PathEscape(handle))
}

// likedTweetsURL builds the paginated liked-posts endpoint URL. The author
// directory fragment is requested inline via the author_id expansion.
func likedTweetsURL(baseURL, userID string, pageSize int, cursor Cursor) string {
	params := url.Values{}
	params.Set("tweet.fields", tweetFields)
	params.Set("expansions", "author_id")
	params.Set("user.fields", "name,username")
	params.Set("max_results", strconv.Itoa(pageSize))
	if !cursor.IsZero() {
		params.Set("pagination_token", cursor.String())
	}
	return fmt.Sprintf("%s/users/%s/liked_tweets?%s", baseURL, url.PathEscape(userID), params.Encode())
}
