package twitter

// User is an upstream account resolved from a handle. Immutable once resolved.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// userLookup is the wire envelope of the user-by-username endpoint.
type userLookup struct {
	Data   User         `json:"data"`
	Errors []apiProblem `json:"errors"`
}

// apiProblem is a single entry of the upstream partial-error array.
type apiProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

// Tweet is one raw liked-post item as received from the upstream source.
// Fields stay unparsed strings; normalization into the typed record happens
// in the query engine, which decides how to handle malformed items.
type Tweet struct {
	ID              string `json:"id"`
	CreatedAt       string `json:"created_at"`
	AuthorID        string `json:"author_id"`
	Text            string `json:"text"`
	InReplyToUserID string `json:"in_reply_to_user_id,omitempty"`
}

// UserRef is an author entry embedded in a page's includes block.
type UserRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Includes carries referenced author metadata inline with each page so that
// no per-author follow-up lookups are needed.
type Includes struct {
	Users []UserRef `json:"users"`
}

// PageMeta carries pagination state for a liked-posts page.
type PageMeta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token,omitempty"`
}

// LikedPage is one page of a user's liked-post history, newest first.
type LikedPage struct {
	Data     []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
	Meta     PageMeta `json:"meta"`
}

// NextCursor returns the cursor for the page after this one, or the zero
// cursor when the upstream did not supply a continuation token.
func (p *LikedPage) NextCursor() Cursor {
	return Cursor(p.Meta.NextToken)
}
