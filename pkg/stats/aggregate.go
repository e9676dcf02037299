package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput is returned when Aggregate is called with no records. The
// query engine routes zero-record outcomes before aggregation, so hitting
// this is a caller bug rather than a user-facing condition.
var ErrEmptyInput = errors.New("stats: no records to aggregate")

// dateFormat renders calendar dates the way the UI expects, time of day
// discarded.
const dateFormat = "02 January 2006"

// AuthorCount is one entry of the top-authors list.
type AuthorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary holds the computed like statistics. Derived once, never mutated
// after construction.
type Summary struct {
	User            string        `json:"user"`
	TotalLikes      int           `json:"total_likes"`
	DistinctAuthors int           `json:"distinct_authors"`
	RepliesLiked    int           `json:"replies_liked"`
	ReplyShare      float64       `json:"reply_share"`
	TopAuthors      []AuthorCount `json:"top_authors"`
	FirstLikeDate   string        `json:"first_like_date"`
	LastLikeDate    string        `json:"last_like_date"`
}

// Aggregate folds a record collection into a Summary. Pure function of its
// inputs: calling it twice on the same inputs yields identical results.
// Replies liked are records answering the target user directly. Top authors
// are sorted by descending count with ties broken by first appearance,
// truncated to topK; names resolve through the directory with raw-id
// fallback.
func Aggregate(records []Record, authors Directory, targetUserID string, topK int) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	total := len(records)
	replies := 0
	counts := make(map[string]int, total)
	firstSeen := make([]string, 0, total)

	first := records[0].CreatedAt
	last := records[0].CreatedAt

	for _, rec := range records {
		if _, seen := counts[rec.AuthorID]; !seen {
			firstSeen = append(firstSeen, rec.AuthorID)
		}
		counts[rec.AuthorID]++

		if rec.InReplyToUserID != "" && rec.InReplyToUserID == targetUserID {
			replies++
		}

		if rec.CreatedAt.Before(first) {
			first = rec.CreatedAt
		}
		if rec.CreatedAt.After(last) {
			last = rec.CreatedAt
		}
	}

	share := float64(replies) / float64(total) * 100
	share = math.Round(share*100) / 100

	top := make([]AuthorCount, 0, len(firstSeen))
	for _, authorID := range firstSeen {
		top = append(top, AuthorCount{
			Name:  authors.DisplayName(authorID),
			Count: counts[authorID],
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if topK > 0 && len(top) > topK {
		top = top[:topK]
	}

	return &Summary{
		User:            authors.DisplayName(targetUserID),
		TotalLikes:      total,
		DistinctAuthors: len(counts),
		RepliesLiked:    replies,
		ReplyShare:      share,
		TopAuthors:      top,
		FirstLikeDate:   first.Format(dateFormat),
		LastLikeDate:    last.Format(dateFormat),
	}, nil
}
