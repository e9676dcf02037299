package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int64, created time.Time, authorID, inReplyTo string) Record {
	return Record{
		ID:              id,
		CreatedAt:       created,
		AuthorID:        authorID,
		InReplyToUserID: inReplyTo,
	}
}

func day(d int) time.Time {
	return time.Date(2023, time.March, d, 10, 0, 0, 0, time.UTC)
}

func TestAggregateEmptyInput(t *testing.T) {
	summary, err := Aggregate(nil, Directory{}, "u1", 10)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAggregateBasicCounts(t *testing.T) {
	records := []Record{
		rec(1, day(3), "a1", ""),
		rec(2, day(2), "a2", ""),
		rec(3, day(1), "a1", ""),
	}
	dir := Directory{"a1": "alice", "a2": "bob", "u1": "target"}

	summary, err := Aggregate(records, dir, "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, "target", summary.User)
	assert.Equal(t, 3, summary.TotalLikes)
	assert.Equal(t, 2, summary.DistinctAuthors)
	assert.Equal(t, 0, summary.RepliesLiked)
	assert.Equal(t, 0.0, summary.ReplyShare)
}

func TestAggregateReplyShare(t *testing.T) {
	records := []Record{
		rec(1, day(1), "a1", "u1"),
		rec(2, day(2), "a2", ""),
		rec(3, day(3), "a3", "someone_else"),
	}

	summary, err := Aggregate(records, Directory{}, "u1", 10)
	require.NoError(t, err)

	// Only replies to the target user count; 1 of 3 rounds to 33.33.
	assert.Equal(t, 1, summary.RepliesLiked)
	assert.Equal(t, 33.33, summary.ReplyShare)
}

func TestAggregateEmptyReplyTargetNeverCounts(t *testing.T) {
	records := []Record{
		rec(1, day(1), "a1", ""),
		rec(2, day(2), "a2", ""),
	}

	summary, err := Aggregate(records, Directory{}, "", 10)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.RepliesLiked)
}

func TestAggregateTopAuthors(t *testing.T) {
	records := []Record{
		rec(1, day(1), "a1", ""),
		rec(2, day(2), "a1", ""),
		rec(3, day(3), "a1", ""),
		rec(4, day(4), "a2", ""),
		rec(5, day(5), "a2", ""),
		rec(6, day(6), "a3", ""),
	}
	dir := Directory{"a1": "alice", "a2": "bob", "a3": "carol"}

	summary, err := Aggregate(records, dir, "u1", 2)
	require.NoError(t, err)

	require.Len(t, summary.TopAuthors, 2)
	assert.Equal(t, AuthorCount{Name: "alice", Count: 3}, summary.TopAuthors[0])
	assert.Equal(t, AuthorCount{Name: "bob", Count: 2}, summary.TopAuthors[1])
}

func TestAggregateTopAuthorsTieOrderIsStable(t *testing.T) {
	records := []Record{
		rec(1, day(1), "a1", ""),
		rec(2, day(2), "a2", ""),
		rec(3, day(3), "a1", ""),
		rec(4, day(4), "a2", ""),
	}
	dir := Directory{"a1": "alice", "a2": "bob"}

	// a1 and a2 tie at 2; a1 appeared first so it stays first.
	summary, err := Aggregate(records, dir, "u1", 10)
	require.NoError(t, err)

	require.Len(t, summary.TopAuthors, 2)
	assert.Equal(t, "alice", summary.TopAuthors[0].Name)
	assert.Equal(t, "bob", summary.TopAuthors[1].Name)
}

func TestAggregateUnknownAuthorFallsBackToID(t *testing.T) {
	records := []Record{
		rec(1, day(1), "9999", ""),
	}

	summary, err := Aggregate(records, Directory{}, "u1", 10)
	require.NoError(t, err)

	require.Len(t, summary.TopAuthors, 1)
	assert.Equal(t, "9999", summary.TopAuthors[0].Name)
	assert.Equal(t, "u1", summary.User)
}

func TestAggregateDateRange(t *testing.T) {
	records := []Record{
		rec(1, time.Date(2023, time.November, 20, 8, 0, 0, 0, time.UTC), "a1", ""),
		rec(2, time.Date(2023, time.February, 5, 23, 0, 0, 0, time.UTC), "a2", ""),
		rec(3, time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC), "a3", ""),
	}

	summary, err := Aggregate(records, Directory{}, "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, "05 February 2023", summary.FirstLikeDate)
	assert.Equal(t, "20 November 2023", summary.LastLikeDate)
}

func TestAggregateSingleRecord(t *testing.T) {
	records := []Record{rec(1, day(7), "a1", "u1")}

	summary, err := Aggregate(records, Directory{"a1": "alice"}, "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalLikes)
	assert.Equal(t, 1, summary.DistinctAuthors)
	assert.Equal(t, 100.0, summary.ReplyShare)
	assert.Equal(t, summary.FirstLikeDate, summary.LastLikeDate)
}

func TestAggregateIsDeterministic(t *testing.T) {
	records := []Record{
		rec(1, day(1), "a1", "u1"),
		rec(2, day(2), "a2", ""),
		rec(3, day(3), "a1", ""),
		rec(4, day(4), "a3", ""),
	}
	dir := Directory{"a1": "alice", "a2": "bob", "a3": "carol"}

	first, err := Aggregate(records, dir, "u1", 10)
	require.NoError(t, err)
	second, err := Aggregate(records, dir, "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDirectoryDisplayName(t *testing.T) {
	dir := Directory{"a1": "alice", "a2": ""}

	assert.Equal(t, "alice", dir.DisplayName("a1"))
	assert.Equal(t, "a2", dir.DisplayName("a2"))
	assert.Equal(t, "missing", dir.DisplayName("missing"))
}
