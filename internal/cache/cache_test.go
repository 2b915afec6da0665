package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/scribebot/internal/session"
	"github.com/usestring/scribebot/pkg/blossom"
)

func entryFor(text string) *session.Entry {
	return &session.Entry{
		Query: session.Query{Text: text, RequesterID: "user"},
		Batch: &blossom.TranscriptionPage{
			Count:   12,
			Results: []blossom.Transcription{{ID: 1, Text: "some " + text}},
		},
	}
}

func at(day int) time.Time {
	return time.Date(2021, 1, day, 0, 0, 0, 0, time.UTC)
}

func TestNewResultCache_InvalidCapacity(t *testing.T) {
	_, err := NewResultCache(0)
	assert.Error(t, err)

	_, err = NewResultCache(-3)
	assert.Error(t, err)
}

func TestResultCache_EvictsOldestWrite(t *testing.T) {
	c, err := NewResultCache(1)
	require.NoError(t, err)

	c.Set("abc", entryFor("aaa"), at(3))
	c.Set("def", entryFor("ddd"), at(4))

	_, ok := c.Get("abc")
	assert.False(t, ok)

	got, ok := c.Get("def")
	require.True(t, ok)
	assert.Equal(t, "ddd", got.Query.Text)
	assert.Equal(t, 1, c.Len())
}

func TestResultCache_CapacityNeverExceeded(t *testing.T) {
	const capacity = 3
	c, err := NewResultCache(capacity)
	require.NoError(t, err)

	for i := 0; i < capacity+1; i++ {
		c.Set(fmt.Sprintf("msg-%d", i), entryFor("q"), at(i+1))
		assert.LessOrEqual(t, c.Len(), capacity)
	}

	// msg-0 carried the smallest timestamp at the time of the overflowing
	// insert, so it is the one that went.
	_, ok := c.Get("msg-0")
	assert.False(t, ok)
	for i := 1; i < capacity+1; i++ {
		_, ok := c.Get(fmt.Sprintf("msg-%d", i))
		assert.True(t, ok, "msg-%d should survive", i)
	}
}

func TestResultCache_ReadDoesNotRefreshEvictionOrder(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	c.Set("old", entryFor("old"), at(1))
	c.Set("new", entryFor("new"), at(2))

	// Hammer the old entry with reads. If reads refreshed the timestamp this
	// would make "old" the most recently used entry.
	for i := 0; i < 50; i++ {
		_, ok := c.Get("old")
		require.True(t, ok)
	}

	c.Set("newer", entryFor("newer"), at(3))

	_, ok := c.Get("old")
	assert.False(t, ok, "read entry must still be evicted first")
	_, ok = c.Get("new")
	assert.True(t, ok)
	_, ok = c.Get("newer")
	assert.True(t, ok)
}

func TestResultCache_OverwriteRefreshesTimestamp(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	c.Set("a", entryFor("a"), at(1))
	c.Set("b", entryFor("b"), at(2))
	c.Set("a", entryFor("a2"), at(3))
	c.Set("c", entryFor("c"), at(4))

	// "b" is now the oldest write and must be the one evicted.
	_, ok := c.Get("b")
	assert.False(t, ok)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a2", got.Query.Text)
}

func TestResultCache_EvictionTieBreaksOnKey(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	same := at(5)
	c.Set("bbb", entryFor("b"), same)
	c.Set("aaa", entryFor("a"), same)
	c.Set("ccc", entryFor("c"), at(6))

	_, ok := c.Get("aaa")
	assert.False(t, ok, "smaller key loses the tie")
	_, ok = c.Get("bbb")
	assert.True(t, ok)
}

func TestResultCache_GetReturnsCopy(t *testing.T) {
	c, err := NewResultCache(4)
	require.NoError(t, err)

	c.Set("msg", entryFor("query"), at(1))

	got, ok := c.Get("msg")
	require.True(t, ok)
	got.Query.Text = "mutated"
	got.Query.DisplayPage = 99
	got.Batch.Results[0].Text = "mutated"
	got.Batch.Count = 0

	fresh, ok := c.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "query", fresh.Query.Text)
	assert.Equal(t, 0, fresh.Query.DisplayPage)
	assert.Equal(t, "some query", fresh.Batch.Results[0].Text)
	assert.Equal(t, 12, fresh.Batch.Count)
}

func TestResultCache_SetDetachesFromCaller(t *testing.T) {
	c, err := NewResultCache(4)
	require.NoError(t, err)

	entry := entryFor("query")
	c.Set("msg", entry, at(1))
	entry.Query.Text = "mutated"
	entry.Batch.Count = 0

	got, ok := c.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "query", got.Query.Text)
	assert.Equal(t, 12, got.Batch.Count)
}

func TestVolunteerCache(t *testing.T) {
	c, err := NewVolunteerCache(2)
	require.NoError(t, err)

	c.Put("alice", &blossom.Volunteer{ID: 1, Username: "alice"})
	c.Put("bob", &blossom.Volunteer{ID: 2, Username: "bob"})

	v, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 1, v.ID)

	// Third insert evicts the least recently used entry ("bob").
	c.Put("carol", &blossom.Volunteer{ID: 3, Username: "carol"})
	_, ok = c.Get("bob")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}
