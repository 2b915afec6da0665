// Package session defines the domain types shared between the result cache,
// the search engine, and the navigation controller.
package session

import (
	"time"

	"github.com/usestring/scribebot/pkg/blossom"
)

// MessageRef identifies the chat message that displays a result page.
// The message ID doubles as the result cache key.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Query holds everything needed to repeat a search. All fields except
// DisplayPage are fixed once the search starts.
type Query struct {
	// Text is the case-insensitive substring to search for.
	Text string
	// AuthorID limits results to one volunteer, if set.
	AuthorID *int
	// After and Before bound the creation time of matching records, if set.
	After  *time.Time
	Before *time.Time
	// TimeframeLabel is the human-readable form of the time bounds,
	// e.g. "from 2 weeks ago until now".
	TimeframeLabel string
	// RequesterID is the user who started the search. Only they may navigate.
	RequesterID string
	// DisplayPage is the 0-based page currently shown to the user.
	DisplayPage int
}

// Entry is the cached state behind one navigable result message.
type Entry struct {
	Ref   MessageRef
	Query Query
	// LastUpdated is the time of the last write. Eviction removes the entry
	// with the smallest LastUpdated; reads do not refresh it.
	LastUpdated time.Time
	// Batch is the last page fetched from the corpus provider.
	Batch *blossom.TranscriptionPage
	// BatchIndex is the 0-based index of Batch within the full result set.
	BatchIndex int
}

// Clone returns a deep copy of the entry. The cache hands out clones so that
// callers cannot mutate cached state in place.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Query.AuthorID != nil {
		id := *e.Query.AuthorID
		clone.Query.AuthorID = &id
	}
	if e.Query.After != nil {
		t := *e.Query.After
		clone.Query.After = &t
	}
	if e.Query.Before != nil {
		t := *e.Query.Before
		clone.Query.Before = &t
	}
	if e.Batch != nil {
		batch := *e.Batch
		batch.Results = make([]blossom.Transcription, len(e.Batch.Results))
		copy(batch.Results, e.Batch.Results)
		if e.Batch.Next != nil {
			next := *e.Batch.Next
			batch.Next = &next
		}
		if e.Batch.Previous != nil {
			prev := *e.Batch.Previous
			batch.Previous = &prev
		}
		clone.Batch = &batch
	}
	return &clone
}
