package blossom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// TranscriptionSearchOptions contains the filters for a transcription search.
type TranscriptionSearchOptions struct {
	// TextContains is the case-insensitive substring to search for.
	TextContains string
	// AuthorID limits results to transcriptions by the given volunteer.
	AuthorID *int
	// CreatedAfter limits results to transcriptions created at or after this time.
	CreatedAfter *time.Time
	// CreatedBefore limits results to transcriptions created at or before this time.
	CreatedBefore *time.Time
	// Page is the 1-indexed page to fetch.
	Page int
	// PageSize is the number of records per page.
	PageSize int
}

// SearchTranscriptions searches for transcriptions whose text contains the
// given substring, newest first. Transcriptions without a URL are excluded
// because they cannot be linked in results.
func (c *Client) SearchTranscriptions(ctx context.Context, opts TranscriptionSearchOptions) (*TranscriptionPage, error) {
	query := make(url.Values)
	query.Set("text__icontains", opts.TextContains)
	query.Set("url__isnull", "false")
	query.Set("ordering", "-create_time")
	query.Set("page", strconv.Itoa(opts.Page))
	query.Set("page_size", strconv.Itoa(opts.PageSize))
	if opts.AuthorID != nil {
		query.Set("author", strconv.Itoa(*opts.AuthorID))
	}
	if opts.CreatedAfter != nil {
		query.Set("create_time__gte", opts.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if opts.CreatedBefore != nil {
		query.Set("create_time__lte", opts.CreatedBefore.UTC().Format(time.RFC3339))
	}

	var page TranscriptionPage
	if err := c.get(ctx, "/transcription/", query, &page); err != nil {
		return nil, fmt.Errorf("searching transcriptions: %w", err)
	}
	return &page, nil
}
