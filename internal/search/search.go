// Package search drives interactive searches against the transcription
// corpus: it fetches result batches from the provider, keeps them in the
// bounded result cache, and renders the display page the user asked for.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/scribebot/internal/cache"
	"github.com/usestring/scribebot/internal/paging"
	"github.com/usestring/scribebot/internal/render"
	"github.com/usestring/scribebot/internal/session"
	"github.com/usestring/scribebot/pkg/blossom"
)

// Provider is the corpus API surface the engine needs.
type Provider interface {
	SearchTranscriptions(ctx context.Context, opts blossom.TranscriptionSearchOptions) (*blossom.TranscriptionPage, error)
	FindVolunteer(ctx context.Context, username string) (*blossom.Volunteer, error)
}

// Engine orchestrates searches: one provider fetch covers several display
// pages, and navigation within a fetched batch never touches the network.
type Engine struct {
	provider   Provider
	results    *cache.ResultCache
	volunteers *cache.VolunteerCache
	pager      *paging.Pager
	renderer   *render.Renderer

	// fetchGroup deduplicates concurrent provider fetches for the same
	// message and batch, so two rapid navigation events cost one request.
	fetchGroup singleflight.Group

	now func() time.Time
}

// NewEngine creates a search engine.
func NewEngine(provider Provider, results *cache.ResultCache, volunteers *cache.VolunteerCache, pager *paging.Pager, renderer *render.Renderer) *Engine {
	return &Engine{
		provider:   provider,
		results:    results,
		volunteers: volunteers,
		pager:      pager,
		renderer:   renderer,
		now:        time.Now,
	}
}

// StartSearch runs a fresh search and renders its first page. The rendered
// message identified by ref becomes the session key for later navigation.
// Sessions whose results fit on a single page are not cached; there is
// nothing to navigate.
func (e *Engine) StartSearch(ctx context.Context, ref session.MessageRef, query session.Query) (*render.Page, error) {
	if query.DisplayPage != 0 {
		return nil, fmt.Errorf("new search must start at display page 0, got %d", query.DisplayPage)
	}
	if strings.TrimSpace(query.Text) == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}

	searchID := uuid.NewString()
	start := e.now()

	batchIndex, offset := e.pager.Map(query.DisplayPage)
	batch, err := e.fetchBatch(ctx, ref.MessageID, query, batchIndex)
	if err != nil {
		return nil, err
	}

	slog.Info("search completed",
		slog.String("search_id", searchID),
		slog.String("requester_id", query.RequesterID),
		slog.Int("count", batch.Count),
		slog.Duration("duration", e.now().Sub(start)),
	)

	if batch.Count == 0 {
		return e.renderer.NoResults(query.Text), nil
	}

	if batch.Count > e.pager.DisplayPageSize() {
		e.results.Set(ref.MessageID, &session.Entry{
			Ref:        ref,
			Query:      query,
			Batch:      batch,
			BatchIndex: batchIndex,
		}, e.now())
	}

	lastPage := e.pager.LastDisplayPage(batch.Count)
	return e.renderer.ResultsPage(query, batch.Count,
		e.slicePage(batch, offset), offset, query.DisplayPage, lastPage), nil
}

// RenderAtPage re-renders a cached session at newPage. The second return is
// false when no session exists under key (the session is stale or was
// evicted); that is a silent no-op, not an error. The provider is only
// called when newPage lies outside the cached batch.
func (e *Engine) RenderAtPage(ctx context.Context, key string, newPage int) (*render.Page, bool, error) {
	entry, ok := e.results.Get(key)
	if !ok {
		return nil, false, nil
	}

	batchIndex, offset := e.pager.Map(newPage)
	batch := entry.Batch
	if batch == nil || entry.BatchIndex != batchIndex {
		fetched, err := e.fetchBatch(ctx, key, entry.Query, batchIndex)
		if err != nil {
			return nil, true, err
		}
		batch = fetched
	}

	entry.Query.DisplayPage = newPage
	entry.Batch = batch
	entry.BatchIndex = batchIndex
	e.results.Set(key, entry, e.now())

	if batch.Count == 0 {
		return e.renderer.NoResults(entry.Query.Text), true, nil
	}

	lastPage := e.pager.LastDisplayPage(batch.Count)
	globalOffset := batchIndex*e.pager.RequestBatchSize() + offset
	return e.renderer.ResultsPage(entry.Query, batch.Count,
		e.slicePage(batch, offset), globalOffset, newPage, lastPage), true, nil
}

// ResolveAuthor maps a volunteer username to their ID, via the LRU cache.
func (e *Engine) ResolveAuthor(ctx context.Context, username string) (*int, error) {
	if v, ok := e.volunteers.Get(username); ok {
		return &v.ID, nil
	}

	v, err := e.provider.FindVolunteer(ctx, username)
	if err != nil {
		return nil, err
	}
	e.volunteers.Put(username, v)
	return &v.ID, nil
}

// fetchBatch fetches one request batch from the provider. Concurrent calls
// for the same message and batch share a single request.
func (e *Engine) fetchBatch(ctx context.Context, key string, query session.Query, batchIndex int) (*blossom.TranscriptionPage, error) {
	result, err, _ := e.fetchGroup.Do(fmt.Sprintf("%s:%d", key, batchIndex), func() (any, error) {
		return e.provider.SearchTranscriptions(ctx, blossom.TranscriptionSearchOptions{
			TextContains:  query.Text,
			AuthorID:      query.AuthorID,
			CreatedAfter:  query.After,
			CreatedBefore: query.Before,
			Page:          batchIndex + 1,
			PageSize:      e.pager.RequestBatchSize(),
		})
	})
	if err != nil {
		return nil, err
	}
	return result.(*blossom.TranscriptionPage), nil
}

// slicePage cuts the records of one display page out of a fetched batch.
func (e *Engine) slicePage(batch *blossom.TranscriptionPage, offset int) []blossom.Transcription {
	lo := offset
	if lo > len(batch.Results) {
		lo = len(batch.Results)
	}
	hi := lo + e.pager.DisplayPageSize()
	if hi > len(batch.Results) {
		hi = len(batch.Results)
	}
	return batch.Results[lo:hi]
}
