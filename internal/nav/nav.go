// Package nav turns reaction events on result messages into page turns.
//
// A result message either has a live session in the result cache or it does
// not. Events for unknown messages, events from anyone but the original
// requester, and page turns that would leave the valid range are all ignored
// without touching the cache or the message.
package nav

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usestring/scribebot/internal/cache"
	"github.com/usestring/scribebot/internal/paging"
	"github.com/usestring/scribebot/internal/render"
	"github.com/usestring/scribebot/internal/search"
	"github.com/usestring/scribebot/internal/session"
)

// Sink delivers rendered pages and manages the navigation controls attached
// to a message. Implemented by the chat platform adapter.
type Sink interface {
	// Update replaces the displayed content of the message.
	Update(ctx context.Context, ref session.MessageRef, page *render.Page) error
	// ClearControls removes all navigation controls from the message.
	ClearControls(ctx context.Context, ref session.MessageRef) error
	// SetControls attaches the given controls to the message, in order.
	SetControls(ctx context.Context, ref session.MessageRef, controls []render.Control) error
}

// Controller reacts to navigation events for result messages.
type Controller struct {
	results *cache.ResultCache
	engine  *search.Engine
	pager   *paging.Pager
	sink    Sink
}

// NewController creates a navigation controller.
func NewController(results *cache.ResultCache, engine *search.Engine, pager *paging.Pager, sink Sink) *Controller {
	return &Controller{
		results: results,
		engine:  engine,
		pager:   pager,
		sink:    sink,
	}
}

// HandleReaction processes one reaction event. Events that do not cause a
// page turn are silently dropped; only delivery failures surface as errors.
func (c *Controller) HandleReaction(ctx context.Context, ref session.MessageRef, control render.Control, actorID string) error {
	entry, ok := c.results.Get(ref.MessageID)
	if !ok {
		// Stale session: evicted, or the message was never paginated.
		return nil
	}
	if actorID != entry.Query.RequesterID {
		slog.Debug("ignoring navigation by non-requester",
			slog.String("message_id", ref.MessageID),
			slog.String("actor_id", actorID),
		)
		return nil
	}

	target, ok := targetPage(control, entry.Query.DisplayPage, c.pager.LastDisplayPage(entry.Batch.Count))
	if !ok {
		return nil
	}

	if err := c.sink.ClearControls(ctx, ref); err != nil {
		return fmt.Errorf("clearing controls: %w", err)
	}

	page, ok, err := c.engine.RenderAtPage(ctx, ref.MessageID, target)
	if err != nil {
		return fmt.Errorf("rendering page %d: %w", target, err)
	}
	if !ok {
		return nil
	}

	if err := c.sink.Update(ctx, ref, page); err != nil {
		return fmt.Errorf("updating message: %w", err)
	}
	if err := c.sink.SetControls(ctx, ref, page.Controls); err != nil {
		return fmt.Errorf("attaching controls: %w", err)
	}

	slog.Debug("page turned",
		slog.String("message_id", ref.MessageID),
		slog.Int("display_page", target),
	)
	return nil
}

// targetPage computes the display page a control navigates to. The second
// return is false when the control is a no-op at the current position.
func targetPage(control render.Control, current, last int) (int, bool) {
	switch control {
	case render.ControlFirst:
		if current == 0 {
			return 0, false
		}
		return 0, true
	case render.ControlPrevious:
		if current == 0 {
			return 0, false
		}
		return current - 1, true
	case render.ControlNext:
		if current == last {
			return 0, false
		}
		return current + 1, true
	case render.ControlLast:
		if current == last {
			return 0, false
		}
		return last, true
	}
	return 0, false
}
