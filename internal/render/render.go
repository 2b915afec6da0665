// Package render assembles the chat pages shown for a search: a title, a
// description listing the matching records with highlighted occurrences,
// a pagination footer, and the navigation controls valid for the page.
package render

import (
	"strings"

	"github.com/usestring/scribebot/internal/highlight"
	"github.com/usestring/scribebot/internal/i18n"
	"github.com/usestring/scribebot/internal/session"
	"github.com/usestring/scribebot/internal/transcription"
	"github.com/usestring/scribebot/pkg/blossom"
)

// Control is one of the navigation inputs a result page can offer.
type Control string

// Navigation controls, in the order they are attached to a message.
const (
	ControlFirst    Control = "first"
	ControlPrevious Control = "previous"
	ControlNext     Control = "next"
	ControlLast     Control = "last"
)

// Page is a fully rendered result page ready for delivery.
type Page struct {
	Title       string
	Description string
	Footer      string
	Controls    []Control
}

// ControlsFor returns the navigation controls a page at displayPage should
// carry: First/Previous are omitted on the first page and Next/Last on the
// final page. A single-page result set has no controls at all.
func ControlsFor(displayPage, lastPage int) []Control {
	var controls []Control
	if displayPage > 0 {
		controls = append(controls, ControlFirst, ControlPrevious)
	}
	if displayPage < lastPage {
		controls = append(controls, ControlNext, ControlLast)
	}
	return controls
}

// Renderer turns query results into pages.
type Renderer struct {
	highlighter *highlight.Highlighter
	strings     *i18n.Localizer
}

// New creates a renderer.
func New(highlighter *highlight.Highlighter, strings *i18n.Localizer) *Renderer {
	return &Renderer{highlighter: highlighter, strings: strings}
}

// NoResults renders the page for a search without any matches.
func (r *Renderer) NoResults(queryText string) *Page {
	return &Page{
		Title:       r.strings.Sprintf("search.results_title", queryText),
		Description: r.strings.Sprintf("search.no_results", queryText),
	}
}

// ResultsPage renders one display page of records.
//
// The records are the slice of the fetched batch that belongs to the page;
// startIndex is the 0-based position of the first record within the full
// result set, used for absolute numbering.
func (r *Renderer) ResultsPage(query session.Query, totalCount int, records []blossom.Transcription, startIndex, displayPage, lastPage int) *Page {
	var desc strings.Builder
	for i, record := range records {
		desc.WriteString(r.strings.Sprintf("search.result_line",
			startIndex+i+1,
			transcription.Type(record.Text),
			record.URL,
			transcription.Source(record.URL),
		))
		desc.WriteString("\n")

		if block := r.highlighter.Highlight(record.Text, query.Text).Block(); block != "" {
			desc.WriteString("```\n")
			desc.WriteString(block)
			desc.WriteString("\n```\n")
		}
	}

	return &Page{
		Title:       r.strings.Sprintf("search.results_title", query.Text),
		Description: desc.String(),
		Footer: r.strings.Sprintf("search.page_footer",
			displayPage+1, lastPage+1, totalCount, query.TimeframeLabel),
		Controls: ControlsFor(displayPage, lastPage),
	}
}
