// Package highlight renders the occurrences of a search query inside a
// record's text as width-budgeted context lines with underlined matches.
//
// Each occurrence becomes two lines:
//
//	L12: ...me context around the MATCH and some context af...
//	                             -----
//
// The context window is trimmed so the whole line fits a fixed width budget,
// splitting the available room evenly between the left and right side of the
// match and donating unused room from a short side to the other.
package highlight

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxOccurrences is the number of occurrences shown per record.
	DefaultMaxOccurrences = 4
	// DefaultWidth is the total character budget for one context line.
	DefaultWidth = 56
	// ellipsis marks truncated context. Its length counts against the
	// budget of the side it is on.
	ellipsis = "..."
)

// Highlighter renders query occurrences. The zero value is not usable;
// construct with New.
type Highlighter struct {
	maxOccurrences int
	width          int
}

// New creates a highlighter with the given occurrence and width limits.
// Non-positive values fall back to the defaults.
func New(maxOccurrences, width int) *Highlighter {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Highlighter{maxOccurrences: maxOccurrences, width: width}
}

// Result holds the rendered occurrence lines for one text.
type Result struct {
	// Lines alternates context and underline lines, optionally followed by
	// a trailer noting occurrences that did not fit.
	Lines []string
	// Shown is the number of occurrences rendered.
	Shown int
	// Total is the number of occurrences in the whole text.
	Total int
}

// Block returns the rendered lines joined with newlines.
func (r Result) Block() string {
	return strings.Join(r.Lines, "\n")
}

// Highlight renders up to the configured number of occurrences of query in
// text. Matching is case-insensitive; the rendered match keeps the casing it
// has in the text. An empty query or a text without matches yields an empty
// result.
func (h *Highlighter) Highlight(text, query string) Result {
	if query == "" {
		return Result{}
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	res := Result{Total: strings.Count(lowerText, lowerQuery)}
	if res.Total == 0 {
		return res
	}

	for lineIdx, line := range strings.Split(text, "\n") {
		if res.Shown == h.maxOccurrences {
			break
		}
		foldedLine, offsets := foldLine(line)
		for from := 0; res.Shown < h.maxOccurrences; {
			pos := strings.Index(foldedLine[from:], lowerQuery)
			if pos < 0 {
				break
			}
			pos += from
			start, end := offsets[pos], offsets[pos+len(lowerQuery)]
			context, underline := h.window(line, lineIdx+1, start, end-start)
			res.Lines = append(res.Lines, context, underline)
			res.Shown++
			from = pos + len(lowerQuery)
		}
	}

	if remaining := res.Total - res.Shown; remaining > 0 {
		noun := "occurrences"
		if remaining == 1 {
			noun = "occurrence"
		}
		res.Lines = append(res.Lines, fmt.Sprintf("%s and %d more %s", ellipsis, remaining, noun))
	}

	return res
}

// foldLine lowercases line one rune at a time and records, for every byte of
// the folded form, the byte offset of the rune it came from. A trailing
// sentinel maps the folded end to len(line). Lowercasing can change a rune's
// byte width ('Ⱥ' is two bytes, 'ⱥ' three), so offsets found in the folded
// line must be mapped back before slicing the original: a folded match over
// [a, b) covers line[offsets[a]:offsets[b]].
func foldLine(line string) (string, []int) {
	var folded strings.Builder
	folded.Grow(len(line))
	offsets := make([]int, 0, len(line)+1)
	for i, r := range line {
		low := unicode.ToLower(r)
		for n := utf8.RuneLen(low); n > 0; n-- {
			offsets = append(offsets, i)
		}
		folded.WriteRune(low)
	}
	offsets = append(offsets, len(line))
	return folded.String(), offsets
}

// window builds the context line and the underline for one occurrence at
// byte offset pos in line.
func (h *Highlighter) window(line string, lineNum, pos, matchLen int) (context, underline string) {
	label := fmt.Sprintf("L%d: ", lineNum)
	match := line[pos : pos+matchLen]

	remaining := h.width - len(label) - matchLen
	if remaining < 0 {
		remaining = 0
	}
	leftBudget := (remaining + 1) / 2
	rightBudget := remaining / 2

	leftAvail := pos
	rightAvail := len(line) - pos - matchLen

	// A side that cannot fill its budget donates the leftovers.
	if leftAvail < leftBudget {
		rightBudget += leftBudget - leftAvail
		leftBudget = leftAvail
	}
	if rightAvail < rightBudget {
		leftBudget += rightBudget - rightAvail
		if leftBudget > leftAvail {
			leftBudget = leftAvail
		}
		rightBudget = rightAvail
	}

	left := line[:pos]
	if leftAvail > leftBudget {
		keep := leftBudget - len(ellipsis)
		if keep < 0 {
			keep = 0
		}
		left = ellipsis + line[pos-keep:pos]
	}

	right := line[pos+matchLen:]
	if rightAvail > rightBudget {
		keep := rightBudget - len(ellipsis)
		if keep < 0 {
			keep = 0
		}
		right = line[pos+matchLen:pos+matchLen+keep] + ellipsis
	}

	context = label + left + match + right
	underline = strings.Repeat(" ", len(label)+len(left)) + strings.Repeat("-", matchLen)
	return context, underline
}
