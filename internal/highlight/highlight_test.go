package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight_SingleOccurrence(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("The quick brown fox", "brown")
	require.Equal(t, 1, res.Total)
	require.Equal(t, 1, res.Shown)
	require.Len(t, res.Lines, 2)

	assert.Equal(t, "L1: The quick brown fox", res.Lines[0])
	assert.Equal(t, "              -----", res.Lines[1])
}

func TestHighlight_CaseInsensitiveKeepsOriginalCasing(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("Error: BROWN alert", "brown")
	require.Equal(t, 1, res.Shown)
	assert.Contains(t, res.Lines[0], "BROWN")
	assert.Equal(t, strings.Index(res.Lines[0], "BROWN"), strings.Index(res.Lines[1], "-"))
}

func TestHighlight_LineNumbers(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("first line\nsecond cat line\nthird line\ncat again", "cat")
	require.Equal(t, 2, res.Shown)
	assert.True(t, strings.HasPrefix(res.Lines[0], "L2: "))
	assert.True(t, strings.HasPrefix(res.Lines[2], "L4: "))
}

func TestHighlight_WidthBudget(t *testing.T) {
	h := New(4, 56)

	// A 200-character line with a 5-character match in the middle.
	line := strings.Repeat("a", 97) + "MATCH" + strings.Repeat("b", 98)
	require.Len(t, line, 200)

	res := h.Highlight(line, "match")
	require.Equal(t, 1, res.Shown)

	context := res.Lines[0]
	underline := res.Lines[1]
	assert.LessOrEqual(t, len(context), 56)

	// The dash run sits exactly under the rendered match.
	matchCol := strings.Index(context, "MATCH")
	require.GreaterOrEqual(t, matchCol, 0)
	assert.Equal(t, strings.Repeat(" ", matchCol)+"-----", underline)

	// Both sides are truncated with ellipses.
	assert.True(t, strings.HasPrefix(context, "L1: ..."))
	assert.True(t, strings.HasSuffix(context, "..."))
}

func TestHighlight_ShortLeftDonatesToRight(t *testing.T) {
	h := New(4, 56)

	// Match at the very start of a long line: the left side needs nothing,
	// so the right side gets the whole remaining budget.
	line := "MATCH" + strings.Repeat("x", 150)
	res := h.Highlight(line, "match")
	require.Equal(t, 1, res.Shown)

	context := res.Lines[0]
	assert.Equal(t, 56, len(context))
	assert.Equal(t, "L1: MATCH", context[:9])
	assert.True(t, strings.HasSuffix(context, "..."))
	assert.Equal(t, "    -----", res.Lines[1])
}

func TestHighlight_ShortRightDonatesToLeft(t *testing.T) {
	h := New(4, 56)

	line := strings.Repeat("x", 150) + "MATCH"
	res := h.Highlight(line, "match")
	require.Equal(t, 1, res.Shown)

	context := res.Lines[0]
	assert.Equal(t, 56, len(context))
	assert.True(t, strings.HasPrefix(context, "L1: ..."))
	assert.True(t, strings.HasSuffix(context, "MATCH"))
}

func TestHighlight_FitsEntirely(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("tiny cat here", "cat")
	require.Equal(t, 1, res.Shown)
	assert.Equal(t, "L1: tiny cat here", res.Lines[0])
	assert.Equal(t, "         ---", res.Lines[1])
}

func TestHighlight_TruncationTrailer(t *testing.T) {
	h := New(4, 56)

	// Six occurrences across several lines, four shown.
	text := "cat one\ncat two cat\nthree\ncat four\ncat cat"
	res := h.Highlight(text, "cat")

	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 4, res.Shown)
	require.Len(t, res.Lines, 9) // 4 pairs + trailer
	assert.Equal(t, "... and 2 more occurrences", res.Lines[8])
}

func TestHighlight_TrailerSingular(t *testing.T) {
	h := New(1, 56)

	res := h.Highlight("cat and cat", "cat")
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Shown)
	assert.Equal(t, "... and 1 more occurrence", res.Lines[len(res.Lines)-1])
}

func TestHighlight_MultipleOccurrencesOneLine(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("cat cat cat", "cat")
	require.Equal(t, 3, res.Shown)
	require.Len(t, res.Lines, 6)
	for i := 0; i < 6; i += 2 {
		assert.True(t, strings.HasPrefix(res.Lines[i], "L1: "))
	}
}

func TestHighlight_WidenedLowercaseBeforeMatch(t *testing.T) {
	h := New(4, 56)

	// 'Ⱥ' (U+023A) is two bytes but its lowercase 'ⱥ' (U+2C65) is three, so
	// match offsets found in the folded line do not apply to the original.
	res := h.Highlight("Ⱥcat dog", "cat")
	require.Equal(t, 1, res.Shown)
	assert.Equal(t, "L1: Ⱥcat dog", res.Lines[0])
	assert.Equal(t, "      ---", res.Lines[1])
}

func TestHighlight_NarrowedLowercaseBeforeMatch(t *testing.T) {
	h := New(4, 56)

	// 'İ' (U+0130) is two bytes but lowercases to the one-byte 'i'.
	res := h.Highlight("İİİcat", "cat")
	require.Equal(t, 1, res.Shown)
	assert.Equal(t, "L1: İİİcat", res.Lines[0])
	assert.Equal(t, strings.Index(res.Lines[0], "cat"), strings.Index(res.Lines[1], "-"))
	assert.Equal(t, "---", strings.TrimLeft(res.Lines[1], " "))
}

func TestHighlight_NonASCIIMatch(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("see Ⱥ here", "ⱥ")
	require.Equal(t, 1, res.Total)
	require.Equal(t, 1, res.Shown)
	assert.Equal(t, "L1: see Ⱥ here", res.Lines[0])
	// The underline spans the match's byte width in the original text.
	assert.Equal(t, "        --", res.Lines[1])
}

func TestHighlight_NoMatch(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("nothing to see", "cat")
	assert.Zero(t, res.Total)
	assert.Zero(t, res.Shown)
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Block())
}

func TestHighlight_EmptyQuery(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("anything", "")
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Lines)
}

func TestHighlight_Block(t *testing.T) {
	h := New(4, 56)

	res := h.Highlight("a cat", "cat")
	assert.Equal(t, "L1: a cat\n      ---", res.Block())
}
