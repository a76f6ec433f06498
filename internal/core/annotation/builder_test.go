package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(style Style, text string) Segment {
	return Segment{Text: text, Style: style}
}

func TestBuild_Scenario(t *testing.T) {
	lines := []string{"  Hello world", "Goodbye"}

	res, err := Build(lines, []int{0}, map[int][]Range{0: {{Start: 2, End: 6}}})
	require.NoError(t, err)

	// absStart = 2+2 = 4, absEnd = 6+2-1 = 7
	want := []Segment{
		seg(StylePlain, "  "),
		seg(StyleValid, "He"),
		seg(StyleFlagged, "llo"),
		seg(StyleValid, " world\n"),
		seg(StylePlain, "Goodbye\n"),
	}
	assert.Equal(t, want, res.Segments)
	assert.Equal(t, 0, res.Anchor)
}

func TestBuild_NoValidatingLines(t *testing.T) {
	lines := []string{"INT. KITCHEN - DAY", "  ALICE", "    Pass the salt."}

	res, err := Build(lines, nil, nil)
	require.NoError(t, err)

	assert.False(t, res.HasAnchor())
	assert.Equal(t, NoAnchor, res.Anchor)
	require.Len(t, res.Segments, 3)
	for _, s := range res.Segments {
		assert.Equal(t, StylePlain, s.Style)
	}
}

func TestBuild_ValidatingLineWithoutRanges(t *testing.T) {
	t.Run("no entry", func(t *testing.T) {
		res, err := Build([]string{"\tSpeak up."}, []int{0}, nil)
		require.NoError(t, err)

		assert.Equal(t, []Segment{
			seg(StylePlain, "\t"),
			seg(StyleValid, "Speak up.\n"),
		}, res.Segments)
	})

	t.Run("empty entry", func(t *testing.T) {
		res, err := Build([]string{"Speak up."}, []int{0}, map[int][]Range{0: {}})
		require.NoError(t, err)

		assert.Equal(t, []Segment{
			seg(StylePlain, ""),
			seg(StyleValid, "Speak up.\n"),
		}, res.Segments)
	})

	t.Run("blank line", func(t *testing.T) {
		res, err := Build([]string{"   "}, []int{0}, nil)
		require.NoError(t, err)

		assert.Equal(t, []Segment{
			seg(StylePlain, "   "),
			seg(StyleValid, "\n"),
		}, res.Segments)
	})
}

func TestBuild_AnchorAssignedOnce(t *testing.T) {
	lines := []string{
		"INT. OFFICE - NIGHT",
		"    MARY",
		"    Did you see him?",
		"    JANE",
		"    No.",
	}

	res, err := Build(lines, []int{4, 2}, nil)
	require.NoError(t, err)

	// Segments: line0, line1, [ws, valid] for line2, line3, [ws, valid] for line4
	require.Len(t, res.Segments, 7)
	assert.Equal(t, 2, res.Anchor)
	assert.Equal(t, seg(StylePlain, "    "), res.Segments[res.Anchor])

	line, ok := res.AnchorLine()
	require.True(t, ok)
	assert.Equal(t, 2, line)
}

func TestBuild_MultipleRanges(t *testing.T) {
	line := "  He said his brother and his father left."
	// content: "He said his brother and his father left."
	//           0123456789...
	ranges := []Range{{Start: 8, End: 20}, {Start: 28, End: 35}}

	res, err := Build([]string{line}, []int{0}, map[int][]Range{0: ranges})
	require.NoError(t, err)

	require.Len(t, res.Segments, 6)
	assert.Equal(t, StylePlain, res.Segments[0].Style)
	assert.Equal(t, StyleValid, res.Segments[1].Style)
	assert.Equal(t, StyleFlagged, res.Segments[2].Style)
	assert.Equal(t, StyleValid, res.Segments[3].Style)
	assert.Equal(t, StyleFlagged, res.Segments[4].Style)
	assert.Equal(t, StyleValid, res.Segments[5].Style)

	assert.Equal(t, "his brother", res.Segments[2].Text)
	assert.Equal(t, "father", res.Segments[4].Text)
	assert.Equal(t, line+"\n", res.Text())
}

func TestBuild_RuneOffsets(t *testing.T) {
	line := "  Élodie parle à Zoé."

	res, err := Build([]string{line}, []int{0}, map[int][]Range{0: {{Start: 0, End: 7}}})
	require.NoError(t, err)

	require.Len(t, res.Segments, 4)
	assert.Equal(t, "", res.Segments[1].Text)
	assert.Equal(t, "Élodie", res.Segments[2].Text)
	assert.Equal(t, " parle à Zoé.\n", res.Segments[3].Text)
}

func TestBuild_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		validating []int
		flagged    map[int][]Range
	}{
		{
			name:  "plain only",
			lines: []string{"a", "", "  b"},
		},
		{
			name:       "every line validating",
			lines:      []string{"  one two", "\tthree", ""},
			validating: []int{0, 1, 2},
			flagged:    map[int][]Range{0: {{Start: 0, End: 3}, {Start: 4, End: 7}}},
		},
		{
			name:       "range touching end of line",
			lines:      []string{"   his", "end"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 4}}},
		},
		{
			name:       "adjacent ranges",
			lines:      []string{"abcdef"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 3}, {Start: 3, End: 5}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(tt.lines, tt.validating, tt.flagged)
			require.NoError(t, err)

			assert.Equal(t, strings.Join(tt.lines, "\n")+"\n", res.Text())
		})
	}
}

func TestBuild_AdjacentRanges(t *testing.T) {
	res, err := Build([]string{"abcdef"}, []int{0}, map[int][]Range{0: {{Start: 0, End: 3}, {Start: 3, End: 5}}})
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{Text: "", Style: StylePlain},
		{Text: "", Style: StyleValid},
		{Text: "ab", Style: StyleFlagged},
		{Text: "c", Style: StyleValid},
		{Text: "d", Style: StyleFlagged},
		{Text: "ef\n", Style: StyleValid},
	}, res.Segments)
	assert.Equal(t, 0, res.Anchor)
}

func TestBuild_HighlightPartitionsContent(t *testing.T) {
	line := "    She wants her father's car back."
	offset := FirstContentOffset(line)
	require.Equal(t, 4, offset)

	res, err := Build([]string{line}, []int{0}, map[int][]Range{0: {{Start: 14, End: 23}}})
	require.NoError(t, err)

	covered := ""
	for _, s := range res.Segments[1:] {
		require.NotEqual(t, StylePlain, s.Style)
		covered += s.Text
	}
	assert.Equal(t, line[offset:]+"\n", covered)
}

func TestBuild_InvalidAnnotation(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		validating []int
		flagged    map[int][]Range
	}{
		{
			name:       "validating line out of range",
			lines:      []string{"only line"},
			validating: []int{1},
		},
		{
			name:       "negative validating line",
			lines:      []string{"only line"},
			validating: []int{-1},
		},
		{
			name:    "flagged line not validating",
			lines:   []string{"a", "b"},
			flagged: map[int][]Range{1: {{Start: 0, End: 1}}},
		},
		{
			name:       "negative start",
			lines:      []string{"hello"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: -1, End: 2}}},
		},
		{
			name:       "end past line",
			lines:      []string{"  hello"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 7}}},
		},
		{
			name:       "end before start",
			lines:      []string{"hello"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 3, End: 3}}},
		},
		{
			name:       "overlapping ranges",
			lines:      []string{"hello world"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 6}, {Start: 3, End: 8}}},
		},
		{
			name:       "range starting one before previous end",
			lines:      []string{"abcdef"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 3}, {Start: 2, End: 5}}},
		},
		{
			name:       "range nested in previous",
			lines:      []string{"abcdef"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 0, End: 3}, {Start: 2, End: 3}}},
		},
		{
			name:       "invalid utf-8 on validating line",
			lines:      []string{"  a\xffb"},
			validating: []int{0},
		},
		{
			name:       "out of order ranges",
			lines:      []string{"hello world"},
			validating: []int{0},
			flagged:    map[int][]Range{0: {{Start: 6, End: 9}, {Start: 0, End: 3}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(tt.lines, tt.validating, tt.flagged)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidAnnotation)

			var invalid *InvalidAnnotationError
			require.ErrorAs(t, err, &invalid)
			assert.NotEmpty(t, invalid.Reason)
			assert.Empty(t, res.Segments)
			assert.False(t, res.HasAnchor())
		})
	}
}

func TestFirstContentOffset(t *testing.T) {
	assert.Equal(t, 0, FirstContentOffset("abc"))
	assert.Equal(t, 2, FirstContentOffset("  abc"))
	assert.Equal(t, 1, FirstContentOffset("\tabc"))
	assert.Equal(t, 3, FirstContentOffset("   "))
	assert.Equal(t, 0, FirstContentOffset(""))
}
