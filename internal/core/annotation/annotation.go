// Package annotation turns a scene's raw lines and its two highlight
// annotations into an ordered sequence of styled text segments.
package annotation

import (
	"fmt"
	"strings"
)

// Style identifies how a segment is displayed.
type Style int

const (
	StylePlain   Style = iota // not highlighted
	StyleValid                // part of a validating line
	StyleFlagged              // flagged range inside a validating line
)

func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleValid:
		return "valid"
	case StyleFlagged:
		return "flagged"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	switch string(text) {
	case "plain":
		*s = StylePlain
	case "valid":
		*s = StyleValid
	case "flagged":
		*s = StyleFlagged
	default:
		return fmt.Errorf("unknown segment style %q", text)
	}
	return nil
}

// Range is a flagged character range. Offsets are counted in runes from
// the first non-whitespace character of the line.
type Range struct {
	Start int
	End   int
}

// SceneAnnotation is the annotation data for one scene.
type SceneAnnotation struct {
	Document        string
	SceneID         int
	Lines           []string
	ValidatingLines []int
	FlaggedRanges   map[int][]Range
}

// Segment is one run of text sharing a single style.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// NoAnchor is the anchor index of a result without validating lines.
const NoAnchor = -1

// Result is the output of Build.
type Result struct {
	Segments []Segment `json:"segments"`
	Anchor   int       `json:"anchor"`
}

// HasAnchor reports whether the result has a scroll target.
func (r Result) HasAnchor() bool {
	return r.Anchor >= 0 && r.Anchor < len(r.Segments)
}

// AnchorLine returns the 0-indexed display line the anchor segment starts on.
func (r Result) AnchorLine() (int, bool) {
	if !r.HasAnchor() {
		return 0, false
	}

	line := 0
	for _, seg := range r.Segments[:r.Anchor] {
		line += strings.Count(seg.Text, "\n")
	}
	return line, true
}

// Text concatenates the text of every segment.
func (r Result) Text() string {
	var b strings.Builder
	for _, seg := range r.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Segments builds the styled segments for the annotation.
func (a SceneAnnotation) Segments() (Result, error) {
	return Build(a.Lines, a.ValidatingLines, a.FlaggedRanges)
}

// ContentEqual reports whether two segment sequences render the same
// text: same length and identical text at every index. Styles are ignored.
func ContentEqual(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
