package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/scenelens/internal/core/annotation"
	"github.com/colonyops/scenelens/internal/core/styles"
)

// RenderedScene is the styled text of a scene wrapped to a width.
type RenderedScene struct {
	Content string
	// Rows maps each source line of the scene to the display row it starts
	// on after wrapping.
	Rows []int
}

// Row returns the display row of source line, clamped to the content.
func (r RenderedScene) Row(line int) int {
	switch {
	case len(r.Rows) == 0 || line < 0:
		return 0
	case line >= len(r.Rows):
		return r.Rows[len(r.Rows)-1]
	default:
		return r.Rows[line]
	}
}

// StyleLines renders segments into styled source lines. Segments that
// span a newline are styled piecewise so highlights never bleed into
// padding.
func StyleLines(segments []annotation.Segment) []string {
	var (
		lines   []string
		current strings.Builder
	)

	for _, seg := range segments {
		style := styles.SegmentStyle(seg.Style)
		pieces := strings.Split(seg.Text, "\n")
		for i, piece := range pieces {
			if i > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
			if piece != "" {
				current.WriteString(style.Render(piece))
			}
		}
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// RenderScene styles and wraps segments to width columns.
func RenderScene(segments []annotation.Segment, width int) RenderedScene {
	lines := StyleLines(segments)
	rows := make([]int, len(lines))
	wrapped := make([]string, len(lines))

	row := 0
	for i, line := range lines {
		if width > 0 {
			line = ansi.Wrap(line, width, "")
		}
		rows[i] = row
		wrapped[i] = line
		row += strings.Count(line, "\n") + 1
	}

	return RenderedScene{
		Content: strings.Join(wrapped, "\n"),
		Rows:    rows,
	}
}
