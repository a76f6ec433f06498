// Package scroll decides how the scene viewport follows the anchor
// segment when the displayed scene is replaced.
package scroll

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

// Mode is the kind of scroll performed.
type Mode int

const (
	// ModeNone performs no scrolling.
	ModeNone Mode = iota
	// ModeSmoothWindow animates the anchor into the center of the window.
	ModeSmoothWindow
	// ModeCenterContainer jumps so the anchor is centered in its container.
	ModeCenterContainer
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSmoothWindow:
		return "smooth-window"
	case ModeCenterContainer:
		return "center-container"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Action is a scroll decision. Line is the display line of the anchor.
type Action struct {
	Mode Mode
	Line int
}

// Surface is the scrollable area the synchronizer drives.
type Surface interface {
	// ScrollIntoViewSmooth animates line into the center of the window.
	ScrollIntoViewSmooth(line int)
	// AnchorTop returns the offset of line from the top of the container's
	// content. It differs from line when the surface wraps long lines.
	AnchorTop(line int) int
	// ContainerHeight returns the visible height of the container.
	ContainerHeight() int
	// SetScrollTop moves the container to offset without animation.
	SetScrollTop(offset int)
}

// Decide returns the scroll action for a scene replacement. The first
// display animates to the anchor; later replacements center immediately
// only when the visible text changed.
func Decide(prev, next annotation.Result, firstDisplay bool) Action {
	line, ok := next.AnchorLine()
	if !ok {
		return Action{Mode: ModeNone}
	}

	if firstDisplay {
		return Action{Mode: ModeSmoothWindow, Line: line}
	}

	if annotation.ContentEqual(prev.Segments, next.Segments) {
		return Action{Mode: ModeNone}
	}

	return Action{Mode: ModeCenterContainer, Line: line}
}

// CenterOffset returns the scroll offset that centers anchorTop in a
// container of the given height.
func CenterOffset(anchorTop, containerHeight int) int {
	return anchorTop - containerHeight/2
}

// Synchronizer applies scroll decisions to a Surface.
type Synchronizer struct {
	log zerolog.Logger
}

// NewSynchronizer creates a Synchronizer.
func NewSynchronizer(log zerolog.Logger) *Synchronizer {
	return &Synchronizer{log: log}
}

// Sync runs after every scene replacement.
func (s *Synchronizer) Sync(surface Surface, prev, next annotation.Result, firstDisplay bool) Action {
	action := Decide(prev, next, firstDisplay)
	s.perform(surface, action)
	return action
}

// Center recenters the container on the current anchor regardless of
// whether the content changed.
func (s *Synchronizer) Center(surface Surface, current annotation.Result) Action {
	line, ok := current.AnchorLine()
	if !ok {
		return Action{Mode: ModeNone}
	}

	action := Action{Mode: ModeCenterContainer, Line: line}
	s.perform(surface, action)
	return action
}

func (s *Synchronizer) perform(surface Surface, action Action) {
	switch action.Mode {
	case ModeSmoothWindow:
		surface.ScrollIntoViewSmooth(action.Line)
	case ModeCenterContainer:
		surface.SetScrollTop(CenterOffset(surface.AnchorTop(action.Line), surface.ContainerHeight()))
	default:
		return
	}

	s.log.Debug().
		Stringer("mode", action.Mode).
		Int("line", action.Line).
		Msg("scrolled to anchor")
}
