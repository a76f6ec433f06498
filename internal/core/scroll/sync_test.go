package scroll

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

type recordingSurface struct {
	height  int
	rows    int // display rows per source line; 0 means 1
	smooth  []int
	offsets []int
}

func (s *recordingSurface) ScrollIntoViewSmooth(line int) { s.smooth = append(s.smooth, line) }
func (s *recordingSurface) AnchorTop(line int) int        { return line * max(s.rows, 1) }
func (s *recordingSurface) ContainerHeight() int          { return s.height }
func (s *recordingSurface) SetScrollTop(offset int)       { s.offsets = append(s.offsets, offset) }

func (s *recordingSurface) calls() int { return len(s.smooth) + len(s.offsets) }

func build(t *testing.T, lines []string, validating ...int) annotation.Result {
	t.Helper()
	res, err := annotation.Build(lines, validating, nil)
	require.NoError(t, err)
	return res
}

func longScene(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = prefix
	}
	return lines
}

func TestSynchronizer_FirstDisplay(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10}
	next := build(t, longScene("line", 30), 20)

	action := s.Sync(surface, annotation.Result{Anchor: annotation.NoAnchor}, next, true)

	assert.Equal(t, Action{Mode: ModeSmoothWindow, Line: 20}, action)
	assert.Equal(t, []int{20}, surface.smooth)
	assert.Empty(t, surface.offsets)
}

func TestSynchronizer_FirstDisplayWithoutAnchor(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10}

	action := s.Sync(surface, annotation.Result{Anchor: annotation.NoAnchor}, build(t, []string{"a", "b"}), true)

	assert.Equal(t, ModeNone, action.Mode)
	assert.Zero(t, surface.calls())
}

func TestSynchronizer_IdenticalRerender(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10}
	lines := longScene("same", 15)

	prev := build(t, lines, 8)
	next := build(t, lines, 8)

	action := s.Sync(surface, prev, next, false)

	assert.Equal(t, ModeNone, action.Mode)
	assert.Zero(t, surface.calls())
}

func TestSynchronizer_SceneChanged(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10}

	prev := build(t, longScene("old", 15), 3)
	next := build(t, longScene("new", 40), 25)

	action := s.Sync(surface, prev, next, false)

	assert.Equal(t, Action{Mode: ModeCenterContainer, Line: 25}, action)
	require.Len(t, surface.offsets, 1)
	assert.Equal(t, 20, surface.offsets[0])
	assert.Empty(t, surface.smooth)
}

func TestSynchronizer_SceneChangedWithoutAnchor(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10}

	prev := build(t, longScene("old", 15), 3)
	next := build(t, longScene("new", 15))

	action := s.Sync(surface, prev, next, false)

	assert.Equal(t, ModeNone, action.Mode)
	assert.Zero(t, surface.calls())
}

func TestSynchronizer_Center(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 6}

	current := build(t, longScene("x", 12), 9)

	action := s.Center(surface, current)
	assert.Equal(t, ModeCenterContainer, action.Mode)
	assert.Equal(t, []int{6}, surface.offsets)

	// repeated manual centering always scrolls
	s.Center(surface, current)
	assert.Equal(t, []int{6, 6}, surface.offsets)

	assert.Equal(t, ModeNone, s.Center(surface, build(t, []string{"a"})).Mode)
	assert.Len(t, surface.offsets, 2)
}

func TestSynchronizer_Sync_uses_wrapped_anchor_top(t *testing.T) {
	s := NewSynchronizer(zerolog.Nop())
	surface := &recordingSurface{height: 10, rows: 2}

	prev := build(t, longScene("old", 15), 3)
	next := build(t, longScene("new", 15), 12)

	action := s.Sync(surface, prev, next, false)
	assert.Equal(t, ModeCenterContainer, action.Mode)
	assert.Equal(t, 12, action.Line)
	assert.Equal(t, []int{19}, surface.offsets)
}

func TestCenterOffset(t *testing.T) {
	assert.Equal(t, 15, CenterOffset(20, 10))
	assert.Equal(t, 17, CenterOffset(20, 7))
	assert.Equal(t, -5, CenterOffset(0, 10))
}
