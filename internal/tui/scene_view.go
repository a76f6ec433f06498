package tui

import (
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/scenelens/internal/core/annotation"
	"github.com/colonyops/scenelens/internal/core/scroll"
)

// smoothScrollTickMsg advances the scroll animation with the matching id.
type smoothScrollTickMsg struct {
	id int
}

type scrollAnimation struct {
	id     int
	from   int
	to     int
	frame  int
	frames int
}

// sceneView is the scrollable container holding the displayed scene. It
// implements scroll.Surface.
type sceneView struct {
	viewport viewport.Model
	rendered RenderedScene
	result   annotation.Result
	hasScene bool

	steps    int
	interval time.Duration
	anim     *scrollAnimation
	animSeq  int
}

var _ scroll.Surface = (*sceneView)(nil)

func newSceneView(width, height, steps int, interval time.Duration) *sceneView {
	return &sceneView{
		viewport: viewport.New(viewport.WithWidth(width), viewport.WithHeight(height)),
		steps:    max(steps, 1),
		interval: interval,
	}
}

// SetSize resizes the container and re-wraps the current scene.
func (v *sceneView) SetSize(width, height int) {
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(height)
	if v.hasScene {
		v.render()
	}
}

// SetResult replaces the displayed segments. The scroll offset is kept.
func (v *sceneView) SetResult(r annotation.Result) {
	v.result = r
	v.hasScene = true
	v.render()
}

func (v *sceneView) render() {
	v.rendered = RenderScene(v.result.Segments, v.viewport.Width())
	v.viewport.SetContent(v.rendered.Content)
}

// ScrollIntoViewSmooth starts an animation that ends with line centered.
func (v *sceneView) ScrollIntoViewSmooth(line int) {
	target := v.clamp(scroll.CenterOffset(v.AnchorTop(line), v.ContainerHeight()))
	v.animSeq++
	v.anim = &scrollAnimation{
		id:     v.animSeq,
		from:   v.viewport.YOffset(),
		to:     target,
		frames: v.steps,
	}
}

// AnchorTop returns the wrapped display row of source line.
func (v *sceneView) AnchorTop(line int) int {
	return v.rendered.Row(line)
}

// ContainerHeight implements scroll.Surface.
func (v *sceneView) ContainerHeight() int {
	return v.viewport.Height()
}

// SetScrollTop jumps to offset and cancels any running animation.
func (v *sceneView) SetScrollTop(offset int) {
	v.anim = nil
	v.viewport.SetYOffset(v.clamp(offset))
}

func (v *sceneView) clamp(offset int) int {
	maxOffset := max(v.viewport.TotalLineCount()-v.viewport.Height(), 0)
	return min(max(offset, 0), maxOffset)
}

// Animating reports whether a smooth scroll is in progress.
func (v *sceneView) Animating() bool {
	return v.anim != nil
}

// tick schedules the next animation frame.
func (v *sceneView) tick() tea.Cmd {
	if v.anim == nil {
		return nil
	}
	id := v.anim.id
	return tea.Tick(v.interval, func(time.Time) tea.Msg {
		return smoothScrollTickMsg{id: id}
	})
}

// advance moves the animation one frame and returns the next tick, if any.
// Ticks from a cancelled or replaced animation are ignored.
func (v *sceneView) advance(msg smoothScrollTickMsg) tea.Cmd {
	if v.anim == nil || v.anim.id != msg.id {
		return nil
	}

	a := v.anim
	a.frame++
	if a.frame >= a.frames {
		v.viewport.SetYOffset(a.to)
		v.anim = nil
		return nil
	}

	v.viewport.SetYOffset(a.from + int(float64(a.to-a.from)*easeOut(float64(a.frame)/float64(a.frames))))
	return v.tick()
}

// easeOut is a cubic ease-out curve over [0, 1].
func easeOut(t float64) float64 {
	t = 1 - t
	return 1 - t*t*t
}

// Update forwards manual scrolling to the viewport. Manual input cancels
// a running animation.
func (v *sceneView) Update(msg tea.Msg) tea.Cmd {
	v.anim = nil
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// YOffset returns the current scroll offset in display rows.
func (v *sceneView) YOffset() int {
	return v.viewport.YOffset()
}

func (v *sceneView) View() string {
	return v.viewport.View()
}
