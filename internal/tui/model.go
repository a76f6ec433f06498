// Package tui implements the interactive scene viewer.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/scenelens/internal/core/annotation"
	"github.com/colonyops/scenelens/internal/core/config"
	"github.com/colonyops/scenelens/internal/core/notify"
	"github.com/colonyops/scenelens/internal/core/scene"
	"github.com/colonyops/scenelens/internal/core/scroll"
	"github.com/colonyops/scenelens/internal/core/styles"
)

// chromeHeight is the number of rows around the scene box: title, tabs,
// box border, status and help.
const chromeHeight = 6

// sceneFetchedMsg carries a completed scene retrieval back to Update.
type sceneFetchedMsg struct {
	resp scene.Response
}

// Options configures the viewer.
type Options struct {
	Controller    *scene.Controller
	Scenes        []int // scenes offered for cycling, in display order
	TUI           config.TUIConfig
	Notifications notify.Store
	Watcher       *FixtureWatcher // optional
	Log           zerolog.Logger
}

// Model is the Bubble Tea model for viewing one document's scenes.
type Model struct {
	ctx           context.Context
	controller    *scene.Controller
	sync          *scroll.Synchronizer
	view          *sceneView
	toasts        *ToastController
	toastView     *ToastView
	notifications notify.Store
	watcher       *FixtureWatcher
	log           zerolog.Logger
	keys          keyMap
	help          help.Model

	scenes          []int
	selected        int // most recently requested scene
	input           string
	containerHeight int
	width           int
	height          int
	quitting        bool
}

// New creates the viewer. ctx is attached to every retrieval; it should
// carry the viewer's logging fields.
func New(ctx context.Context, opts Options) Model {
	scenes := opts.Scenes
	if len(scenes) == 0 {
		scenes = []int{0}
	}

	toasts := NewToastController()
	notifications := opts.Notifications
	if notifications == nil {
		notifications = notify.NewMemoryStore(50)
	}

	return Model{
		ctx:             ctx,
		controller:      opts.Controller,
		sync:            scroll.NewSynchronizer(opts.Log),
		view:            newSceneView(76, opts.TUI.ContainerHeight, opts.TUI.SmoothScrollSteps, opts.TUI.SmoothScrollInterval),
		toasts:          toasts,
		toastView:       NewToastView(toasts),
		notifications:   notifications,
		watcher:         opts.Watcher,
		log:             opts.Log,
		keys:            defaultKeyMap(),
		help:            help.New(),
		scenes:          scenes,
		selected:        scenes[0],
		containerHeight: opts.TUI.ContainerHeight,
		width:           80,
		height:          24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.selectScene(m.selected)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return tea.Batch(cmds...)
}

// selectScene records the selection and returns the command that fetches
// it off the UI goroutine.
func (m *Model) selectScene(sceneID int) tea.Cmd {
	m.selected = sceneID
	req := m.controller.Select(sceneID)

	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return sceneFetchedMsg{resp: controller.Fetch(ctx, req)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(m.boxWidth(), m.boxHeight())
		return m, nil

	case sceneFetchedMsg:
		return m.handleFetched(msg)

	case smoothScrollTickMsg:
		return m, m.view.advance(msg)

	case fixtureChangeMsg:
		var cmds []tea.Cmd
		if msg.touches(m.selected) {
			m.log.Debug().Int("scene", m.selected).Msg("fixture changed, reloading scene")
			cmds = append(cmds, m.selectScene(m.selected))
		}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.Start())
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.StopTicking()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		return m, m.view.Update(msg)
	}

	return m, nil
}

func (m Model) handleFetched(msg sceneFetchedMsg) (tea.Model, tea.Cmd) {
	upd, err := m.controller.Apply(msg.resp)
	if err != nil {
		return m, m.notify(notify.LevelError, err.Error())
	}
	if !upd.Applied {
		return m, nil
	}

	prev := annotation.Result{Anchor: annotation.NoAnchor}
	if upd.Previous != nil {
		prev = upd.Previous.Result
	}

	m.view.SetResult(upd.Current.Result)
	m.sync.Sync(m.view, prev, upd.Current.Result, upd.FirstDisplay)

	if m.view.Animating() {
		return m, m.view.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.input = ""
		if m.toasts.HasToasts() {
			m.toasts.DismissAll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		if m.input == "" {
			return m, nil
		}
		id, err := strconv.Atoi(m.input)
		m.input = ""
		if err != nil {
			return m, m.notify(notify.LevelWarning, fmt.Sprintf("not a scene number: %v", err))
		}
		return m, m.selectScene(id)

	case key.Matches(msg, m.keys.Next):
		return m, m.selectScene(m.cycle(1))

	case key.Matches(msg, m.keys.Prev):
		return m, m.selectScene(m.cycle(-1))

	case key.Matches(msg, m.keys.Reload):
		return m, m.selectScene(m.selected)

	case key.Matches(msg, m.keys.Center):
		if st := m.controller.State(); st != nil {
			m.sync.Center(m.view, st.Result)
		}
		return m, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.input += s
		return m, nil
	}

	return m, m.view.Update(msg)
}

// cycle returns the scene delta steps away from the selected one in the
// scene list, wrapping at both ends. A selection outside the list starts
// from the first scene.
func (m Model) cycle(delta int) int {
	idx := -1
	for i, id := range m.scenes {
		if id == m.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m.scenes[0]
	}
	n := len(m.scenes)
	return m.scenes[((idx+delta)%n+n)%n]
}

// notify records a notification and shows it as a toast.
func (m Model) notify(level notify.Level, message string) tea.Cmd {
	n := notify.Notification{Level: level, Message: message}
	if id, err := m.notifications.Save(m.ctx, n); err == nil {
		n.ID = id
	} else {
		m.log.Debug().Err(err).Msg("failed to record notification")
	}

	m.toasts.Push(n)
	if m.toasts.StartTicking() {
		return scheduleToastTick()
	}
	return nil
}

func (m Model) boxWidth() int {
	// border and horizontal padding
	return max(m.width-4, 10)
}

func (m Model) boxHeight() int {
	return max(min(m.containerHeight, m.height-chromeHeight), 3)
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render builds the screen content.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitle(),
		m.renderTabs(),
		styles.SceneBoxStyle.Render(m.renderBody()),
		m.renderStatus(),
		styles.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(content, m.width)
	}
	return content
}

func (m Model) renderTitle() string {
	return styles.TitleStyle.Render(styles.IconScene+" "+m.controller.Document()) + " " +
		styles.LegendStyle.Render("valid") + " " +
		styles.ValidSegmentStyle.Render(" ") + "  " +
		styles.LegendStyle.Render("flagged") + " " +
		styles.FlaggedSegmentStyle.Render(" ")
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.scenes))
	for _, id := range m.scenes {
		label := strconv.Itoa(id)
		if id == m.selected {
			tabs = append(tabs, styles.SceneTabActiveStyle.Render(label))
			continue
		}
		tabs = append(tabs, styles.SceneTabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody() string {
	if m.controller.State() == nil {
		placeholder := "waiting for scene " + strconv.Itoa(m.selected) + "…"
		if m.controller.Status() == scene.StatusIdle {
			placeholder = "no scene displayed"
		}
		return lipgloss.NewStyle().
			Width(m.boxWidth()).
			Height(m.boxHeight()).
			Render(styles.StatusStyle.Render(placeholder))
	}
	return m.view.View()
}

func (m Model) renderStatus() string {
	parts := []string{}

	if st := m.controller.State(); st != nil {
		parts = append(parts, fmt.Sprintf("scene %d", st.SceneID))
		if line, ok := st.AnchorLine(); ok {
			parts = append(parts, fmt.Sprintf("%s line %d", styles.IconAnchor, line+1))
		} else {
			parts = append(parts, "no validating lines")
		}
	}

	if pending, ok := m.controller.Pending(); ok {
		parts = append(parts, fmt.Sprintf("loading scene %d", pending))
	}

	if count, err := m.notifications.Count(m.ctx); err == nil && count > 0 {
		parts = append(parts, fmt.Sprintf("%d notices", count))
	}

	if m.input != "" {
		parts = append(parts, "go to: "+m.input)
	}

	status := ansi.Truncate(" "+strings.Join(parts, " · "), m.width, "…")
	return styles.StatusStyle.Render(status)
}
