package tui

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/scenelens/internal/core/logging"
)

// fixtureChangeMsg is sent when a scene fixture changes on disk.
type fixtureChangeMsg struct {
	// sceneIDs holds the scenes whose fixture changed. Empty when only
	// unrecognized files changed.
	sceneIDs []int
}

// touches reports whether the change affects sceneID.
func (m fixtureChangeMsg) touches(sceneID int) bool {
	for _, id := range m.sceneIDs {
		if id == sceneID {
			return true
		}
	}
	return false
}

// FixtureWatcher watches a document's fixture directory for edits.
type FixtureWatcher struct {
	watcher     *fsnotify.Watcher
	dir         string
	debounceDur time.Duration
	log         zerolog.Logger
}

// NewFixtureWatcher watches dir, the directory holding one document's
// <sceneId>.json files.
func NewFixtureWatcher(dir string) (*FixtureWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &FixtureWatcher{
		watcher:     watcher,
		dir:         dir,
		debounceDur: 100 * time.Millisecond,
		log:         logging.Component("fixture-watcher"),
	}, nil
}

// Dir returns the watched directory.
func (w *FixtureWatcher) Dir() string {
	return w.dir
}

// Start returns a command that blocks until a fixture changes. The model
// calls Start again after handling each change.
func (w *FixtureWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				id, ok := fixtureSceneID(event.Name)
				if !ok || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}

				ids := []int{id}

				// Editors often write in several steps; collect what settles.
				time.Sleep(w.debounceDur)
				for drained := false; !drained; {
					select {
					case extra, ok := <-w.watcher.Events:
						if !ok {
							drained = true
							break
						}
						if id, ok := fixtureSceneID(extra.Name); ok {
							ids = append(ids, id)
						}
					default:
						drained = true
					}
				}

				return fixtureChangeMsg{sceneIDs: ids}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.log.Debug().Err(err).Str("dir", w.dir).Msg("fixture watcher error")
			}
		}
	}
}

// fixtureSceneID extracts the scene id from a <sceneId>.json path.
func fixtureSceneID(path string) (int, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != ".json" {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(base, ".json"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Close stops the watcher.
func (w *FixtureWatcher) Close() error {
	return w.watcher.Close()
}
