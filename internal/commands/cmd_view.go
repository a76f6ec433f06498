package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/scenelens/internal/core/logging"
	"github.com/colonyops/scenelens/internal/core/notify"
	"github.com/colonyops/scenelens/internal/core/provider"
	"github.com/colonyops/scenelens/internal/core/scene"
	"github.com/colonyops/scenelens/internal/core/validate"
	"github.com/colonyops/scenelens/internal/tui"
	"github.com/colonyops/scenelens/pkg/profiler"
)

type ViewCmd struct {
	flags        *Flags
	document     string
	scenes       []int
	profilerPort int
}

// NewViewCmd creates the interactive scene viewer command.
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the viewer flags for registration on the root command.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "document",
			Aliases:     []string{"d"},
			Usage:       "document (script file name) whose scenes are displayed",
			Sources:     cli.EnvVars("SCENELENS_DOCUMENT"),
			Destination: &cmd.document,
			Local:       true,
		},
		&cli.IntSliceFlag{
			Name:        "scenes",
			Aliases:     []string{"s"},
			Usage:       "scene ids to cycle through; the first is shown on start",
			Value:       []int{0},
			Destination: &cmd.scenes,
			Local:       true,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof and /debug/scene HTTP endpoints on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("SCENELENS_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
			Local:       true,
		},
	}
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	document := cmd.document
	if document == "" && c.Args().Len() > 0 {
		document = c.Args().First()
	}
	if document == "" {
		return fmt.Errorf("no document given; pass --document or a document argument")
	}
	if err := validate.Selection(document, cmd.scenes...); err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}

	viewerID := uuid.NewString()
	ctx = logging.WithDocument(logging.WithViewerID(ctx, viewerID), document)

	logger := logging.Component("viewer")
	log.Info().Ctx(ctx).Ints("scenes", cmd.scenes).Msg("starting scene viewer")

	sceneLog := logging.Component("scene").With().Str("viewer_id", viewerID).Logger()
	controller := scene.NewController(cmd.flags.Provider, document, sceneLog)

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		profServer.Handle("/debug/scene", scene.DebugHandler(controller))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	cfg := cmd.flags.Config
	opts := tui.Options{
		Controller:    controller,
		Scenes:        cmd.scenes,
		TUI:           cfg.TUI,
		Notifications: notify.NewMemoryStore(100),
		Log:           logger,
	}

	if fp, ok := cmd.flags.Provider.(*provider.FileProvider); ok && cfg.Provider.WatchEnabled() {
		dir := filepath.Dir(fp.ScenePath(document, 0))
		watcher, err := tui.NewFixtureWatcher(dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("fixture watcher disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			opts.Watcher = watcher
		}
	}

	p := tea.NewProgram(tui.New(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
