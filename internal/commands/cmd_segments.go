package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/scenelens/internal/core/annotation"
	"github.com/colonyops/scenelens/internal/core/logging"
	"github.com/colonyops/scenelens/internal/core/provider"
	"github.com/colonyops/scenelens/internal/core/scene"
	"github.com/colonyops/scenelens/internal/core/styles"
	"github.com/colonyops/scenelens/internal/core/validate"
	"github.com/colonyops/scenelens/internal/tui"
	"github.com/colonyops/scenelens/pkg/iojson"
)

type SegmentsCmd struct {
	flags    *Flags
	document string
	sceneID  int
	json     bool
	input    *iojson.InputReader[json.RawMessage]
}

// NewSegmentsCmd creates the segments command.
func NewSegmentsCmd(flags *Flags) *SegmentsCmd {
	return &SegmentsCmd{
		flags: flags,
		input: &iojson.InputReader[json.RawMessage]{},
	}
}

// Register adds the segments command to the application.
func (cmd *SegmentsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "segments",
		Usage:     "Print the styled segments of one scene",
		UsageText: "scenelens segments --document <name> --scene <id> [--json] [--file <path>]",
		Description: `Fetches the annotation of a scene and prints the segments that the viewer
would display, with the anchor segment marked.

With --file the annotation is read from a saved API response instead of
being fetched. Output is styled on a terminal and tab-separated otherwise.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "document",
				Aliases:     []string{"d"},
				Usage:       "document (script file name)",
				Sources:     cli.EnvVars("SCENELENS_DOCUMENT"),
				Required:    true,
				Destination: &cmd.document,
			},
			&cli.IntFlag{
				Name:        "scene",
				Aliases:     []string{"s"},
				Usage:       "scene id",
				Destination: &cmd.sceneID,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// segmentsOutput is the JSON document printed with --json.
type segmentsOutput struct {
	Document   string               `json:"document"`
	SceneID    int                  `json:"scene_id"`
	Segments   []annotation.Segment `json:"segments"`
	Anchor     int                  `json:"anchor"`
	AnchorLine *int                 `json:"anchor_line,omitempty"`
}

func (cmd *SegmentsCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	result, err := cmd.build(ctx)
	if err != nil {
		if cmd.json {
			_ = iojson.WriteError(c.Root().ErrWriter, err.Error(), errorData(err))
		}
		return err
	}

	if cmd.json {
		doc := segmentsOutput{
			Document: cmd.document,
			SceneID:  cmd.sceneID,
			Segments: result.Segments,
			Anchor:   result.Anchor,
		}
		if line, ok := result.AnchorLine(); ok {
			doc.AnchorLine = &line
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, doc)
	}

	if isTerminal(out) {
		return writeStyled(out, result)
	}
	return writePlain(out, result)
}

// build produces the segments either from --file or through the provider.
func (cmd *SegmentsCmd) build(ctx context.Context) (annotation.Result, error) {
	if err := validate.Selection(cmd.document, cmd.sceneID); err != nil {
		return annotation.Result{}, fmt.Errorf("invalid selection: %w", err)
	}

	if cmd.input.Provided() {
		raw, err := cmd.input.Read()
		if err != nil {
			return annotation.Result{}, fmt.Errorf("read input: %w", err)
		}
		a, err := provider.Decode(logging.WithDocument(ctx, cmd.document), raw, cmd.document, cmd.sceneID)
		if err != nil {
			return annotation.Result{}, err
		}
		return a.Segments()
	}

	ctrl := scene.NewController(cmd.flags.Provider, cmd.document, logging.Component("scene"))
	upd, err := ctrl.SelectScene(logging.WithDocument(ctx, cmd.document), cmd.sceneID)
	if err != nil {
		return annotation.Result{}, err
	}
	return upd.Current.Result, nil
}

func errorData(err error) map[string]any {
	data := map[string]any{}

	var rf *provider.RetrievalFailedError
	if errors.As(err, &rf) && rf.StatusCode != 0 {
		data["status"] = rf.StatusCode
	}

	var inv *annotation.InvalidAnnotationError
	if errors.As(err, &inv) {
		data["line"] = inv.Line
		data["reason"] = inv.Reason
	}

	return data
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeStyled(w io.Writer, result annotation.Result) error {
	for _, line := range tui.StyleLines(result.Segments) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	summary := "no validating lines"
	if line, ok := result.AnchorLine(); ok {
		summary = fmt.Sprintf("%s anchor: segment %d, line %d", styles.IconAnchor, result.Anchor, line+1)
	}
	_, err := fmt.Fprintln(w, "\n"+styles.LegendStyle.Render(summary))
	return err
}

// writePlain prints one segment per line: index, style, anchor marker and
// the quoted text.
func writePlain(w io.Writer, result annotation.Result) error {
	for i, seg := range result.Segments {
		marker := ""
		if i == result.Anchor {
			marker = "anchor"
		}
		row := strings.Join([]string{strconv.Itoa(i), seg.Style.String(), marker, strconv.Quote(seg.Text)}, "\t")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}
