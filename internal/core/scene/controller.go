// Package scene owns the currently displayed scene: it sequences scene
// selections, retrieves their annotations and atomically replaces the
// displayed state with the newest successful result.
package scene

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/scenelens/internal/core/annotation"
	"github.com/colonyops/scenelens/internal/core/provider"
)

// Status is the controller's position in its state machine.
type Status int

const (
	StatusIdle Status = iota
	StatusFetching
	StatusDisplayed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetching:
		return "fetching"
	case StatusDisplayed:
		return "displayed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is one displayed scene. A State is never modified after it is
// published; the controller replaces it wholesale.
type State struct {
	SceneID int
	annotation.Result
}

// Request identifies one selectScene call.
type Request struct {
	Seq      uint64
	Document string
	SceneID  int
}

// Response is the outcome of fetching a Request.
type Response struct {
	Request    Request
	Annotation annotation.SceneAnnotation
	Err        error
}

// Update describes the effect of applying a Response.
type Update struct {
	// Applied is false when the response belonged to a superseded request
	// and was discarded.
	Applied      bool
	Previous     *State
	Current      *State
	FirstDisplay bool
}

// Controller tracks the selected scene of one document. Select, Apply and
// the accessors are safe for concurrent use; Fetch does not touch state.
type Controller struct {
	provider provider.Provider
	document string
	log      zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	pending *Request
	status  Status
	state   *State
}

// NewController creates a controller for document backed by p.
func NewController(p provider.Provider, document string, log zerolog.Logger) *Controller {
	return &Controller{
		provider: p,
		document: document,
		log:      log,
	}
}

// Document returns the document whose scenes are displayed.
func (c *Controller) Document() string {
	return c.document
}

// Select records sceneID as the most recent selection and returns the
// request to fetch. Any earlier request still in flight becomes stale.
func (c *Controller) Select(sceneID int) Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	req := Request{Seq: c.seq, Document: c.document, SceneID: sceneID}
	c.pending = &req
	c.status = StatusFetching

	c.log.Debug().
		Uint64("seq", req.Seq).
		Int("scene", sceneID).
		Msg("scene selected")

	return req
}

// Fetch retrieves the annotation for req. It may block on the provider and
// never modifies controller state.
func (c *Controller) Fetch(ctx context.Context, req Request) Response {
	a, err := c.provider.SceneAnnotation(ctx, req.Document, req.SceneID)
	return Response{Request: req, Annotation: a, Err: err}
}

// Apply commits resp if it answers the latest request. Stale responses are
// dropped with Applied == false and a nil error. Retrieval and annotation
// errors leave the displayed state untouched and return the controller to
// idle.
func (c *Controller) Apply(resp Response) (Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil || resp.Request.Seq != c.pending.Seq {
		c.log.Debug().
			Uint64("seq", resp.Request.Seq).
			Uint64("latest", c.seq).
			Int("scene", resp.Request.SceneID).
			Msg("stale scene response discarded")
		return Update{Current: c.state}, nil
	}

	c.pending = nil

	if resp.Err != nil {
		c.status = StatusIdle
		c.log.Warn().
			Err(resp.Err).
			Int("scene", resp.Request.SceneID).
			Msg("scene retrieval failed")
		return Update{Current: c.state}, fmt.Errorf("select scene %d: %w", resp.Request.SceneID, resp.Err)
	}

	result, err := resp.Annotation.Segments()
	if err != nil {
		c.status = StatusIdle
		c.log.Error().
			Err(err).
			Int("scene", resp.Request.SceneID).
			Msg("scene annotation rejected")
		return Update{Current: c.state}, fmt.Errorf("select scene %d: %w", resp.Request.SceneID, err)
	}

	next := &State{SceneID: resp.Request.SceneID, Result: result}
	upd := Update{
		Applied:      true,
		Previous:     c.state,
		Current:      next,
		FirstDisplay: c.state == nil,
	}

	c.state = next
	c.status = StatusDisplayed

	c.log.Debug().
		Uint64("seq", resp.Request.Seq).
		Int("scene", next.SceneID).
		Int("segments", len(next.Segments)).
		Int("anchor", next.Anchor).
		Msg("scene displayed")

	return upd, nil
}

// SelectScene runs Select, Fetch and Apply in sequence. It is the blocking
// form used outside the TUI.
func (c *Controller) SelectScene(ctx context.Context, sceneID int) (Update, error) {
	req := c.Select(sceneID)
	return c.Apply(c.Fetch(ctx, req))
}

// State returns the displayed scene, or nil before the first success.
func (c *Controller) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the controller's current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pending returns the scene of the in-flight request, if any.
func (c *Controller) Pending() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return 0, false
	}
	return c.pending.SceneID, true
}
