package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts viewer_id and document from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if viewerID := GetViewerID(ctx); viewerID != "" {
		e.Str("viewer_id", viewerID)
	}

	if document := GetDocument(ctx); document != "" {
		e.Str("document", document)
	}
}
