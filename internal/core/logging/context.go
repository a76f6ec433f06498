package logging

import "context"

type contextKey string

const (
	viewerIDKey contextKey = "viewer_id"
	documentKey contextKey = "document"
)

// WithViewerID adds the id of a scene display session to the context.
func WithViewerID(ctx context.Context, viewerID string) context.Context {
	return context.WithValue(ctx, viewerIDKey, viewerID)
}

// WithDocument adds the displayed document name to the context.
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, documentKey, document)
}

// GetViewerID retrieves the viewer id from the context.
// Returns empty string if not present.
func GetViewerID(ctx context.Context) string {
	if id, ok := ctx.Value(viewerIDKey).(string); ok {
		return id
	}
	return ""
}

// GetDocument retrieves the document name from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if doc, ok := ctx.Value(documentKey).(string); ok {
		return doc
	}
	return ""
}
