// Package provider retrieves scene annotation data from the analysis
// back end or from a directory of fixture files.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

// Provider returns the annotation of one scene of a document.
type Provider interface {
	SceneAnnotation(ctx context.Context, document string, sceneID int) (annotation.SceneAnnotation, error)
}

// RetrievalFailedError is returned when annotation data could not be
// retrieved. StatusCode is the non-2xx status of the response, or 0 when
// no response was received (Err then holds the transport error).
type RetrievalFailedError struct {
	Document   string
	SceneID    int
	StatusCode int
	Err        error
}

func (e *RetrievalFailedError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("retrieve scene %d of %q: %v", e.SceneID, e.Document, e.Err)
	}
	return fmt.Sprintf("retrieve scene %d of %q: status %d", e.SceneID, e.Document, e.StatusCode)
}

func (e *RetrievalFailedError) Unwrap() error {
	return e.Err
}

// sceneResponse is the wire format of GET /content-scene/{document}/{sceneId}.
type sceneResponse struct {
	Filename           string             `json:"filename"`
	SceneID            *int               `json:"scene_id"`
	SceneContent       []string           `json:"scene_content"`
	ValidatingLines    []int              `json:"validating_lines"`
	LinesWithMaleWords map[string][][]int `json:"lines_with_male_words"`
}

// Decode parses a scene response body. The requested document and scene
// id identify the result; echoed values that disagree are only logged,
// with the fields carried by ctx.
func Decode(ctx context.Context, data []byte, document string, sceneID int) (annotation.SceneAnnotation, error) {
	var resp sceneResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return annotation.SceneAnnotation{}, fmt.Errorf("decode scene response: %w", err)
	}

	if resp.Filename != "" && resp.Filename != document {
		log.Warn().Ctx(ctx).
			Str("requested", document).
			Str("received", resp.Filename).
			Msg("provider: response document does not match request")
	}
	if resp.SceneID != nil && *resp.SceneID != sceneID {
		log.Warn().Ctx(ctx).
			Int("requested", sceneID).
			Int("received", *resp.SceneID).
			Msg("provider: response scene id does not match request")
	}

	flagged := make(map[int][]annotation.Range, len(resp.LinesWithMaleWords))
	for key, pairs := range resp.LinesWithMaleWords {
		line, err := strconv.Atoi(key)
		if err != nil {
			return annotation.SceneAnnotation{}, &annotation.InvalidAnnotationError{
				Line:   -1,
				Reason: fmt.Sprintf("flagged range key %q is not a line index", key),
			}
		}

		ranges := make([]annotation.Range, 0, len(pairs))
		for j, pair := range pairs {
			if len(pair) != 2 {
				return annotation.SceneAnnotation{}, &annotation.InvalidAnnotationError{
					Line:   line,
					Reason: fmt.Sprintf("range %d has %d offsets, want 2", j, len(pair)),
				}
			}
			ranges = append(ranges, annotation.Range{Start: pair[0], End: pair[1]})
		}
		flagged[line] = ranges
	}

	return annotation.SceneAnnotation{
		Document:        document,
		SceneID:         sceneID,
		Lines:           resp.SceneContent,
		ValidatingLines: resp.ValidatingLines,
		FlaggedRanges:   flagged,
	}, nil
}
