package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

// FileProvider serves annotations from a fixture directory laid out as
// <dir>/<document>/<sceneID>.json, each file holding a scene response.
type FileProvider struct {
	dir string
}

var _ Provider = (*FileProvider)(nil)

// NewFile creates a provider reading from dir.
func NewFile(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Dir returns the fixture directory.
func (p *FileProvider) Dir() string {
	return p.dir
}

// ScenePath returns the fixture path for one scene.
func (p *FileProvider) ScenePath(document string, sceneID int) string {
	return filepath.Join(p.dir, filepath.Base(document), strconv.Itoa(sceneID)+".json")
}

// SceneAnnotation implements Provider. A missing fixture is reported as a
// 404 retrieval failure.
func (p *FileProvider) SceneAnnotation(ctx context.Context, document string, sceneID int) (annotation.SceneAnnotation, error) {
	if err := ctx.Err(); err != nil {
		return annotation.SceneAnnotation{}, err
	}

	data, err := os.ReadFile(p.ScenePath(document, sceneID))
	if err != nil {
		status := 0
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		return annotation.SceneAnnotation{}, &RetrievalFailedError{
			Document:   document,
			SceneID:    sceneID,
			StatusCode: status,
			Err:        fmt.Errorf("read fixture: %w", err),
		}
	}

	return Decode(ctx, data, document, sceneID)
}
