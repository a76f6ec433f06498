package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

const userAgent = "scenelens"

// HTTPProvider fetches annotations from the analysis API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTP creates a provider for the API rooted at baseURL.
func NewHTTP(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SceneURL returns the endpoint for one scene.
func (p *HTTPProvider) SceneURL(document string, sceneID int) string {
	return p.baseURL + "/content-scene/" + url.PathEscape(document) + "/" + strconv.Itoa(sceneID)
}

// SceneAnnotation implements Provider.
func (p *HTTPProvider) SceneAnnotation(ctx context.Context, document string, sceneID int) (annotation.SceneAnnotation, error) {
	endpoint := p.SceneURL(document, sceneID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return annotation.SceneAnnotation{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return annotation.SceneAnnotation{}, &RetrievalFailedError{Document: document, SceneID: sceneID, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.log.Debug().Err(err).Msg("close scene response body")
		}
	}()

	p.log.Debug().
		Ctx(ctx).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("scene request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return annotation.SceneAnnotation{}, &RetrievalFailedError{
			Document:   document,
			SceneID:    sceneID,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return annotation.SceneAnnotation{}, &RetrievalFailedError{
			Document: document,
			SceneID:  sceneID,
			Err:      fmt.Errorf("read scene body: %w", err),
		}
	}

	return Decode(ctx, body, document, sceneID)
}
