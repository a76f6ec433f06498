// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// DocumentName validates a script file name used as a path segment.
func DocumentName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("document is required")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("document %q must be a file name, not a path", name)
	case name == "." || name == "..":
		return fmt.Errorf("document %q is not a file name", name)
	}
	return nil
}

// SceneID validates a scene identifier.
func SceneID(id int) error {
	if id < 0 {
		return fmt.Errorf("scene id %d cannot be negative", id)
	}
	return nil
}

// HTTPURL validates an absolute http(s) URL with a host.
func HTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

// Selection validates a document and the scenes requested from it.
func Selection(document string, scenes ...int) error {
	errs := []error{criterio.Run("document", document, DocumentName)}
	for _, id := range scenes {
		errs = append(errs, criterio.Run("scene", id, SceneID))
	}
	return criterio.ValidateStruct(errs...)
}
