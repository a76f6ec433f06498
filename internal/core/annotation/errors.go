package annotation

import (
	"errors"
	"fmt"
)

// ErrInvalidAnnotation matches every *InvalidAnnotationError via errors.Is.
var ErrInvalidAnnotation = errors.New("invalid annotation")

// InvalidAnnotationError reports annotation data that violates the
// builder's contract. Line is -1 when the problem is not tied to a line.
type InvalidAnnotationError struct {
	Line   int
	Reason string
}

func (e *InvalidAnnotationError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("invalid annotation: %s", e.Reason)
	}
	return fmt.Sprintf("invalid annotation: line %d: %s", e.Line, e.Reason)
}

func (e *InvalidAnnotationError) Is(target error) bool {
	return target == ErrInvalidAnnotation
}

func invalidf(line int, format string, args ...any) error {
	return &InvalidAnnotationError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
