package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// InputReader decodes a JSON document named by a --file flag. The value
// "-" reads from stdin.
type InputReader[T any] struct {
	path  string
	stdin io.Reader
}

func (r *InputReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read JSON input from a file instead of fetching it (- for stdin)",
		Destination: &r.path,
	}
}

// Provided reports whether the flag was given.
func (r *InputReader[T]) Provided() bool {
	return r.path != ""
}

func (r *InputReader[T]) Read() (T, error) {
	var input T

	var reader io.Reader
	switch {
	case r.path == "":
		return input, fmt.Errorf("no input file given")
	case r.path == "-":
		if r.stdin != nil {
			reader = r.stdin
			break
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input or pass a file")
		}
		reader = os.Stdin
	default:
		f, err := os.Open(r.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
