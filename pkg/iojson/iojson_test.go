package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"anchor": 2})
	require.NoError(t, err)

	assert.JSONEq(t, `{"anchor":2}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.NoError(t, err)

	assert.Empty(t, out.String())

	var doc Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &doc))
	assert.Equal(t, "error marshaling in iojson.Write", doc.Message)
	assert.Contains(t, doc.Data, "json_error")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("scene missing", map[string]any{"status": 404})
	assert.JSONEq(t, `{"message":"scene missing","data":{"status":404}}`, got)
}

type sample struct {
	Filename string `json:"filename"`
}

func TestInputReader(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scene.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"filename":"alien.txt"}`), 0o644))

		r := &InputReader[sample]{path: path}
		require.True(t, r.Provided())

		got, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, "alien.txt", got.Filename)
	})

	t.Run("stdin", func(t *testing.T) {
		r := &InputReader[sample]{path: "-", stdin: strings.NewReader(`{"filename":"heat.txt"}`)}

		got, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, "heat.txt", got.Filename)
	})

	t.Run("not provided", func(t *testing.T) {
		r := &InputReader[sample]{}
		assert.False(t, r.Provided())
		_, err := r.Read()
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		r := &InputReader[sample]{path: "-", stdin: strings.NewReader(`{`)}
		_, err := r.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})
}
