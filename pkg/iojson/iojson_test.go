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

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]any{"id": "a", "done": true}))
	require.NoError(t, WriteLine(&buf, map[string]any{"id": "b", "done": false}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"a","done":true}`, lines[0])
	assert.JSONEq(t, `{"id":"b","done":false}`, lines[1])
}

func TestWriteLine_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"valid": true}))

	assert.JSONEq(t, `{"valid":true}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)})
	require.Error(t, err)

	assert.Empty(t, out.String())

	var body struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &body))
	assert.Equal(t, "error marshaling output", body.Message)
	assert.Contains(t, body.Data, "json_error")
}

func TestFileReader_Stdin(t *testing.T) {
	fr := FileReader[[]string]{Stdin: strings.NewReader(`["a","b"]`)}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`["x"]`), 0o644))

	fr := FileReader[[]string]{path: path}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestFileReader_InvalidJSON(t *testing.T) {
	fr := FileReader[[]string]{Stdin: strings.NewReader("invalid json")}

	_, err := fr.Read()
	require.ErrorContains(t, err, "decode JSON")
}
