package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, "tasks", []string{"a"}))

	second := NewFileStore(path)
	var got []string
	require.NoError(t, second.Get(ctx, "tasks", &got))
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, path, second.Path())
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	require.NoError(t, NewFileStore(path).Set(ctx, "k", 1))

	_, err := os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_EmptyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	keys, err := NewFileStore(path).ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)

	_, err := store.GetRaw(ctx, "tasks")
	require.ErrorContains(t, err, "decode")

	require.NoError(t, store.Set(ctx, "tasks", []string{"fresh"}))

	var got []string
	require.NoError(t, store.Get(ctx, "tasks", &got))
	assert.Equal(t, []string{"fresh"}, got)

	aside, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(aside))
}

func TestFileStore_DeleteOnCorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o644))

	store := NewFileStore(path)
	require.NoError(t, store.Delete(ctx, "tasks"))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_SetRawInvalidUTF8(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))

	require.NoError(t, store.SetRaw(ctx, "k", []byte("ok\xff")))

	raw, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ok�", string(raw.Value))
}
