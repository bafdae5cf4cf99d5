package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hay-kot/taskmgr/internal/core/kv"
)

// fileEntry is one key of the on-disk document. Values are kept as strings
// so bytes written with SetRaw need not be valid JSON. Invalid UTF-8 is
// replaced with U+FFFD on save.
type fileEntry struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// errCorrupt marks a document file that exists but cannot be decoded.
var errCorrupt = errors.New("corrupt document")

// FileStore implements kv.KV using a single JSON file for persistence.
// Every write rewrites the whole file atomically.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*FileStore)(nil)

// NewFileStore creates a new JSON file KV store at the given path.
// The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get retrieves and deserializes a value by key.
func (s *FileStore) Get(ctx context.Context, key string, dest any) error {
	entry, err := s.GetRaw(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	return s.SetRaw(ctx, key, data)
}

// SetRaw stores bytes verbatim.
func (s *FileStore) SetRaw(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	now := time.Now()
	entry, ok := doc[key]
	if !ok {
		entry.CreatedAt = now
	}
	entry.Value = string(value)
	entry.UpdatedAt = now
	doc[key] = entry

	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	if _, ok := doc[key]; !ok {
		return nil
	}

	delete(doc, key)
	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *FileStore) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	_, ok := doc[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *FileStore) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetRaw retrieves a raw KV entry with metadata.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *FileStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	entry, ok := doc[key]
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	return kv.Entry{
		Key:       key,
		Value:     json.RawMessage(entry.Value),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}

// load reads the document from disk.
// Returns an empty document if the file doesn't exist or is empty.
func (s *FileStore) load() (map[string]fileEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]fileEntry{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return map[string]fileEntry{}, nil
	}

	doc := map[string]fileEntry{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", s.path, errCorrupt, err)
	}
	return doc, nil
}

// loadForWrite is load for callers about to rewrite the file. A corrupt
// document is moved to <path>.corrupt and writing starts from an empty one.
func (s *FileStore) loadForWrite() (map[string]fileEntry, error) {
	doc, err := s.load()
	if !errors.Is(err, errCorrupt) {
		return doc, err
	}

	if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
		return nil, fmt.Errorf("move aside corrupt document: %w", err)
	}
	return map[string]fileEntry{}, nil
}

// save writes the document to disk atomically.
func (s *FileStore) save(doc map[string]fileEntry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
