package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/hay-kot/taskmgr/internal/core/kv"
	mapkv "github.com/hay-kot/taskmgr/pkg/kv"
)

// MemoryStore implements kv.KV in process memory. Nothing survives a restart.
type MemoryStore struct {
	data *mapkv.Store[string, kv.Entry]
}

var _ kv.KV = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory KV store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: mapkv.New[string, kv.Entry]()}
}

// Get retrieves and deserializes a value by key.
func (s *MemoryStore) Get(ctx context.Context, key string, dest any) error {
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
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	return s.SetRaw(ctx, key, data)
}

// SetRaw stores a copy of value verbatim.
func (s *MemoryStore) SetRaw(_ context.Context, key string, value []byte) error {
	now := time.Now()
	s.data.Update(key, func(cur kv.Entry, exists bool) kv.Entry {
		if !exists {
			cur = kv.Entry{Key: key, CreatedAt: now}
		}
		cur.Value = slices.Clone(value)
		cur.UpdatedAt = now
		return cur
	})
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *MemoryStore) ListKeys(_ context.Context) ([]string, error) {
	keys := s.data.Keys()
	sort.Strings(keys)
	return keys, nil
}

// GetRaw retrieves a raw KV entry with metadata.
func (s *MemoryStore) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	entry, ok := s.data.Get(key)
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	entry.Value = slices.Clone(entry.Value)
	return entry, nil
}
