package task

import (
	"context"
	"fmt"

	"github.com/hay-kot/taskmgr/internal/core/kv"
)

// DefaultKey is the storage key the task list is kept under.
const DefaultKey = "tasks"

// Storage persists the whole task list.
type Storage interface {
	// Load returns the stored list. found is false when nothing has been stored yet.
	// A non-nil error means a value exists but could not be read or decoded.
	Load(ctx context.Context) (tasks []Task, found bool, err error)
	// Save overwrites the stored list.
	Save(ctx context.Context, tasks []Task) error
}

// KVStorage stores the task list as a JSON array under a single key of a KV store.
type KVStorage struct {
	kv  *kv.TypedKV[[]Task]
	key string
}

var _ Storage = (*KVStorage)(nil)

// NewKVStorage creates a Storage backed by store. An empty key falls back to DefaultKey.
func NewKVStorage(store kv.KV, key string) *KVStorage {
	if key == "" {
		key = DefaultKey
	}
	return &KVStorage{
		kv:  kv.Scoped[[]Task](store, ""),
		key: key,
	}
}

// Key returns the storage key in use.
func (s *KVStorage) Key() string {
	return s.key
}

// Load reads the list from the KV store.
func (s *KVStorage) Load(ctx context.Context) ([]Task, bool, error) {
	tasks, found, err := s.kv.Lookup(ctx, s.key)
	if err != nil {
		return nil, true, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, found, nil
}

// Save writes the full list, replacing whatever was stored.
func (s *KVStorage) Save(ctx context.Context, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	if err := s.kv.Set(ctx, s.key, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
