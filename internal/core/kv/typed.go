package kv

import (
	"context"
	"errors"
)

// TypedKV reads and writes values of a single type T, optionally under a
// "namespace:" key prefix.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Scoped wraps store for values of type T. Keys are prefixed with
// "namespace:" unless namespace is empty.
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	t := &TypedKV[T]{store: store}
	if namespace != "" {
		t.prefix = namespace + ":"
	}
	return t
}

func (t *TypedKV[T]) key(k string) string { return t.prefix + k }

// Get decodes the value at key. A missing key yields an error wrapping ErrNotFound.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	err := t.store.Get(ctx, t.key(key), &v)
	return v, err
}

// Lookup is Get with a missing key reported as found=false instead of an error.
func (t *TypedKV[T]) Lookup(ctx context.Context, key string) (v T, found bool, err error) {
	v, err = t.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return v, false, nil
	case err != nil:
		return v, true, err
	}
	return v, true, nil
}

func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	return t.store.Set(ctx, t.key(key), value)
}

func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.key(key))
}

func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.key(key))
}
