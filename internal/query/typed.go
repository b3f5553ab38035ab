package query

import (
	"context"
	"fmt"
)

// Get is the typed form of Cache.Fetch.
func Get[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, erase(fn))
	return cast[T](key, v, err)
}

// Refresh is the typed form of Cache.Refetch.
func Refresh[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	v, err := c.Refetch(ctx, key, erase(fn))
	return cast[T](key, v, err)
}

// Value returns the snapshot's value as T, if it holds one.
func Value[T any](s Snapshot) (T, bool) {
	if !s.HasValue {
		var zero T
		return zero, false
	}
	v, ok := s.Value.(T)
	return v, ok
}

func erase[T any](fn func(context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

func cast[T any](key Key, v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached value has type %T, want %T", key, v, zero)
	}
	return t, nil
}
