// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"
)

// TypedCache stores values of one type as JSON under a key namespace.
type TypedCache[T any] struct {
	cache      Cacher
	namespace  string
	defaultTTL time.Duration
	generation atomic.Uint64
}

// NewTypedCache creates a TypedCache whose keys are prefixed with
// namespace and a colon.
func NewTypedCache[T any](cache Cacher, namespace string, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		namespace:  namespace,
		defaultTTL: defaultTTL,
	}
}

func (c *TypedCache[T]) key(k string) string {
	return c.namespace + ":" + k
}

// Get returns the cached value and true, or the zero value and false.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.cache.Get(ctx, c.key(key))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Set stores a value with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.key(key), data, c.defaultTTL)
}

// Delete removes a key. Like Invalidate it discards values still loading.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	c.generation.Add(1)
	return c.cache.Delete(ctx, c.key(key))
}

// Invalidate removes every key in the namespace. Values computed by a
// GetOrSet that was loading at the time are not stored.
func (c *TypedCache[T]) Invalidate(ctx context.Context) error {
	c.generation.Add(1)
	return c.cache.DeleteByPrefix(ctx, c.namespace+":")
}

// GetOrSet returns the cached value or computes, stores and returns it.
// A failed store does not fail the call.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	gen := c.generation.Load()
	value, err := fn()
	if err != nil {
		return value, err
	}
	if c.generation.Load() == gen {
		_ = c.Set(ctx, key, value)
	}
	return value, nil
}
