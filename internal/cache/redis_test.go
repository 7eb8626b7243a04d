// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	opts := DefaultRedisCacheOptions()
	opts.URL = "redis://" + mr.Addr()
	opts.Prefix = "test:"
	opts.DefaultTTL = time.Minute

	c, err := NewRedisCache(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewRedisCache_Errors(t *testing.T) {
	_, err := NewRedisCache(RedisCacheOptions{})
	assert.Error(t, err)

	_, err = NewRedisCache(RedisCacheOptions{URL: "not a url"})
	assert.Error(t, err)
}

func TestRedisCache_Basic(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, mr.Exists("test:k"), "key must carry the prefix")

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	ok, err := c.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	stats := c.Stats()
	assert.Equal(t, "redis", stats.Backend)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Second))
	require.NoError(t, c.Set(ctx, "default", []byte("y"), 0))
	assert.Equal(t, time.Minute, mr.TTL("test:default"))

	mr.FastForward(11 * time.Second)
	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "default")
	assert.NoError(t, err)
}

func TestRedisCache_DeleteByPrefixAndClear(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:keep", "1"))
	for _, k := range []string{"content:products:ar", "content:products:en", "content:partners:ar"} {
		require.NoError(t, c.Set(ctx, k, []byte("1"), 0))
	}

	require.NoError(t, c.DeleteByPrefix(ctx, "content:products:"))
	assert.False(t, mr.Exists("test:content:products:ar"))
	assert.True(t, mr.Exists("test:content:partners:ar"))
	assert.Equal(t, 1, c.Stats().Items)

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("test:content:partners:ar"))
	assert.True(t, mr.Exists("other:keep"), "Clear must not touch keys outside the prefix")
}

func TestRedisCache_Closed(t *testing.T) {
	c, _ := newTestRedisCache(t)
	require.NoError(t, c.Close())

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrCacheClosed)
}

func TestNew_SelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	c := New(Config{RedisURL: "redis://" + mr.Addr(), DefaultTTL: time.Minute}, nil)
	defer func() { _ = c.Close() }()
	_, isRedis := c.(*RedisCache)
	assert.True(t, isRedis)

	m := New(Config{DefaultTTL: time.Minute}, nil)
	defer func() { _ = m.Close() }()
	_, isMemory := m.(*MemoryCache)
	assert.True(t, isMemory)

	addr := mr.Addr()
	mr.Close()
	fallback := New(Config{RedisURL: "redis://" + addr}, nil)
	defer func() { _ = fallback.Close() }()
	_, isMemory = fallback.(*MemoryCache)
	assert.True(t, isMemory, "unreachable redis must fall back to memory")
}
