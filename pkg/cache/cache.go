// Package cache memoizes expensive match computations with thundering herd
// prevention. Values are JSON blobs keyed by a digest of the inputs, so a
// repeated request against an unchanged roster is served from disk.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"
)

// Stats tracks cache hit/miss counts.
type Stats struct {
	Hits   int64
	Misses int64
}

// HitRate returns hits as a share of all lookups, 0 to 1.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache wraps sfcache for match result caching.
type Cache struct {
	*sfcache.TieredCache[string, []byte]

	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a Cache with disk persistence at ~/.cache/rematch.
func New(ttl time.Duration) (*Cache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return NewWithPath(ttl, filepath.Join(cacheDir, "rematch"))
}

// NewWithPath creates a Cache with disk persistence at the specified path.
func NewWithPath(ttl time.Duration, cachePath string) (*Cache, error) {
	if err := os.MkdirAll(cachePath, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	persist, err := localfs.New[string, []byte]("rematch", cachePath)
	if err != nil {
		return nil, fmt.Errorf("create persistence layer: %w", err)
	}

	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache{TieredCache: tc, ttl: ttl}, nil
}

// NewNull creates a Cache with no persistence (all gets miss, all sets discard).
func NewNull() *Cache {
	tc, err := sfcache.NewTiered[string, []byte](null.New[string, []byte]())
	if err != nil {
		panic("sfcache.NewTiered with null store: " + err.Error())
	}
	return &Cache{TieredCache: tc, ttl: 0}
}

// Key builds a stable cache key from its parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Do returns the cached value for key, computing and storing it on a miss.
// The boolean reports whether the value came from the cache.
func (c *Cache) Do(ctx context.Context, key string, compute func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	computed := false
	data, err := c.GetSet(ctx, key, func(ctx context.Context) ([]byte, error) {
		computed = true
		return compute(ctx)
	}, c.ttl)
	if err != nil {
		return nil, false, err
	}
	if computed {
		c.misses.Add(1)
		return data, false, nil
	}
	c.hits.Add(1)
	return data, true, nil
}

// Stats returns the hit and miss counts seen by this Cache.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
