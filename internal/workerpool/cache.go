package workerpool

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Iron-Ham/levdist/internal/errors"
	"github.com/Iron-Ham/levdist/internal/logging"
)

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithBuilder replaces the function used to construct pools on a miss.
func WithBuilder(b Builder) CacheOption {
	return func(c *Cache) { c.build = b }
}

// WithMaxWorkers caps the size of pools the cache will construct. Caches
// have no cap unless this is set; zero or a negative value removes it.
func WithMaxWorkers(n int) CacheOption {
	return func(c *Cache) { c.maxWorkers = n }
}

// WithLogger sets the logger used for pool lifecycle events.
func WithLogger(l *logging.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cache maps worker counts to shared pools. Entries are never evicted.
type Cache struct {
	mu    sync.RWMutex
	pools map[int]*Pool
	group singleflight.Group

	build      Builder
	maxWorkers int
	logger     *logging.Logger
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		pools:  make(map[int]*Pool),
		build:  New,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("workerpool")
	return c
}

// GetOrCreate returns the pool for workers, building it on first use.
//
// Concurrent calls for the same count share a single construction. A failed
// construction is reported to every waiting caller and is not cached, so a
// later call tries again.
func (c *Cache) GetOrCreate(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, errors.NewArgumentError("workers", workers, 1).
			WithMessage("worker count must be at least 1")
	}

	if p := c.lookup(workers); p != nil {
		return p, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(workers), func() (any, error) {
		if p := c.lookup(workers); p != nil {
			return p, nil
		}

		p, err := c.construct(workers)
		if err != nil {
			c.logger.Warn("worker pool construction failed",
				"workers", workers,
				"severity", errors.GetSeverity(err).String(),
				"error", err.Error(),
			)
			return nil, err
		}

		c.mu.Lock()
		c.pools[workers] = p
		size := len(c.pools)
		c.mu.Unlock()

		c.logger.Info("worker pool created", "workers", workers, "cached_pools", size)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pool), nil
}

func (c *Cache) lookup(workers int) *Pool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pools[workers]
}

func (c *Cache) construct(workers int) (*Pool, error) {
	if c.maxWorkers > 0 && workers > c.maxWorkers {
		return nil, errors.NewPoolError(workers, errors.Wrapf(errors.ErrResourceLimit,
			"requested %d workers, limit is %d", workers, c.maxWorkers))
	}

	p, err := c.build(workers)
	if err != nil {
		var poolErr *errors.PoolError
		if errors.As(err, &poolErr) {
			return nil, err
		}
		return nil, errors.NewPoolError(workers, err)
	}
	if p == nil {
		return nil, errors.NewPoolError(workers, fmt.Errorf("builder returned no pool"))
	}
	return p, nil
}

// Len returns the number of cached pools.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}

// Sizes returns the worker counts that currently have a cached pool, in
// ascending order.
func (c *Cache) Sizes() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sizes := make([]int, 0, len(c.pools))
	for n := range c.pools {
		sizes = append(sizes, n)
	}
	slices.Sort(sizes)
	return sizes
}

// Close shuts down every cached pool and empties the cache. The cache
// returned by Default is never closed.
func (c *Cache) Close() {
	c.mu.Lock()
	pools := c.pools
	c.pools = make(map[int]*Pool)
	c.mu.Unlock()

	for _, p := range pools {
		p.Close()
	}
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Default returns the process-wide cache, creating it on first use.
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}
