package levenshtein

import (
	"github.com/Iron-Ham/levdist/internal/batch"
	"github.com/Iron-Ham/levdist/internal/logging"
	"github.com/Iron-Ham/levdist/internal/workerpool"
)

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	maxWorkers     int
	defaultWorkers int
	logger         *logging.Logger
}

// WithMaxWorkers caps the pool size the engine will build. Without it, or
// with zero or less, pool size is unlimited.
func WithMaxWorkers(n int) EngineOption {
	return func(c *engineConfig) { c.maxWorkers = n }
}

// WithDefaultWorkers sets the size of the pool used when a batch does not
// name a worker count. Zero or less means runtime.GOMAXPROCS(0).
func WithDefaultWorkers(n int) EngineOption {
	return func(c *engineConfig) { c.defaultWorkers = n }
}

// WithLogger sets the logger for pool lifecycle and batch events.
func WithLogger(l *logging.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = l }
}

// Engine runs batches on its own set of worker pools, isolated from the
// package-level functions.
type Engine struct {
	cache     *workerpool.Cache
	scheduler *batch.Scheduler
}

// NewEngine creates an Engine with a private pool cache. Call Close when the
// engine is no longer needed.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := engineConfig{
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cache := workerpool.NewCache(
		workerpool.WithMaxWorkers(cfg.maxWorkers),
		workerpool.WithLogger(cfg.logger),
	)
	return &Engine{
		cache: cache,
		scheduler: batch.New(cache,
			batch.WithDefaultWorkers(cfg.defaultWorkers),
			batch.WithLogger(cfg.logger),
		),
	}
}

// ComputeDistance returns the edit distance between s1 and s2.
func (e *Engine) ComputeDistance(s1, s2 string, mode Mode) int {
	return batch.Measure(s1, s2, mode)
}

// ComputeBatch returns the edit distance of every pair, in input order.
func (e *Engine) ComputeBatch(pairs []Pair, mode Mode, opts ...BatchOption) ([]int, error) {
	req := batch.Request{Pairs: pairs, Mode: mode}
	for _, opt := range opts {
		opt(&req)
	}
	return e.scheduler.Run(req)
}

// PoolSizes returns the worker counts the engine has built pools for, in
// ascending order. The default pool is not included.
func (e *Engine) PoolSizes() []int {
	return e.cache.Sizes()
}

// Close stops the engine's worker pools.
func (e *Engine) Close() {
	e.scheduler.Close()
	e.cache.Close()
}
