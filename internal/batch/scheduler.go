// Package batch measures many string pairs in parallel on shared worker pools
// and returns the distances in input order.
package batch

import (
	"runtime"
	"sync"
	"time"

	"github.com/Iron-Ham/levdist/internal/distance"
	"github.com/Iron-Ham/levdist/internal/errors"
	"github.com/Iron-Ham/levdist/internal/logging"
	"github.com/Iron-Ham/levdist/internal/segment"
	"github.com/Iron-Ham/levdist/internal/workerpool"
)

// Pair is one comparison in a batch.
type Pair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// Request describes one batch call.
type Request struct {
	Pairs []Pair
	Mode  segment.Mode

	// Workers selects a cached pool of that size. Nil uses the scheduler's
	// default pool.
	Workers *int

	// HostLock, when set, is released while the batch runs and re-acquired
	// before Run returns.
	HostLock sync.Locker
}

// Measure returns the edit distance between a and b under mode.
func Measure(a, b string, mode segment.Mode) int {
	if a == b {
		return 0
	}
	if mode == segment.Grapheme {
		return distance.Levenshtein(segment.Graphemes(a), segment.Graphemes(b))
	}
	return distance.Levenshtein(segment.Runes(a), segment.Runes(b))
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDefaultWorkers sets the size of the pool used when a request does not
// name a worker count. Zero or less means runtime.GOMAXPROCS(0).
func WithDefaultWorkers(n int) Option {
	return func(s *Scheduler) { s.defaultWorkers = n }
}

// WithDefaultBuilder replaces the constructor for the default pool.
func WithDefaultBuilder(b workerpool.Builder) Option {
	return func(s *Scheduler) { s.buildDefault = b }
}

// WithLogger sets the scheduler's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler fans batch requests out over worker pools.
type Scheduler struct {
	cache          *workerpool.Cache
	defaultWorkers int
	buildDefault   workerpool.Builder
	logger         *logging.Logger

	defaultMu   sync.Mutex
	defaultPool *workerpool.Pool
}

// New creates a Scheduler that draws explicitly sized pools from cache.
func New(cache *workerpool.Cache, opts ...Option) *Scheduler {
	s := &Scheduler{
		cache:        cache,
		buildDefault: workerpool.New,
		logger:       logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("batch")
	return s
}

// Run measures every pair in req and returns the distances in input order.
//
// An empty request returns an empty slice without resolving any pool. A
// worker count below one fails with an ErrInvalidArgument error before any
// work starts, and a pool construction failure fails the whole call; no
// partial results are returned.
func (s *Scheduler) Run(req Request) ([]int, error) {
	if len(req.Pairs) == 0 {
		return []int{}, nil
	}
	if req.Workers != nil && *req.Workers < 1 {
		return nil, errors.NewArgumentError("workers", *req.Workers, 1).
			WithMessage("worker count must be at least 1")
	}

	if req.HostLock != nil {
		req.HostLock.Unlock()
		defer req.HostLock.Lock()
	}

	pool, err := s.resolve(req.Workers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]int, len(req.Pairs))
	err = pool.Run(len(req.Pairs), func(i int) {
		p := req.Pairs[i]
		results[i] = Measure(p.A, p.B, req.Mode)
	})
	if err != nil {
		return nil, err
	}

	if s.logger.Enabled(logging.LevelDebug) {
		s.logger.Debug("batch completed",
			"pairs", len(req.Pairs),
			"workers", pool.Workers(),
			"mode", req.Mode.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return results, nil
}

func (s *Scheduler) resolve(workers *int) (*workerpool.Pool, error) {
	if workers != nil {
		return s.cache.GetOrCreate(*workers)
	}
	return s.defaultPoolOrBuild()
}

// defaultPoolOrBuild builds the default pool on first use. A failed build is
// not remembered.
func (s *Scheduler) defaultPoolOrBuild() (*workerpool.Pool, error) {
	s.defaultMu.Lock()
	defer s.defaultMu.Unlock()

	if s.defaultPool != nil {
		return s.defaultPool, nil
	}

	n := s.DefaultWorkers()
	p, err := s.buildDefault(n)
	if err == nil && p == nil {
		err = errors.New("builder returned no pool")
	}
	if err != nil {
		s.logger.Warn("default pool construction failed", "workers", n, "error", err.Error())
		var poolErr *errors.PoolError
		if errors.As(err, &poolErr) {
			return nil, err
		}
		return nil, errors.NewPoolError(n, err)
	}

	s.logger.Info("default pool created", "workers", n)
	s.defaultPool = p
	return p, nil
}

// DefaultWorkers returns the size of the default pool.
func (s *Scheduler) DefaultWorkers() int {
	if s.defaultWorkers > 0 {
		return s.defaultWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// Close shuts down the default pool if one was built. The cache is owned by
// the caller and is left untouched.
func (s *Scheduler) Close() {
	s.defaultMu.Lock()
	p := s.defaultPool
	s.defaultPool = nil
	s.defaultMu.Unlock()

	if p != nil {
		p.Close()
	}
}
