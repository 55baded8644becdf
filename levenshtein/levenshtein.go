// Package levenshtein computes edit distances between strings, one pair at a
// time or in parallel batches.
//
// Distances count single-unit insertions, deletions and substitutions. A unit
// is either a Unicode code point or an extended grapheme cluster, chosen per
// call with a Mode. Strings are compared as given; no normalization is
// applied, so precomposed and decomposed forms of the same character differ.
//
// Batches run on worker pools that are shared process-wide and keyed by
// worker count. A pool is created the first time a count is requested and is
// reused for the life of the process.
package levenshtein

import (
	"sync"

	"github.com/Iron-Ham/levdist/internal/batch"
	"github.com/Iron-Ham/levdist/internal/errors"
	"github.com/Iron-Ham/levdist/internal/segment"
	"github.com/Iron-Ham/levdist/internal/workerpool"
)

// Mode selects the unit of comparison.
type Mode = segment.Mode

const (
	// CodePoint compares Unicode scalar values.
	CodePoint = segment.CodePoint
	// Grapheme compares user-perceived characters.
	Grapheme = segment.Grapheme
)

// Pair is one comparison in a batch.
type Pair = batch.Pair

var (
	// ErrInvalidArgument matches errors caused by a bad caller-supplied value,
	// such as a worker count of zero.
	ErrInvalidArgument = errors.ErrInvalidArgument

	// ErrPoolConstruction matches errors caused by a worker pool that could
	// not be created.
	ErrPoolConstruction = errors.ErrPoolConstruction
)

// ParseMode converts a mode name such as "codepoint" or "grapheme" to a Mode.
func ParseMode(s string) (Mode, error) {
	return segment.ParseMode(s)
}

// ComputeDistance returns the edit distance between s1 and s2. Bytes that
// are not valid UTF-8 count as one unit each in either mode and only match
// the same byte.
func ComputeDistance(s1, s2 string, mode Mode) int {
	return batch.Measure(s1, s2, mode)
}

// ComputeBatch returns the edit distance of every pair, in input order.
//
// Without WithWorkers the batch runs on a default pool sized to
// runtime.GOMAXPROCS. A worker count below one fails with an error matching
// ErrInvalidArgument; a pool that cannot be built fails with an error
// matching ErrPoolConstruction. Either way no partial results are returned.
func ComputeBatch(pairs []Pair, mode Mode, opts ...BatchOption) ([]int, error) {
	return defaultEngine().ComputeBatch(pairs, mode, opts...)
}

// BatchOption adjusts a single ComputeBatch call.
type BatchOption func(*batch.Request)

// WithWorkers runs the batch on the shared pool with n workers.
func WithWorkers(n int) BatchOption {
	return func(r *batch.Request) { r.Workers = &n }
}

// WithHostLock releases l while the batch runs and re-acquires it before
// ComputeBatch returns. The caller must hold l.
func WithHostLock(l sync.Locker) BatchOption {
	return func(r *batch.Request) { r.HostLock = l }
}

var (
	pkgEngine     *Engine
	pkgEngineOnce sync.Once
)

func defaultEngine() *Engine {
	pkgEngineOnce.Do(func() {
		cache := workerpool.Default()
		pkgEngine = &Engine{cache: cache, scheduler: batch.New(cache)}
	})
	return pkgEngine
}
