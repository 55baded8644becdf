// Package workerpool provides fixed-size goroutine pools and a registry that
// shares one pool per requested worker count.
//
// The core types are:
//
//   - [Pool]: a fixed set of long-lived workers that execute indexed tasks
//     submitted through [Pool.Run]. A pool is never resized.
//   - [Cache]: a get-or-create registry keyed by worker count. The first
//     request for a count builds the pool; later requests reuse it.
//
// # Usage
//
//	cache := workerpool.NewCache(workerpool.WithMaxWorkers(256))
//	pool, err := cache.GetOrCreate(4)
//	if err != nil {
//	    return err
//	}
//	out := make([]int, len(items))
//	err = pool.Run(len(items), func(i int) {
//	    out[i] = work(items[i])
//	})
//
// # Lifecycle
//
// Cached pools are never evicted. The number of entries is bounded by the
// distinct worker counts callers request. [Default] returns a lazily created
// process-wide cache; tests should build isolated caches with [NewCache].
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Concurrent
// GetOrCreate calls for the same count construct exactly one pool.
package workerpool
