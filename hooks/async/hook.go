// Package asynchook moves hook delivery off the store's call path. Events are
// queued to a bounded channel and dropped when it is full.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 100, MissEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	store, _ := cachestore.New[User](ctx, cachestore.Options[User]{
//	    Redis: &redis.Config{URL: "redis://localhost:6379/0"},
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/cachestore"
)

type Hooks struct {
	inner   cachestore.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(inner cachestore.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped. The store must not be used concurrently with Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the queue was full
// or the hooks were closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Hit(k string)  { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k string) { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) DecodeFailed(k string, err error) {
	h.try(func() { h.inner.DecodeFailed(k, err) })
}
func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) BulkDeleted(p string, n int)  { h.try(func() { h.inner.BulkDeleted(p, n) }) }
func (h *Hooks) BulkDeleteFailed(p string, n int, err error) {
	h.try(func() { h.inner.BulkDeleteFailed(p, n, err) })
}
