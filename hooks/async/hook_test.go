package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/cachestore"
)

type counting struct {
	cachestore.NopHooks
	mu    sync.Mutex
	hits  int
	block chan struct{}
}

func (c *counting) Hit(string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func TestDeliversBeforeClose(t *testing.T) {
	inner := &counting{}
	h := New(inner, 2, 100)
	for i := 0; i < 50; i++ {
		h.Hit("k")
	}
	h.Close()
	if inner.hits != 50 {
		t.Fatalf("hits=%d", inner.hits)
	}
	h.Hit("late")
	if h.Dropped() != 1 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
	h.Close() // idempotent
}

func TestDropsWhenFull(t *testing.T) {
	inner := &counting{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// one event may sit in the worker, one in the queue; the rest drop
	for i := 0; i < 10; i++ {
		h.Hit("k")
	}
	close(inner.block)
	h.Close()

	if got := uint64(inner.hits) + h.Dropped(); got != 10 {
		t.Fatalf("hits+dropped=%d", got)
	}
	if h.Dropped() < 8 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}
