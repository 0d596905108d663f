package ristretto

import (
	"context"
	"errors"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/cachestore/internal/keyspace"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// Provider is an in-process backend. Ristretto cannot enumerate its keys, so
// the provider keeps a key index next to the cache; entries evicted or expired
// by ristretto are pruned from the index lazily during Keys/Scan.
type Provider struct {
	c *rc.Cache

	mu    sync.Mutex
	index map[string]struct{}
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // cost of an entry is its payload length
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, index: make(map[string]struct{})}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for ristretto's write buffer so the entry is visible to the next
// Get. ok=false means the admission policy dropped the write.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if !p.c.SetWithTTL(key, value, int64(len(value)), ttl) {
		return false, nil
	}
	p.c.Wait()

	p.mu.Lock()
	p.index[key] = struct{}{}
	p.mu.Unlock()
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	p.mu.Lock()
	delete(p.index, key)
	p.mu.Unlock()
	return nil
}

func (p *Provider) Keys(_ context.Context, pattern string) ([]string, error) {
	m, err := keyspace.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.live(m), nil
}

func (p *Provider) Scan(_ context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	m, err := keyspace.Compile(pattern)
	if err != nil {
		return nil, 0, err
	}
	keys, next := pr.Page(p.live(m), cursor, count)
	return keys, next, nil
}

// live returns indexed keys matching m that are still present in the cache.
func (p *Provider) live(m keyspace.Matcher) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0)
	for k := range p.index {
		if _, ok := p.c.Get(k); !ok {
			delete(p.index, k)
			continue
		}
		if m.Match(k) {
			out = append(out, k)
		}
	}
	return out
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
