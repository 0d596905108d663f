package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/cachestore/internal/keyspace"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// Provider is an in-process backend on bigcache. bigcache has no per-entry
// TTL: every entry lives for LifeWindow, so the ttl passed to Set (including
// "no expiry") is ignored.
type Provider struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	Shards             int
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	return true, p.c.Set(key, value)
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Keys(_ context.Context, pattern string) ([]string, error) {
	m, err := keyspace.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.match(m)
}

func (p *Provider) Scan(_ context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	m, err := keyspace.Compile(pattern)
	if err != nil {
		return nil, 0, err
	}
	keys, err := p.match(m)
	if err != nil {
		return nil, 0, err
	}
	page, next := pr.Page(keys, cursor, count)
	return page, next, nil
}

func (p *Provider) match(m keyspace.Matcher) ([]string, error) {
	out := make([]string, 0)
	it := p.c.Iterator()
	for it.SetNext() {
		e, err := it.Value()
		if err != nil {
			// entry removed while iterating
			if errors.Is(err, bc.ErrInvalidIteratorState) || errors.Is(err, bc.ErrCannotRetrieveEntry) {
				continue
			}
			return nil, err
		}
		if k := e.Key(); m.Match(k) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
