package cachestore

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/cachestore/codec"
	"github.com/unkn0wn-root/cachestore/internal/keyspace"
	pr "github.com/unkn0wn-root/cachestore/provider"
	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

type store[V any] struct {
	ns          keyspace.Namespace
	provider    pr.Provider
	codec       c.Codec[V]
	log         Logger
	hooks       Hooks
	defaultTTL  time.Duration
	scanCount   int64
	enumerate   EnumerateMode
	concurrency int
}

var _ Store[any] = (*store[any])(nil)

func newStore[V any](ctx context.Context, opts Options[V]) (*store[V], error) {
	if opts.DefaultTTL < 0 && opts.DefaultTTL != NoExpiration {
		return nil, ErrInvalidTTL
	}
	if opts.ScanCount < 0 || opts.DeleteConcurrency < 0 {
		return nil, fmt.Errorf("cachestore: ScanCount and DeleteConcurrency must not be negative")
	}
	if opts.Enumerate != EnumerateKeys && opts.Enumerate != EnumerateScan {
		return nil, fmt.Errorf("cachestore: unknown enumerate mode %d", opts.Enumerate)
	}

	p := opts.Provider
	if p == nil {
		var cfg rp.Config
		if opts.Redis != nil {
			cfg = *opts.Redis
		}
		rdb, err := rp.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p = rdb
	}

	s := &store[V]{
		ns:          keyspace.New(coalesce(opts.Prefix, DefaultPrefix)),
		provider:    p,
		enumerate:   opts.Enumerate,
		concurrency: opts.DeleteConcurrency,
	}

	// defaults
	s.codec = coalesce[c.Codec[V]](opts.Codec, c.JSON[V]{})
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = coalesce(opts.DefaultTTL, DefaultTTL)
	s.scanCount = coalesce[int64](opts.ScanCount, DefaultScanCount)

	return s, nil
}

func (s *store[V]) Prefix() string { return s.ns.Prefix() }

func (s *store[V]) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *store[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := s.ns.Key(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil {
		return zero, false, &BackendError{Op: "get", Key: k, Err: err}
	}
	if !ok || len(raw) == 0 {
		s.hooks.Miss(k)
		return zero, false, nil
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		s.hooks.DecodeFailed(k, err)
		return zero, false, &DecodeError{Key: k, Err: err}
	}
	s.hooks.Hit(k)
	return v, true, nil
}

func (s *store[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) (string, error) {
	k := s.ns.Key(key)
	payload, err := s.codec.Encode(value)
	if err != nil {
		return "", &EncodeError{Key: k, Err: err}
	}
	exp, err := resolveTTL(ttl, s.defaultTTL)
	if err != nil {
		return "", err
	}
	ok, err := s.provider.Set(ctx, k, payload, exp)
	if err != nil {
		return "", &BackendError{Op: "set", Key: k, Err: err}
	}
	if !ok {
		s.hooks.ProviderSetRejected(k)
		s.log.Debug("set rejected by provider (pressure)", Fields{"key": key})
	}
	return string(payload), nil
}

func (s *store[V]) Del(ctx context.Context, key string) error {
	return s.erase(ctx, s.ns.Pattern(key))
}

func (s *store[V]) Clear(ctx context.Context) error {
	return s.erase(ctx, s.ns.All())
}

// EscapePattern quotes glob metacharacters so Del(EscapePattern(k)) deletes
// exactly the entry stored under k.
func EscapePattern(key string) string { return keyspace.Escape(key) }
