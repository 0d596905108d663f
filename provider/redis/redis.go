package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

// New wraps an existing client. The provider borrows it and never closes it
// unless closeClient is true. Use Open to build a client from a Config.
func New(client goredis.UniversalClient, closeClient bool) (*Redis, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: client, closeClient: closeClient}, nil
}

// Client exposes the underlying client, e.g. for health checks.
func (p *Redis) Client() goredis.UniversalClient { return p.rdb }

// Owned reports whether Close will close the client.
func (p *Redis) Owned() bool { return p.closeClient }

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // plain SET; negative values would turn into KEEPTTL in go-redis
	}
	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Keys runs KEYS pattern. It blocks the server for the duration of the walk;
// prefer Scan for large keyspaces.
func (p *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	return p.rdb.Keys(ctx, pattern).Result()
}

func (p *Redis) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	return p.rdb.Scan(ctx, cursor, pattern, count).Result()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
