package cachestore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// erase deletes every backing key matching pattern. Deletes run concurrently,
// one DEL per key; the first failure is returned and the rest are abandoned.
func (s *store[V]) erase(ctx context.Context, pattern string) error {
	keys, err := s.match(ctx, pattern)
	if err != nil {
		s.hooks.BulkDeleteFailed(pattern, -1, err)
		s.log.Debug("bulk delete: enumerate failed", Fields{"pattern": pattern, "err": err})
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for _, k := range keys {
		g.Go(func() error {
			if err := s.provider.Del(gctx, k); err != nil {
				return &BackendError{Op: "del", Key: k, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.hooks.BulkDeleteFailed(pattern, len(keys), err)
		s.log.Debug("bulk delete failed", Fields{"pattern": pattern, "matched": len(keys), "err": err})
		return err
	}

	s.hooks.BulkDeleted(pattern, len(keys))
	s.log.Debug("bulk delete", Fields{"pattern": pattern, "deleted": len(keys)})
	return nil
}

// match enumerates backing keys for pattern with the configured strategy.
func (s *store[V]) match(ctx context.Context, pattern string) ([]string, error) {
	if s.enumerate == EnumerateKeys {
		keys, err := s.provider.Keys(ctx, pattern)
		if err != nil {
			return nil, &BackendError{Op: "keys", Key: pattern, Err: err}
		}
		return keys, nil
	}

	// SCAN may return a key more than once during a full iteration.
	seen := make(map[string]struct{})
	var out []string
	var cursor uint64
	for {
		page, next, err := s.provider.Scan(ctx, cursor, pattern, s.scanCount)
		if err != nil {
			return nil, &BackendError{Op: "scan", Key: pattern, Err: err}
		}
		for _, k := range page {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}
