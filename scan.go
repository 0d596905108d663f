package cachestore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scan returns one page of the namespace. Entry order follows the backend's
// key order; keys that disappear between SCAN and GET are left out.
func (s *store[V]) Scan(ctx context.Context, cursor uint64, count int64) (ScanResult[V], error) {
	if count <= 0 {
		count = s.scanCount
	}
	pattern := s.ns.All()
	keys, next, err := s.provider.Scan(ctx, cursor, pattern, count)
	if err != nil {
		return ScanResult[V]{}, &BackendError{Op: "scan", Key: pattern, Err: err}
	}

	type slot struct {
		v  V
		ok bool
	}
	slots := make([]slot, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, k := range keys {
		g.Go(func() error {
			raw, ok, err := s.provider.Get(gctx, k)
			if err != nil {
				return &BackendError{Op: "get", Key: k, Err: err}
			}
			if !ok || len(raw) == 0 {
				return nil
			}
			v, err := s.codec.Decode(raw)
			if err != nil {
				s.hooks.DecodeFailed(k, err)
				return &DecodeError{Key: k, Err: err}
			}
			slots[i] = slot{v: v, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult[V]{}, err
	}

	res := ScanResult[V]{Cursor: next, Entries: make([]Entry[V], 0, len(keys))}
	for i, k := range keys {
		if !slots[i].ok {
			continue
		}
		logical, _ := s.ns.Logical(k)
		res.Entries = append(res.Entries, Entry[V]{Key: logical, Data: slots[i].v})
	}
	if dropped := len(keys) - len(res.Entries); dropped > 0 {
		s.log.Debug("scan: keys vanished before read", Fields{"dropped": dropped, "cursor": cursor})
	}
	return res, nil
}
