package cachestore

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/cachestore/codec"
	pr "github.com/unkn0wn-root/cachestore/provider"
	rp "github.com/unkn0wn-root/cachestore/provider/redis"
)

// Store is the cache API a middleware talks to. V is the caller's value
// type; use Store[any] for free-form JSON values.
type Store[V any] interface {
	// Get returns (value, true, nil) on hit and (zero, false, nil) on miss.
	// A payload that cannot be decoded fails with *DecodeError.
	Get(ctx context.Context, key string) (v V, ok bool, err error)

	// Set stores value and returns its serialized form.
	// ttl: 0 => default TTL, NoExpiration => no expiry.
	Set(ctx context.Context, key string, value V, ttl time.Duration) (stored string, err error)

	// Del deletes key. Glob characters in key match several entries.
	Del(ctx context.Context, key string) error

	// Clear deletes every entry under the store's prefix.
	Clear(ctx context.Context) error

	// Scan returns one page of entries starting at cursor; Cursor 0 in the
	// result ends the pass. count <= 0 uses Options.ScanCount.
	// Keys that expire or are deleted between SCAN and the value read are
	// left out of Entries, so a page may hold fewer entries than keys scanned.
	Scan(ctx context.Context, cursor uint64, count int64) (ScanResult[V], error)

	Prefix() string
	Close(context.Context) error
}

type Entry[V any] struct {
	Key  string `json:"key"`
	Data V      `json:"data"`
}

type ScanResult[V any] struct {
	Cursor  uint64     `json:"cursor"`
	Entries []Entry[V] `json:"entries"`
}

// EnumerateMode selects how Del and Clear find matching keys.
type EnumerateMode int

const (
	// EnumerateKeys issues a single KEYS call. Simple, but unbounded and
	// blocking on the server for large keyspaces.
	EnumerateKeys EnumerateMode = iota
	// EnumerateScan follows SCAN cursors to completion.
	EnumerateScan
)

func (m EnumerateMode) String() string {
	if m == EnumerateScan {
		return "scan"
	}
	return "keys"
}

// Options tune the store. All fields are optional.
type Options[V any] struct {
	// Provider is used as-is when set. Otherwise a Redis provider is opened
	// from Redis (nil => client library defaults, localhost:6379).
	Provider pr.Provider
	Redis    *rp.Config

	Prefix     string        // "" => DefaultPrefix
	Codec      c.Codec[V]    // nil => codec.JSON[V]
	DefaultTTL time.Duration // 0 => 60s; NoExpiration => no expiry by default

	ScanCount         int64         // page size hint for Scan and EnumerateScan; 0 => 10
	Enumerate         EnumerateMode // default EnumerateKeys
	DeleteConcurrency int           // max in-flight DELs per bulk delete; 0 => unbounded

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

func New[V any](ctx context.Context, opts Options[V]) (Store[V], error) {
	return newStore[V](ctx, opts)
}
