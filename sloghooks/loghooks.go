// Package sloghooks reports store events to a *slog.Logger. Hit and Miss are
// sampled since they fire on every Get; keys are redacted by default.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/cachestore"
)

type Options struct {
	// Sampling to avoid floods; 0 = never log, 1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	switch n {
	case 0:
		return false
	case 1:
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(storageKey string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("cachestore.hit", "key", h.redact(storageKey))
}

func (h *Hooks) Miss(storageKey string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("cachestore.miss", "key", h.redact(storageKey))
}

func (h *Hooks) DecodeFailed(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachestore.decode_failed",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachestore.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) BulkDeleted(pattern string, n int) {
	if h.l == nil {
		return
	}
	h.l.Info("cachestore.bulk_deleted",
		"pattern", pattern,
		"deleted", n)
}

func (h *Hooks) BulkDeleteFailed(pattern string, matched int, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("cachestore.bulk_delete_failed",
		"pattern", pattern,
		"matched", matched,
		"err", err)
}
