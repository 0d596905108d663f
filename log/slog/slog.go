package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/unkn0wn-root/cachestore"
)

var _ cachestore.Logger = Logger{}

// Logger adapts *slog.Logger. Fields are only converted when the level is
// enabled, since the store logs on hot paths at debug.
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f cachestore.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f cachestore.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f cachestore.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f cachestore.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f cachestore.Fields) {
	ctx := context.Background()
	if !s.L.Enabled(ctx, level) {
		return
	}
	s.L.LogAttrs(ctx, level, msg, attrs(f)...)
}

func attrs(f cachestore.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	out := make([]stdslog.Attr, 0, len(f))
	for k, v := range f {
		out = append(out, stdslog.Any(k, v))
	}
	return out
}
