package zap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/cachestore"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	l.Debug("bulk delete", cachestore.Fields{"pattern": "cacheman:*", "deleted": 3})
	l.Warn("bulk delete failed", cachestore.Fields{"err": errors.New("boom")})
	l.Info("no fields", nil)

	entries := logs.AllUntimed()
	assert.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "cacheman:*", entries[0].ContextMap()["pattern"])
	assert.Equal(t, "boom", entries[1].ContextMap()["err"])
	assert.Empty(t, entries[2].Context)
}
