package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/cachestore"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("hidden", cachestore.Fields{"k": 1})
	l.Warn("set rejected by provider (pressure)", cachestore.Fields{"key": "u:1"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug leaked: %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "key=u:1") {
		t.Fatalf("unexpected output: %s", out)
	}
}
