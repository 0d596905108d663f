package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBuf() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSampling(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{HitEvery: 3})

	for i := 0; i < 9; i++ {
		h.Hit("cacheman:k")
		h.Miss("cacheman:k") // MissEvery 0 => never
	}
	if n := strings.Count(buf.String(), "cachestore.hit"); n != 3 {
		t.Fatalf("hits logged=%d\n%s", n, buf.String())
	}
	if strings.Contains(buf.String(), "cachestore.miss") {
		t.Fatal("miss logged with MissEvery=0")
	}
}

func TestRedaction(t *testing.T) {
	buf, l := newBuf()
	New(l, Options{}).DecodeFailed("cacheman:secret", errors.New("bad"))
	if strings.Contains(buf.String(), "secret") {
		t.Fatalf("key not redacted: %s", buf.String())
	}

	buf.Reset()
	New(l, Options{Redact: func(s string) string { return "R" }}).ProviderSetRejected("cacheman:x")
	if !strings.Contains(buf.String(), "key=R") {
		t.Fatalf("custom redactor ignored: %s", buf.String())
	}
}

func TestBulkEvents(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{})
	h.BulkDeleted("cacheman:*", 4)
	h.BulkDeleteFailed("cacheman:foo*", 2, errors.New("down"))

	out := buf.String()
	for _, want := range []string{"deleted=4", "matched=2", "err=down", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestNilLogger(t *testing.T) {
	h := New(nil, Options{HitEvery: 1})
	h.Hit("k")
	h.BulkDeleteFailed("p", -1, errors.New("x"))
}
