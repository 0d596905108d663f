package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, mr *miniredis.Miniredis, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--url", "redis://" + mr.Addr(), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := run(t, mr, "set", "user:1", `{"name":"Ada"}`, "--expire", "10m")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada"}`+"\n", out)
	assert.Equal(t, 10*time.Minute, mr.TTL("cacheman:user:1"))

	out, err = run(t, mr, "get", "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, strings.TrimSpace(out))

	_, err = run(t, mr, "set", "plain", "hello world", "--expire", "never")
	require.NoError(t, err)
	got, err := mr.Get("cacheman:plain")
	require.NoError(t, err)
	assert.Equal(t, `"hello world"`, got)
	assert.Zero(t, mr.TTL("cacheman:plain"))

	_, err = run(t, mr, "del", "user:*")
	require.NoError(t, err)
	_, err = run(t, mr, "get", "user:1")
	assert.ErrorContains(t, err, "not found")
}

func TestScanAllAndClear(t *testing.T) {
	mr := miniredis.RunT(t)
	for _, k := range []string{"a", "b", "c"} {
		_, err := run(t, mr, "set", k, "1")
		require.NoError(t, err)
	}
	require.NoError(t, mr.Set("foreign", "x"))

	out, err := run(t, mr, "scan", "--all", "--count", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Contains(t, l, `"data":1`)
	}

	_, err = run(t, mr, "clear")
	require.NoError(t, err)
	assert.Equal(t, []string{"foreign"}, mr.Keys())
}

func TestPrefixAndLiteralDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	_, err := run(t, mr, "--prefix", "app:", "set", "k*", "1")
	require.NoError(t, err)
	_, err = run(t, mr, "--prefix", "app:", "set", "k1", "1")
	require.NoError(t, err)

	_, err = run(t, mr, "--prefix", "app:", "del", "--literal", "k*")
	require.NoError(t, err)
	assert.Equal(t, []string{"app:k1"}, mr.Keys())
}

func TestBadExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	_, err := run(t, mr, "set", "k", "v", "--expire=-3s")
	assert.Error(t, err)
	assert.Empty(t, mr.Keys())
}

func TestBinaryCodecs(t *testing.T) {
	for _, codec := range []string{"msgpack", "cbor"} {
		t.Run(codec, func(t *testing.T) {
			mr := miniredis.RunT(t)
			out, err := run(t, mr, "--codec", codec, "set", "user:1", `{"name":"Ada","n":2}`)
			require.NoError(t, err)
			assert.Contains(t, out, "bytes")

			out, err = run(t, mr, "--codec", codec, "get", "user:1")
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"Ada","n":2}`, strings.TrimSpace(out))
		})
	}
}
