package ristretto

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	ok, err := p.Set(ctx, "k", []byte("v"), 0)
	require.NoError(t, err)
	require.True(t, ok)

	b, hit, err := p.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("v"), b)

	require.NoError(t, p.Del(ctx, "k"))
	_, hit, err = p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.Set(ctx, "short", []byte("v"), 50*time.Millisecond)
	require.NoError(t, err)
	_, err = p.Set(ctx, "forever", []byte("v"), -1)
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	_, hit, _ := p.Get(ctx, "short")
	assert.False(t, hit, "short entry should have expired")
	_, hit, _ = p.Get(ctx, "forever")
	assert.True(t, hit)

	keys, err := p.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, keys, "expired keys are pruned from the index")
}

func TestKeysAndScanUseRedisGlob(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	for _, k := range []string{"ns:foo_1", "ns:foo_2", "ns:bar_1", "other:foo_1"} {
		_, err := p.Set(ctx, k, []byte("x"), 0)
		require.NoError(t, err)
	}

	keys, err := p.Keys(ctx, "ns:foo*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"ns:foo_1", "ns:foo_2"}, keys)

	keys, err = p.Keys(ctx, "ns:[^f]*")
	require.NoError(t, err)
	assert.Equal(t, []string{"ns:bar_1"}, keys)

	var all []string
	var cursor uint64
	for {
		var page []string
		page, cursor, err = p.Scan(ctx, cursor, "ns:*", 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page), 2)
		all = append(all, page...)
		if cursor == 0 {
			break
		}
	}
	sort.Strings(all)
	assert.Equal(t, []string{"ns:bar_1", "ns:foo_1", "ns:foo_2"}, all)
}

func TestClassEdgeCases(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)
	for _, k := range []string{"a-", "ab", "ac"} {
		_, err := p.Set(ctx, k, []byte("x"), 0)
		require.NoError(t, err)
	}

	keys, err := p.Keys(ctx, "a[a-]")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-"}, keys, "dash before ] is literal")

	keys, err = p.Keys(ctx, "a[bc")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"ab", "ac"}, keys, "unclosed class runs to the end")

	keys, err = p.Keys(ctx, "[")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBadPattern(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.Keys(context.Background(), "[0-9a-\u4e00]")
	assert.Error(t, err)
}
