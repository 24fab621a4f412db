package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c := New(opts...)
	t.Cleanup(c.Close)
	return c
}

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		parts     []string
		want      string
	}{
		{name: "namespace only", namespace: "platform_setting", want: "platform_setting"},
		{name: "simple", namespace: "platform_setting", parts: []string{"default_fee"}, want: "platform_setting:default_fee"},
		{name: "composite", namespace: "user", parts: []string{"123", "profile"}, want: "user:123:profile"},
		{name: "colons are not escaped", namespace: "a", parts: []string{"b:c"}, want: "a:b:c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildKey(tt.namespace, tt.parts...))
		})
	}

	assert.Equal(t, BuildKey("a", "b", "c"), BuildKey("a", "b:c"))
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", 0.25, 0)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 0.25, v)

	c.Set("k", "overwritten", time.Minute)
	v, ok = c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "overwritten", v)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("short", true, 20*time.Millisecond)
	c.Set("forever", true, 0)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, ok := c.Get("forever")
	assert.True(t, ok)
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", 1, 0)
	assert.True(t, c.Delete("k"))
	assert.False(t, c.Delete("k"))

	_, ok := c.Get("k")
	assert.False(t, ok)

	assert.False(t, c.Delete("never-set"))
}

func TestCache_DeleteExpiredIsNotLive(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	assert.False(t, c.Delete("k"))
}

func TestCache_ClearAcrossNamespaces(t *testing.T) {
	c := newTestCache(t)

	c.Set(BuildKey("platform_setting", "a"), 1, 0)
	c.Set(BuildKey("user", "1"), 2, 0)
	require.Equal(t, 2, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(BuildKey("user", "1"))
	assert.False(t, ok)
}

func TestCache_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestCache(t, WithRegisterer(reg))

	c.Set("platform_setting:fee", 1.0, 0)
	c.Get("platform_setting:fee")
	c.Get("platform_setting:fee")
	c.Get("platform_setting:other")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues("platform_setting", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("platform_setting", "miss")))

	// a second cache on the same registry reuses the collector instead of failing
	c2 := newTestCache(t, WithRegisterer(reg))
	assert.NotNil(t, c2.requests)
}
