package sigcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "profile:0-100:top3")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "profile:0-100:top3", []byte(`{"top_gaps":["1.6"]}`), time.Hour))
	v, ok, err := m.Get(ctx, "profile:0-100:top3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"top_gaps":["1.6"]}`, string(v))

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	now = now.Add(time.Hour)
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok, "entry expires exactly at its TTL")
	_, ok, _ = m.Get(ctx, "b")
	assert.True(t, ok, "zero TTL never expires")
	assert.Equal(t, uint64(1), m.Stats().Evictions)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "long", []byte("2"), time.Hour))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestMemory_SetSweepsUnreadKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })
	m.SetSweepInterval(10 * time.Minute)

	for _, k := range []string{"profile:0-10:top3:c1-10", "profile:0-11:top3:c1-11", "profile:0-12:top3:c1-12"} {
		require.NoError(t, m.Set(ctx, k, []byte("x"), time.Minute))
	}
	assert.Equal(t, 3, m.Len())

	now = now.Add(5 * time.Minute)
	require.NoError(t, m.Set(ctx, "fresh", []byte("y"), time.Hour))
	assert.Equal(t, 4, m.Len(), "no sweep before the interval")

	now = now.Add(5 * time.Minute)
	require.NoError(t, m.Set(ctx, "fresher", []byte("z"), time.Hour))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, uint64(3), m.Stats().Evictions)
}

func TestMemory_SweepDisabled(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })
	m.SetSweepInterval(0)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	now = now.Add(time.Hour)
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))
	assert.Equal(t, 2, m.Len())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf, time.Hour))
	buf[0] = 'x'

	v, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
	v[1] = 'y'
	v2, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(v2))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				key := string(rune('a' + (i+j)%8))
				_ = m.Set(ctx, key, []byte{byte(j)}, time.Minute)
				_, _, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 8)
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig(config.CacheConfig{Type: enum.CacheTypeMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = NewFromConfig(config.CacheConfig{Type: enum.CacheTypeNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = NewFromConfig(config.CacheConfig{Type: enum.CacheTypeRedis}, nil)
	assert.Error(t, err)

	_, err = NewFromConfig(config.CacheConfig{Type: "memcached"}, nil)
	assert.Error(t, err)
}
