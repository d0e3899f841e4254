package cache

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func TestMemoizer_Do(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer[product](NewMemoryStore(time.Minute, 0), time.Minute)

	calls := 0
	fn := func(context.Context) (product, error) {
		calls++
		return product{Name: "Mug", Price: 1299}, nil
	}

	first, err := m.Do(ctx, "p:1", fn)
	require.NoError(t, err)
	second, err := m.Do(ctx, "p:1", fn)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = m.Do(ctx, "p:2", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoizer_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer[product](NewMemoryStore(time.Minute, 0), time.Minute)

	boom := errors.New("boom")
	_, err := m.Do(ctx, "k", func(context.Context) (product, error) { return product{}, boom })
	assert.ErrorIs(t, err, boom)

	got, err := m.Do(ctx, "k", func(context.Context) (product, error) { return product{Name: "ok"}, nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Name)
}

func TestMemoizer_Invalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer[int](NewMemoryStore(time.Minute, 0), time.Minute)

	n := 0
	fn := func(context.Context) (int, error) { n++; return n, nil }

	v, _ := m.Do(ctx, "k", fn)
	assert.Equal(t, 1, v)
	require.NoError(t, m.Invalidate(ctx, "k"))
	v, _ = m.Do(ctx, "k", fn)
	assert.Equal(t, 2, v)
}

func TestMemoizer_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	m := NewMemoizer[int](store, 30*time.Second)

	n := 0
	fn := func(context.Context) (int, error) { n++; return n, nil }

	_, _ = m.Do(ctx, "k", fn)
	v, _ := m.Do(ctx, "k", fn)
	assert.Equal(t, 1, v)

	mr.FastForward(31 * time.Second)
	v, _ = m.Do(ctx, "k", fn)
	assert.Equal(t, 2, v)
}

func TestMemoizer_MemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoizer[int](NewMemoryStore(time.Minute, 0), 20*time.Millisecond)

	n := 0
	fn := func(context.Context) (int, error) { n++; return n, nil }

	_, _ = m.Do(ctx, "k", fn)
	assert.Eventually(t, func() bool {
		v, _ := m.Do(ctx, "k", fn)
		return v > 1
	}, time.Second, 5*time.Millisecond)
}

func TestArgsKey(t *testing.T) {
	a, err := ArgsKey("products", 10, "price", map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	b, err := ArgsKey("products", 10, "price", map[string]any{"a": 2, "b": 1})
	require.NoError(t, err)
	c, err := ArgsKey("products", 11, "price")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "products:args:")

	_, err = ArgsKey("x", func() {})
	assert.Error(t, err)
}

func TestRequestKey(t *testing.T) {
	q1 := url.Values{"limit": {"10"}, "cursor": {"abc"}}
	q2 := url.Values{"cursor": {"abc"}, "limit": {"10"}}

	assert.Equal(t, RequestKey("shop", "/products", q1), RequestKey("shop", "/products", q2))
	assert.Equal(t, "shop:req:/products?cursor=abc&limit=10", RequestKey("shop", "/products", q1))
	assert.Equal(t, "shop:req:/products", RequestKey("shop", "/products", nil))
	assert.NotEqual(t, RequestKey("shop", "/products", q1), RequestKey("shop", "/reviews", q1))
}
