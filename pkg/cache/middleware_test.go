package cache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("cache down")
}

func newCachedEcho(store Store, calls *int) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(MiddlewareConfig{Store: store, TTL: time.Minute, KeyPrefix: "test"}))
	e.GET("/items", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusOK, map[string]any{"calls": *calls, "q": c.QueryParam("q")})
	})
	e.GET("/missing", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	})
	e.POST("/items", func(c echo.Context) error {
		*calls++
		return c.NoContent(http.StatusCreated)
	})
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMiddleware_CachesSuccessfulGet(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewMemoryStore(time.Minute, 0), &calls)

	first := serve(e, http.MethodGet, "/items?q=mug&limit=5")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(HeaderCache))

	second := serve(e, http.MethodGet, "/items?limit=5&q=mug")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(HeaderCache))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Equal(t, 1, calls)

	third := serve(e, http.MethodGet, "/items?q=cup")
	assert.Equal(t, "MISS", third.Header().Get(HeaderCache))
	assert.Equal(t, 2, calls)
}

func TestMiddleware_DoesNotCacheErrorsOrWrites(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewMemoryStore(time.Minute, 0), &calls)

	serve(e, http.MethodGet, "/missing")
	serve(e, http.MethodGet, "/missing")
	assert.Equal(t, 2, calls)

	serve(e, http.MethodPost, "/items")
	serve(e, http.MethodPost, "/items")
	assert.Equal(t, 4, calls)
}

func TestMiddleware_StoreFailureServesUncached(t *testing.T) {
	calls := 0
	e := newCachedEcho(brokenStore{}, &calls)

	rec := serve(e, http.MethodGet, "/items")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(e, http.MethodGet, "/items")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestMiddleware_ExactKeyDeletion(t *testing.T) {
	calls := 0
	store := NewMemoryStore(time.Minute, 0)
	e := newCachedEcho(store, &calls)

	serve(e, http.MethodGet, "/items")
	require.NoError(t, store.Delete(context.Background(), RequestKey("test", "/items", nil)))
	rec := serve(e, http.MethodGet, "/items")

	assert.Equal(t, "MISS", rec.Header().Get(HeaderCache))
	assert.Equal(t, 2, calls)
}
