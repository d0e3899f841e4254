package cache

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HeaderCache reports HIT or MISS on responses that went through Middleware
const HeaderCache = "X-Cache"

type MiddlewareConfig struct {
	Skipper   middleware.Skipper
	Store     Store
	TTL       time.Duration
	KeyPrefix string
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Middleware caches successful GET responses keyed by path and query parameters.
// A failing store never fails the request: the handler runs uncached.
func Middleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = middleware.DefaultSkipper
	}
	if cfg.Store == nil {
		cfg.Store = NopStore{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet || cfg.Skipper(c) {
				return next(c)
			}

			ctx := req.Context()
			key := RequestKey(cfg.KeyPrefix, req.URL.Path, c.QueryParams())

			b, ok, err := cfg.Store.Get(ctx, key)
			if err != nil {
				slog.Warn("Cache lookup failed, serving uncached", "key", key, "error", err)
			} else if ok {
				var cr cachedResponse
				if err := json.Unmarshal(b, &cr); err == nil {
					c.Response().Header().Set(HeaderCache, "HIT")
					return c.Blob(cr.Status, cr.ContentType, cr.Body)
				}
				slog.Warn("Discarding undecodable cached response", "key", key)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			c.Response().Header().Set(HeaderCache, "MISS")

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status != http.StatusOK {
				return nil
			}

			b, err = json.Marshal(cachedResponse{
				Status:      http.StatusOK,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			})
			if err == nil {
				err = cfg.Store.Set(ctx, key, b, cfg.TTL)
			}
			if err != nil {
				slog.Warn("Failed to store response in cache", "key", key, "error", err)
			}
			return nil
		}
	}
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
