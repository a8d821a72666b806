package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"  // Echo framework for middleware plumbing
	"github.com/redis/go-redis/v9" // Redis client used as the shared response cache

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cached catalog
// response.  Only successful JSON bodies are cached.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// bodyCapture tees the response body so it can be stored after the
// handler runs.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *bodyCapture) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

// CatalogCache caches GET responses for the catalog proxy routes in
// Redis.  Listing data (cinemas, movies, refreshments) uses the longer
// catalog TTL; volatile data such as seat snapshots should be mounted
// with SnapshotTTL instead.  When Redis is unavailable the middleware is
// a no-op and every request falls through to the upstream.
func CatalogCache(rdb *redis.Client, cfg config.CacheConfig, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cfg.Prefix + ":" + c.Request().URL.RequestURI()
			ctx, cancel := context.WithTimeout(c.Request().Context(), 300*time.Millisecond)
			defer cancel()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, echo.MIMEApplicationJSON, cached.Body)
				}
			}

			wr := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = wr

			if err := next(c); err != nil {
				return err
			}

			// Cache only successful responses so upstream failures are
			// retried on the next request.
			if wr.status == http.StatusOK {
				raw, err := json.Marshal(cachedResponse{Status: wr.status, Body: wr.buf.Bytes()})
				if err == nil {
					store, cancelStore := context.WithTimeout(context.Background(), 300*time.Millisecond)
					defer cancelStore()
					rdb.Set(store, key, raw, ttl)
				}
			}
			return nil
		}
	}
}
