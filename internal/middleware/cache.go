package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/loan-ledger/internal/config"
)

// captureWriter buffers the response body while forwarding it to the
// client, so a successful response can be stored after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cacheKey hashes route + query under the configured prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful GET responses. Every cached endpoint
// returns JSON, so only the status and body are stored
// ([4 bytes status][body]) and replayed with a JSON content type. Redis
// being down disables caching, nothing else.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg, c)

			if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil && len(bs) > 4 {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(int(binary.BigEndian.Uint32(bs[:4])), bs[4:])
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			body := cw.buf.Bytes()
			if cw.status == http.StatusOK && len(body) > 0 &&
				(cfg.MaxBodyBytes <= 0 || len(body) <= cfg.MaxBodyBytes) {
				payload := make([]byte, 4+len(body))
				binary.BigEndian.PutUint32(payload[:4], uint32(cw.status))
				copy(payload[4:], body)
				// Request context may already be done; store with a fresh one.
				_ = rdb.SetEx(context.Background(), key, payload, cfg.TTL).Err()
			}
			return nil
		}
	}
}
