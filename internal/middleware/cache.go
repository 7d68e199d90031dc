package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// generationKey holds a counter that is part of every cache key.  Bumping
// it after a mutation orphans all earlier entries, which then expire by TTL.
func generationKey(cfg config.CacheConfig) string { return cfg.Prefix + ":gen" }

// cacheKeyFrom builds a stable cache key honoring prefix/strategy.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context, gen int64) string {
	r := c.Request()
	route := c.Path()
	query := r.URL.RawQuery

	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", route}
	case "method_route":
		parts = []string{"method", r.Method, "route", route}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", route, "q", query}
	default: // "route_query"
		parts = []string{"route", route, "q", query}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%d:%x", cfg.Prefix, gen, sum[:])
}

// replayedHeaders are the headers that describe the cached representation.
// Everything else (request id, rate limit counters, CORS) belongs to the
// request that filled the cache and is left to the current request.
var replayedHeaders = []string{
	echo.HeaderContentType,
	echo.HeaderContentEncoding,
	"Content-Language",
	echo.HeaderContentDisposition,
	"Etag",
	echo.HeaderLastModified,
}

func contentHeaders(h http.Header) http.Header {
	out := make(http.Header, len(replayedHeaders))
	for _, k := range replayedHeaders {
		if vals := h.Values(k); len(vals) > 0 {
			out[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
		}
	}
	return out
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// NewRedisCache caches 200 responses of the configured methods, headers
// included, and invalidates everything once a request with any other
// method succeeds.  Redis failures disable caching for that request.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, logger *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cache")
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)
	genKey := generationKey(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				if err := next(c); err != nil {
					return err
				}
				if c.Response().Status < http.StatusBadRequest {
					if err := rdb.Incr(context.WithoutCancel(ctx), genKey).Err(); err != nil {
						logger.Warn("invalidate failed", zap.Error(err))
					}
				}
				return nil
			}

			gen, err := rdb.Get(ctx, genKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				logger.Warn("read generation failed", zap.Error(err))
				return next(c)
			}
			key := cacheKeyFrom(cfg, c, gen)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range contentHeaders(hdr) {
						c.Response().Header()[k] = vals
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}

			payload, err := encodePayload(cw.status, contentHeaders(c.Response().Header()), cw.buf.Bytes())
			if err != nil {
				return nil
			}
			if err := rdb.SetEx(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
				logger.Warn("store failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
