package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	APICachePrefix          = "folio-api-cache:"
	apiCacheGenPrefix       = "folio-api-cache-gen:"
	defaultHTTPCacheTTL     = 15 * time.Second
	defaultHTTPCacheMaxBody = 1 << 20 // 1 MiB
)

type HTTPCacheOptions struct {
	TTL          time.Duration
	MaxBodyBytes int
	// Base is stripped from the path before the resource name is taken.
	Base string
}

type cachedHTTPResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body         []byte
	maxBodyBytes int
	overflow     bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > w.maxBodyBytes {
		w.overflow = true
		w.body = nil
		return
	}
	w.body = append(w.body, data...)
}

func normalizeHTTPCacheOptions(opts HTTPCacheOptions) HTTPCacheOptions {
	if opts.TTL <= 0 {
		opts.TTL = defaultHTTPCacheTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultHTTPCacheMaxBody
	}
	return opts
}

// Resource returns the first path segment after base: "/api/projects/1"
// with base "/api" is "projects".
func Resource(base, path string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(path, base), "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// cacheKey embeds the resource generation so a response rendered before a
// purge is written under a key no later request reads.
func cacheKey(resource string, gen int64, requestURI string) string {
	return APICachePrefix + resource + ":" + strconv.FormatInt(gen, 10) + ":" + requestURI
}

func genKey(resource string) string { return apiCacheGenPrefix + resource }

func cacheGeneration(ctx context.Context, rdb *redis.Client, resource string) (int64, error) {
	gen, err := rdb.Get(ctx, genKey(resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// HTTPCache stores anonymous GET responses in Redis for a short TTL.
// Authenticated requests always go to the handler.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	options := normalizeHTTPCacheOptions(opts)
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet || ExtractToken(c) != "" {
			c.Next()
			return
		}

		resource := Resource(options.Base, c.Request.URL.Path)
		if resource == "" {
			c.Next()
			return
		}
		gen, err := cacheGeneration(c.Request.Context(), rdb, resource)
		if err != nil {
			c.Next()
			return
		}
		key := cacheKey(resource, gen, c.Request.URL.RequestURI())
		if payload, ok := readCachedResponse(c.Request.Context(), rdb, key); ok {
			c.Header("x-folio-cache", "hit")
			c.Data(payload.Status, payload.ContentType, payload.Body)
			c.Abort()
			return
		}

		buffer := &cacheBodyWriter{ResponseWriter: c.Writer, maxBodyBytes: options.MaxBodyBytes}
		c.Writer = buffer
		c.Next()

		if c.Writer.Status() != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}
		raw, err := json.Marshal(cachedHTTPResponse{
			Status:      http.StatusOK,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        buffer.body,
		})
		if err != nil {
			return
		}
		_ = rdb.Set(c.Request.Context(), key, raw, options.TTL).Err()
	}
}

// PurgeOnMutation drops the cached responses of a resource after a
// successful write to it.
func PurgeOnMutation(rdb *redis.Client, base string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if rdb == nil || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		resource := Resource(base, c.Request.URL.Path)
		if resource == "" {
			return
		}
		if _, err := PurgeHTTPCache(c.Request.Context(), rdb, resource); err != nil {
			log.Warn("purge http cache", zap.String("resource", resource), zap.Error(err))
		}
	}
}

// PurgeHTTPCache bumps the generation of resource and deletes its cached
// responses, or every cached response when resource is empty.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client, resource string) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	if resource != "" {
		if err := rdb.Incr(ctx, genKey(resource)).Err(); err != nil {
			return 0, err
		}
	}
	pattern := APICachePrefix + "*"
	if resource != "" {
		pattern = APICachePrefix + resource + ":*"
	}
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func readCachedResponse(ctx context.Context, rdb *redis.Client, key string) (cachedHTTPResponse, bool) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return cachedHTTPResponse{}, false
	}
	var payload cachedHTTPResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return cachedHTTPResponse{}, false
	}
	if payload.ContentType == "" {
		payload.ContentType = "application/json; charset=utf-8"
	}
	return payload, true
}
