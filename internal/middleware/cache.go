package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/vinealis/vinea-backend/pkg/logger"
)

// CacheConfig configures the public read cache middleware
type CacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "api:cache:",
	}
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Cache returns a gin middleware that caches successful GET responses in
// Redis. Applied only to the public resolved-content endpoints; a nil
// client disables it.
func Cache(redisClient *redis.Client, cfg CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || redisClient == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		ctx := c.Request.Context()
		if val, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
		}

		w := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if w.Status() >= 200 && w.Status() < 300 {
			cached := cachedResponse{Status: w.Status(), Body: string(w.body)}
			if data, err := json.Marshal(cached); err == nil {
				if err := redisClient.Set(ctx, key, data, cfg.TTL).Err(); err != nil {
					logger.GetLogger().Warn().Err(err).Msg("response cache write failed")
				}
			}
		}
	}
}

// InvalidateCache drops all cached entries under the prefix. Called after
// publish/save so the public site never serves stale resolved content.
func InvalidateCache(ctx context.Context, redisClient *redis.Client, cfg CacheConfig) {
	if redisClient == nil {
		return
	}
	iter := redisClient.Scan(ctx, 0, cfg.KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("cache invalidation failed")
		}
	}
}

func cacheKey(path, query string) string {
	sum := sha256.Sum256([]byte(path + "?" + query))
	return hex.EncodeToString(sum[:16])
}

type responseCapture struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseCapture) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}
