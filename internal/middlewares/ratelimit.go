package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nimish-23/user-account-service/internal/logger"
)

// RateLimitMiddleware returns a fixed-window request throttle keyed by
// client address and route. The decision runs before the handler; over-limit
// requests are rejected with 429. A Redis failure fails open so the limiter
// never takes the service down with it.
func RateLimitMiddleware(client *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := fmt.Sprintf("rate_limit:%s:%s %s", clientAddr(r), r.Method, r.URL.Path)

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Log.Errorw("rate limit counter failed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Log.Errorw("rate limit expire failed", "key", key, "error", err)
				}
			}

			if count > int64(limit) {
				logger.Log.Infow("rate limit exceeded", "key", key, "count", count, "limit", limit)
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
