package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// TokenRateLimitMiddleware enforces a per-IP token bucket on unauthenticated
// requests such as token issuance. The client IP comes from c.ClientIP, which
// honours X-Forwarded-For and X-Real-IP for trusted proxies.
func TokenRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			retryAfter := retryAfterSeconds(limiter)

			logger.Debug("token rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter,
				"Too many token requests from this IP. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}
