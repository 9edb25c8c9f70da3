package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/hivelvet/internal/errors"
	"github.com/allisson/hivelvet/internal/httputil"
)

// RateLimitMiddleware enforces a per-user token bucket on authenticated
// requests. It must run after AuthenticationMiddleware. Rejected requests get
// 429 with a Retry-After header. The idle bucket cleanup stops with ctx.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Error("rate limit middleware: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID := principal.User.ID.String()
		limiter := store.getLimiter(userID)

		if !limiter.Allow() {
			retryAfter := retryAfterSeconds(limiter)

			logger.Debug("rate limit exceeded",
				slog.String("user_id", userID),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter, "Too many requests. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}
