package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/hivelvet/internal/auth/service"
	authUseCase "github.com/allisson/hivelvet/internal/auth/usecase"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	"github.com/allisson/hivelvet/internal/httputil"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
)

const bearerPrefix = "bearer "

// bearerToken extracts the plain token from an "Authorization: Bearer <token>" value.
func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.New("missing authorization header")
	}
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", apperrors.New("malformed authorization header")
	}
	plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if plainToken == "" {
		return "", apperrors.New("empty bearer token")
	}
	return plainToken, nil
}

// AuthenticationMiddleware resolves the "Authorization: Bearer <token>" header
// to a principal and stores it in the request context.
//
// Error handling:
//   - Missing, malformed or empty header → 401 Unauthorized
//   - Unknown, expired or revoked token → 401 Unauthorized
//   - Inactive user → 403 Forbidden
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.String("user_id", principal.User.ID.String()),
			slog.String("email", principal.User.Email))

		c.Next()
	}
}

// AuthorizationMiddleware lets the request through only when the principal's
// role holds privilege. It must run after AuthenticationMiddleware.
func AuthorizationMiddleware(privilege privilegeDomain.Privilege, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !principal.Allows(privilege) {
			logger.Debug("authorization failed: missing privilege",
				slog.String("user_id", principal.User.ID.String()),
				slog.String("privilege", privilege.String()))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrivilege(c.Request.Context(), privilege))

		logger.Debug("authorization successful",
			slog.String("user_id", principal.User.ID.String()),
			slog.String("privilege", privilege.String()))

		c.Next()
	}
}
