package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hivelvet/internal/action"
	authDomain "github.com/allisson/hivelvet/internal/auth/domain"
	"github.com/allisson/hivelvet/internal/auth/http/dto"
	authService "github.com/allisson/hivelvet/internal/auth/service"
	authUseCase "github.com/allisson/hivelvet/internal/auth/usecase"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	"github.com/allisson/hivelvet/internal/httputil"
	customValidation "github.com/allisson/hivelvet/internal/validation"
)

// TokenHandler handles token issuance and revocation.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	tokenService authService.TokenService
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Actions returns the token actions. Both act on the caller's own credentials,
// so neither carries a privilege requirement.
func (h *TokenHandler) Actions() []action.Handler {
	return []action.Handler{
		action.New(action.QualifiedName("Auth", "Token"), http.MethodPost, "/v1/token", h.IssueTokenHandler),
		action.New(action.QualifiedName("Auth", "Revoke"), http.MethodDelete, "/v1/token", h.RevokeTokenHandler),
	}
}

// IssueTokenHandler exchanges an email and password for a bearer token.
// POST /v1/token - Returns 201 Created with the token and its expiration.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &authDomain.IssueTokenInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		Token:     output.PlainToken,
		ExpiresAt: output.ExpiresAt,
	})
}

// RevokeTokenHandler revokes the bearer token presented in the Authorization header.
// DELETE /v1/token - Returns 204 No Content.
func (h *TokenHandler) RevokeTokenHandler(c *gin.Context) {
	plainToken, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		h.logger.Debug("token revocation failed", slog.String("error", err.Error()))
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), h.tokenService.HashToken(plainToken)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
