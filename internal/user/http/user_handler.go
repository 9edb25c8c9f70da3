// Package http provides HTTP handlers for user management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/httputil"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
	"github.com/allisson/hivelvet/internal/user/http/dto"
	userUseCase "github.com/allisson/hivelvet/internal/user/usecase"
	customValidation "github.com/allisson/hivelvet/internal/validation"
)

const group = "Users"

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// Actions returns the user actions. All of them require a privilege.
func (h *UserHandler) Actions() []action.Handler {
	return []action.Handler{
		action.NewGated(action.QualifiedName(group, "Create"), http.MethodPost, "/v1/users", h.CreateHandler),
		action.NewGated(action.QualifiedName(group, "List"), http.MethodGet, "/v1/users", h.ListHandler),
		action.NewGated(action.QualifiedName(group, "Get"), http.MethodGet, "/v1/users/:id", h.GetHandler),
		action.NewGated(
			action.QualifiedName(group, "AssignRole"),
			http.MethodPut,
			"/v1/users/:id/role",
			h.AssignRoleHandler,
		),
	}
}

// CreateHandler registers a user.
// POST /v1/users - Returns 201 Created. generated_password is present only
// when the request omitted a password.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.userUseCase.Register(c.Request.Context(), &userDomain.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRegisterOutputToResponse(output))
}

// ListHandler lists users ordered by email.
// GET /v1/users
func (h *UserHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// GetHandler retrieves a user by ID.
// GET /v1/users/:id
func (h *UserHandler) GetHandler(c *gin.Context) {
	userID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// AssignRoleHandler sets or clears the role of a user.
// PUT /v1/users/:id/role
func (h *UserHandler) AssignRoleHandler(c *gin.Context) {
	userID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.AssignRole(c.Request.Context(), userID, req.RoleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
