// Package http provides HTTP handlers for role management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/httputil"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	"github.com/allisson/hivelvet/internal/role/http/dto"
	roleUseCase "github.com/allisson/hivelvet/internal/role/usecase"
	customValidation "github.com/allisson/hivelvet/internal/validation"
)

const group = "Roles"

// RoleHandler handles HTTP requests for role management.
type RoleHandler struct {
	roleUseCase roleUseCase.RoleUseCase
	logger      *slog.Logger
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roleUseCase roleUseCase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		roleUseCase: roleUseCase,
		logger:      logger,
	}
}

// Actions returns the role actions. All of them require a privilege.
func (h *RoleHandler) Actions() []action.Handler {
	return []action.Handler{
		action.NewGated(action.QualifiedName(group, "Create"), http.MethodPost, "/v1/roles", h.CreateHandler),
		action.NewGated(action.QualifiedName(group, "List"), http.MethodGet, "/v1/roles", h.ListHandler),
		action.NewGated(action.QualifiedName(group, "Get"), http.MethodGet, "/v1/roles/:id", h.GetHandler),
		action.NewGated(action.QualifiedName(group, "Update"), http.MethodPut, "/v1/roles/:id", h.UpdateHandler),
		action.NewGated(action.QualifiedName(group, "Delete"), http.MethodDelete, "/v1/roles/:id", h.DeleteHandler),
	}
}

// bindRoleRequest parses and validates the body, writing the error response itself.
func (h *RoleHandler) bindRoleRequest(c *gin.Context) (*dto.RoleRequest, bool) {
	var req dto.RoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}
	return &req, true
}

// CreateHandler creates a role.
// POST /v1/roles - Returns 201 Created.
func (h *RoleHandler) CreateHandler(c *gin.Context) {
	req, ok := h.bindRoleRequest(c)
	if !ok {
		return
	}

	role, err := h.roleUseCase.Create(c.Request.Context(), &roleDomain.CreateRoleInput{
		Name:       req.Name,
		Privileges: req.Privileges,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRoleToResponse(role))
}

// ListHandler lists roles with offset/limit pagination.
// GET /v1/roles
func (h *RoleHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	roles, err := h.roleUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToListResponse(roles))
}

// GetHandler retrieves a role by ID.
// GET /v1/roles/:id
func (h *RoleHandler) GetHandler(c *gin.Context) {
	roleID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	role, err := h.roleUseCase.Get(c.Request.Context(), roleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRoleToResponse(role))
}

// UpdateHandler replaces the name and privileges of a role.
// PUT /v1/roles/:id
func (h *RoleHandler) UpdateHandler(c *gin.Context) {
	roleID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req, ok := h.bindRoleRequest(c)
	if !ok {
		return
	}

	role, err := h.roleUseCase.Update(c.Request.Context(), roleID, &roleDomain.UpdateRoleInput{
		Name:       req.Name,
		Privileges: req.Privileges,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRoleToResponse(role))
}

// DeleteHandler deletes a role that no user holds.
// DELETE /v1/roles/:id - Returns 204 No Content.
func (h *RoleHandler) DeleteHandler(c *gin.Context) {
	roleID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.roleUseCase.Delete(c.Request.Context(), roleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
