// Package http exposes the discovered privilege registry over HTTP.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/httputil"
	"github.com/allisson/hivelvet/internal/privilege/domain"
	"github.com/allisson/hivelvet/internal/privilege/usecase"
)

// ListPrivilegesResponse is the flat registry in discovery order.
type ListPrivilegesResponse struct {
	Data []domain.Privilege `json:"data"`
}

// GroupedPrivilegesResponse holds privilege names keyed by group.
type GroupedPrivilegesResponse struct {
	Data map[string][]string `json:"data"`
}

// PrivilegeHandler serves the privilege registry.
type PrivilegeHandler struct {
	discoveryUseCase usecase.DiscoveryUseCase
	logger           *slog.Logger
}

// NewPrivilegeHandler creates a PrivilegeHandler.
func NewPrivilegeHandler(discoveryUseCase usecase.DiscoveryUseCase, logger *slog.Logger) *PrivilegeHandler {
	return &PrivilegeHandler{
		discoveryUseCase: discoveryUseCase,
		logger:           logger,
	}
}

// Actions returns the actions served by this handler.
func (h *PrivilegeHandler) Actions() []action.Handler {
	return []action.Handler{
		action.NewGated(action.QualifiedName("Privileges", "List"), http.MethodGet, "/v1/privileges", h.ListHandler),
	}
}

// ListHandler returns every discovered privilege.
// GET /v1/privileges?grouped=true returns names keyed by group instead.
func (h *PrivilegeHandler) ListHandler(c *gin.Context) {
	grouped := false
	if raw := c.Query("grouped"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid grouped parameter: must be a boolean"), h.logger)
			return
		}
		grouped = v
	}

	registry, err := h.discoveryUseCase.Discover(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if grouped {
		c.JSON(http.StatusOK, GroupedPrivilegesResponse{Data: registry.Grouped()})
		return
	}

	if registry == nil {
		registry = domain.Registry{}
	}
	c.JSON(http.StatusOK, ListPrivilegesResponse{Data: registry})
}
