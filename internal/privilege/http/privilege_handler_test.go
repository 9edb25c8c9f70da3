package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hivelvet/internal/action"
	"github.com/allisson/hivelvet/internal/privilege/domain"
	usecaseMocks "github.com/allisson/hivelvet/internal/privilege/usecase/mocks"
	"github.com/allisson/hivelvet/internal/testutil"
)

func setupTestHandler(t *testing.T) (*PrivilegeHandler, *usecaseMocks.MockDiscoveryUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := &usecaseMocks.MockDiscoveryUseCase{}
	return NewPrivilegeHandler(mockUseCase, testutil.NewLogger()), mockUseCase
}

func serve(h *PrivilegeHandler, target string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/v1/privileges", h.ListHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPrivilegeHandler_Actions(t *testing.T) {
	handler, _ := setupTestHandler(t)

	actions := handler.Actions()

	require.Len(t, actions, 1)
	assert.Equal(t, "Actions.Privileges.List", actions[0].Name())
	assert.Equal(t, http.MethodGet, actions[0].Method())
	assert.Equal(t, "/v1/privileges", actions[0].Path())
	assert.Contains(t, action.MarkersOf(actions[0]), action.RequirePrivilege)
}

func TestPrivilegeHandler_ListHandler(t *testing.T) {
	registry := domain.Registry{
		{Group: "Roles", Name: "Create"},
		{Group: "Users", Name: "List"},
		{Group: "Roles", Name: "Delete"},
	}

	t.Run("Success_Flat", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Discover", mock.Anything).Return(registry, nil).Once()

		w := serve(handler, "/v1/privileges")

		assert.Equal(t, http.StatusOK, w.Code)
		var response ListPrivilegesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []domain.Privilege(registry), response.Data)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_Grouped", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Discover", mock.Anything).Return(registry, nil).Once()

		w := serve(handler, "/v1/privileges?grouped=true")

		assert.Equal(t, http.StatusOK, w.Code)
		var response GroupedPrivilegesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []string{"Create", "Delete"}, response.Data["Roles"])
		assert.Equal(t, []string{"List"}, response.Data["Users"])
	})

	t.Run("Success_EmptyRegistryIsEmptyArray", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Discover", mock.Anything).Return(domain.Registry{}, nil).Once()

		w := serve(handler, "/v1/privileges")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidGrouped", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		w := serve(handler, "/v1/privileges?grouped=maybe")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Discover", mock.Anything)
	})

	t.Run("Error_DiscoveryFailed", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Discover", mock.Anything).Return(nil, domain.ErrDiscovery).Once()

		w := serve(handler, "/v1/privileges")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unavailable")
	})
}
