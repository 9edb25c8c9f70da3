package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hivelvet/internal/action"
	authDomain "github.com/allisson/hivelvet/internal/auth/domain"
	serviceMocks "github.com/allisson/hivelvet/internal/auth/service/mocks"
	authMocks "github.com/allisson/hivelvet/internal/auth/usecase/mocks"
	"github.com/allisson/hivelvet/internal/config"
	"github.com/allisson/hivelvet/internal/metrics"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	privilegeMocks "github.com/allisson/hivelvet/internal/privilege/usecase/mocks"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	"github.com/allisson/hivelvet/internal/testutil"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, testutil.NewLogger())
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	decode := func(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
		var response struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response.Status, response.Components["database"]
	}

	t.Run("NotReady_NilDB", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, database := decode(t, w)
		assert.Equal(t, "not_ready", status)
		assert.Equal(t, "error", database)
	})

	t.Run("Ready", func(t *testing.T) {
		db, mockDB, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mockDB.ExpectPing()

		server := NewServer(db, "localhost", 8080, testutil.NewLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		status, database := decode(t, w)
		assert.Equal(t, "ready", status)
		assert.Equal(t, "ok", database)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("NotReady_PingFails", func(t *testing.T) {
		db, mockDB, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mockDB.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 8080, testutil.NewLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, _ := decode(t, w)
		assert.Equal(t, "not_ready", status)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", actionNameMiddleware("Actions.Widgets.List"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	logged := buf.String()
	assert.Contains(t, logged, "http request")
	assert.Contains(t, logged, w.Header().Get("X-Request-Id"))
	assert.Contains(t, logged, "Actions.Widgets.List")
	assert.Contains(t, logged, "limit=5")
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(testutil.NewLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type routerFixture struct {
	server       *Server
	catalog      *action.Registry
	discovery    *privilegeMocks.MockDiscoveryUseCase
	tokenUseCase *authMocks.MockTokenUseCase
	tokenService *serviceMocks.MockTokenService
	cfg          *config.Config
}

var listWidgets = privilegeDomain.Privilege{Group: "Widgets", Name: "List"}

func newRouterFixture() *routerFixture {
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"action": c.GetString(metrics.ActionContextKey)}) }

	catalog := action.NewRegistry()
	catalog.MustRegister(
		action.NewGated("Actions.Widgets.List", http.MethodGet, "/v1/widgets", ok),
		action.New("Actions.Auth.Token", http.MethodPost, "/v1/token", ok),
	)

	return &routerFixture{
		server:       createTestServer(),
		catalog:      catalog,
		discovery:    &privilegeMocks.MockDiscoveryUseCase{},
		tokenUseCase: &authMocks.MockTokenUseCase{},
		tokenService: &serviceMocks.MockTokenService{},
		cfg:          &config.Config{},
	}
}

func (f *routerFixture) setup(t *testing.T) error {
	return f.server.SetupRouter(t.Context(), f.cfg, RouterDependencies{
		Catalog:          f.catalog,
		DiscoveryUseCase: f.discovery,
		TokenUseCase:     f.tokenUseCase,
		TokenService:     f.tokenService,
	})
}

func (f *routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(w, req)
	return w
}

func principalWith(privileges ...privilegeDomain.Privilege) *authDomain.Principal {
	return &authDomain.Principal{
		User: &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "jane@example.com", IsActive: true},
		Role: &roleDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "viewers", Privileges: privileges},
	}
}

func TestServer_SetupRouter(t *testing.T) {
	t.Run("GatedActionRequiresToken", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		require.NoError(t, f.setup(t))

		w := f.do(http.MethodGet, "/v1/widgets", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.tokenUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("GatedActionWithPrivilege", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		f.tokenService.On("HashToken", "plain").Return("hash").Once()
		f.tokenUseCase.On("Authenticate", mock.Anything, "hash").Return(principalWith(listWidgets), nil).Once()
		require.NoError(t, f.setup(t))

		w := f.do(http.MethodGet, "/v1/widgets", "plain")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Actions.Widgets.List")
		f.tokenUseCase.AssertExpectations(t)
	})

	t.Run("GatedActionWithoutPrivilege", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		f.tokenService.On("HashToken", "plain").Return("hash").Once()
		f.tokenUseCase.On("Authenticate", mock.Anything, "hash").Return(principalWith(), nil).Once()
		require.NoError(t, f.setup(t))

		w := f.do(http.MethodGet, "/v1/widgets", "plain")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UngatedActionIsOpen", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		require.NoError(t, f.setup(t))

		w := f.do(http.MethodPost, "/v1/token", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Actions.Auth.Token")
	})

	t.Run("UngatedActionIsLimitedPerIP", func(t *testing.T) {
		f := newRouterFixture()
		f.cfg.RateLimitTokenEnabled = true
		f.cfg.RateLimitTokenRequestsPerSec = 0.001
		f.cfg.RateLimitTokenBurst = 1
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		require.NoError(t, f.setup(t))

		assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/token", "").Code)
		assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/v1/token", "").Code)
	})

	t.Run("HealthEndpointsMounted", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()
		require.NoError(t, f.setup(t))

		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
		assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/ready", "").Code)
		assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/metrics", "").Code)
	})

	t.Run("Error_GatedActionNotDiscovered", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{}, nil).Once()

		err := f.setup(t)

		assert.ErrorIs(t, err, ErrUnguardedAction)
		assert.True(t, strings.Contains(err.Error(), "Actions.Widgets.List"))
	})

	t.Run("Error_GatedActionWithMalformedName", func(t *testing.T) {
		f := newRouterFixture()
		f.catalog.MustRegister(action.NewGated("Widgets.Purge", http.MethodDelete, "/v1/widgets", nil))
		f.discovery.On("Discover", mock.Anything).Return(privilegeDomain.Registry{listWidgets}, nil).Once()

		err := f.setup(t)

		assert.ErrorIs(t, err, ErrUnguardedAction)
	})

	t.Run("Error_DiscoveryFails", func(t *testing.T) {
		f := newRouterFixture()
		f.discovery.On("Discover", mock.Anything).Return(nil, errors.New("catalog missing")).Once()

		err := f.setup(t)

		assert.Error(t, err)
		assert.Nil(t, f.server.GetHandler())
	})
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()

	err := server.Start(t.Context())

	assert.Error(t, err)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, slog.New(slog.DiscardHandler))
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, testutil.NewLogger(), provider)
	require.NotNil(t, metricsServer)

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	})
}

func TestMetricsServer_LogsScrapeAction(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()
	logger, buf := testutil.NewBufferLogger()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"action":"Metrics.Scrape"`)
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, testutil.NewLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
