// Package http assembles the API server: it mounts every action of the catalog
// on a gin router and guards privilege-gated actions with authentication,
// authorization and per-user rate limiting.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hivelvet/internal/action"
	authHTTP "github.com/allisson/hivelvet/internal/auth/http"
	authService "github.com/allisson/hivelvet/internal/auth/service"
	authUseCase "github.com/allisson/hivelvet/internal/auth/usecase"
	"github.com/allisson/hivelvet/internal/config"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	"github.com/allisson/hivelvet/internal/metrics"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	privilegeUseCase "github.com/allisson/hivelvet/internal/privilege/usecase"
)

// ErrUnguardedAction indicates a privilege-gated action whose name yields no
// discoverable privilege, so it cannot be authorized.
var ErrUnguardedAction = apperrors.Wrap(apperrors.ErrInvalidInput, "gated action has no discoverable privilege")

// RouteCatalog lists the actions to mount.
type RouteCatalog interface {
	Handlers() []action.Handler
}

// Server is the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterDependencies groups what SetupRouter needs besides configuration.
type RouterDependencies struct {
	Catalog          RouteCatalog
	DiscoveryUseCase privilegeUseCase.DiscoveryUseCase
	TokenUseCase     authUseCase.TokenUseCase
	TokenService     authService.TokenService
	// MetricsProvider is nil when metrics are disabled.
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the router. ctx bounds the lifetime of the rate limiter
// cleanup loops.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) error {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", s.readinessHandler)

	registry, err := deps.DiscoveryUseCase.Discover(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to discover privileges")
	}

	guards := routeGuards{
		registry:       registry,
		authentication: authHTTP.AuthenticationMiddleware(deps.TokenUseCase, deps.TokenService, s.logger),
		logger:         s.logger,
	}
	if cfg.RateLimitEnabled {
		guards.userRateLimit = authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		)
	}
	if cfg.RateLimitTokenEnabled {
		guards.ipRateLimit = authHTTP.TokenRateLimitMiddleware(
			ctx,
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		)
	}

	for _, h := range deps.Catalog.Handlers() {
		chain, err := guards.chain(h)
		if err != nil {
			return err
		}
		router.Handle(h.Method(), h.Path(), chain...)

		s.logger.Debug("action mounted",
			slog.String("action", h.Name()),
			slog.String("method", h.Method()),
			slog.String("path", h.Path()))
	}

	s.router = router
	return nil
}

// routeGuards builds the middleware chain of each action.
type routeGuards struct {
	registry       privilegeDomain.Registry
	authentication gin.HandlerFunc
	userRateLimit  gin.HandlerFunc
	ipRateLimit    gin.HandlerFunc
	logger         *slog.Logger
}

// chain returns the handlers for h. Ungated actions are limited per client IP;
// gated ones require a token whose role holds the action's privilege.
func (g routeGuards) chain(h action.Handler) ([]gin.HandlerFunc, error) {
	chain := []gin.HandlerFunc{actionNameMiddleware(h.Name())}

	info := action.Info{Name: h.Name(), Markers: action.MarkersOf(h)}
	if !info.Has(action.RequirePrivilege) {
		if g.ipRateLimit != nil {
			chain = append(chain, g.ipRateLimit)
		}
		return append(chain, h.Handle), nil
	}

	id, ok := action.ParseName(h.Name())
	privilege := privilegeDomain.FromActionID(id)
	if !ok || !g.registry.Contains(privilege) {
		return nil, apperrors.Wrapf(ErrUnguardedAction, "action %q", h.Name())
	}

	chain = append(chain, g.authentication, authHTTP.AuthorizationMiddleware(privilege, g.logger))
	if g.userRateLimit != nil {
		chain = append(chain, g.userRateLimit)
	}
	return append(chain, h.Handle), nil
}

// actionNameMiddleware records the serving action for request logs and metrics.
func actionNameMiddleware(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metrics.ActionContextKey, name)
		c.Next()
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not initialized: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
