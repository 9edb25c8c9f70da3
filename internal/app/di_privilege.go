package app

import (
	"fmt"
	"log/slog"

	"github.com/allisson/hivelvet/internal/action"
	authHTTP "github.com/allisson/hivelvet/internal/auth/http"
	authService "github.com/allisson/hivelvet/internal/auth/service"
	authUseCase "github.com/allisson/hivelvet/internal/auth/usecase"
	privilegeHTTP "github.com/allisson/hivelvet/internal/privilege/http"
	privilegeUseCase "github.com/allisson/hivelvet/internal/privilege/usecase"
	roleHTTP "github.com/allisson/hivelvet/internal/role/http"
	roleUseCase "github.com/allisson/hivelvet/internal/role/usecase"
	userHTTP "github.com/allisson/hivelvet/internal/user/http"
	userUseCase "github.com/allisson/hivelvet/internal/user/usecase"
)

// actionCatalog returns the registry instance shared by discovery and the
// router. It may still be empty; ActionRegistry fills it.
func (c *Container) actionCatalog() *action.Registry {
	c.catalogInit.Do(func() {
		c.catalog = action.NewRegistry()
	})
	return c.catalog
}

// ActionRegistry returns the registry holding every action handler of the API.
func (c *Container) ActionRegistry() (*action.Registry, error) {
	var err error
	c.actionRegistryInit.Do(func() {
		c.actionRegistry, err = c.initActionRegistry()
		if err != nil {
			c.initErrors["actionRegistry"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actionRegistry"]; exists {
		return nil, storedErr
	}
	return c.actionRegistry, nil
}

// DiscoveryUseCase returns the privilege discovery use case.
func (c *Container) DiscoveryUseCase() (privilegeUseCase.DiscoveryUseCase, error) {
	var err error
	c.discoveryUseCaseInit.Do(func() {
		c.discoveryUseCase, err = c.initDiscoveryUseCase()
		if err != nil {
			c.initErrors["discoveryUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["discoveryUseCase"]; exists {
		return nil, storedErr
	}
	return c.discoveryUseCase, nil
}

func (c *Container) initActionRegistry() (*action.Registry, error) {
	logger := c.Logger()

	discoveryUseCase, err := c.DiscoveryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get discovery use case for action registry: %w", err)
	}

	roles, err := c.RoleUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get role use case for action registry: %w", err)
	}

	users, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for action registry: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for action registry: %w", err)
	}

	handlers := apiActions(tokenUseCase, c.TokenService(), discoveryUseCase, roles, users, logger)

	registry := c.actionCatalog()
	if err := registerActions(registry, handlers); err != nil {
		return nil, err
	}

	// A scan taken before registration would be missing every action.
	if cached, ok := discoveryUseCase.(privilegeUseCase.CachedDiscoveryUseCase); ok {
		cached.Invalidate()
	}

	return registry, nil
}

// OfflineDiscoveryUseCase returns a discovery use case over a catalog built
// without opening the database. Its handlers are only inspected, never served,
// so they hold no use cases. It backs commands that only list privileges.
func (c *Container) OfflineDiscoveryUseCase() (privilegeUseCase.DiscoveryUseCase, error) {
	registry := action.NewRegistry()
	if err := registerActions(registry, apiActions(nil, c.TokenService(), nil, nil, nil, c.Logger())); err != nil {
		return nil, err
	}
	return privilegeUseCase.NewDiscoveryUseCase(registry, c.Logger()), nil
}

// apiActions lists every action of the API in registration order.
func apiActions(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	discoveryUseCase privilegeUseCase.DiscoveryUseCase,
	roles roleUseCase.RoleUseCase,
	users userUseCase.UserUseCase,
	logger *slog.Logger,
) []action.Handler {
	var handlers []action.Handler
	handlers = append(handlers, authHTTP.NewTokenHandler(tokenUseCase, tokenService, logger).Actions()...)
	handlers = append(handlers, privilegeHTTP.NewPrivilegeHandler(discoveryUseCase, logger).Actions()...)
	handlers = append(handlers, roleHTTP.NewRoleHandler(roles, logger).Actions()...)
	handlers = append(handlers, userHTTP.NewUserHandler(users, logger).Actions()...)
	return handlers
}

func registerActions(registry *action.Registry, handlers []action.Handler) error {
	for _, h := range handlers {
		if err := registry.Register(h); err != nil {
			return fmt.Errorf("failed to register action: %w", err)
		}
	}
	return nil
}

// initDiscoveryUseCase scans the shared catalog, recording metrics when enabled
// and keeping the first result in memory when the privilege cache is enabled.
func (c *Container) initDiscoveryUseCase() (privilegeUseCase.DiscoveryUseCase, error) {
	useCase := privilegeUseCase.NewDiscoveryUseCase(c.actionCatalog(), c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for discovery use case: %w", err)
		}
		useCase = privilegeUseCase.NewDiscoveryUseCaseWithMetrics(useCase, businessMetrics)
	}

	if c.config.PrivilegeCacheEnabled {
		return privilegeUseCase.NewCachedDiscoveryUseCase(useCase), nil
	}

	return useCase, nil
}
