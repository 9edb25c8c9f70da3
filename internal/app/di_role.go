package app

import (
	"fmt"

	"github.com/allisson/hivelvet/internal/database"
	roleRepository "github.com/allisson/hivelvet/internal/role/repository"
	roleUseCase "github.com/allisson/hivelvet/internal/role/usecase"
)

// RoleRepository returns the role repository matching the database driver.
func (c *Container) RoleRepository() (roleUseCase.RoleRepository, error) {
	var err error
	c.roleRepositoryInit.Do(func() {
		c.roleRepository, err = c.initRoleRepository()
		if err != nil {
			c.initErrors["roleRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleRepository"]; exists {
		return nil, storedErr
	}
	return c.roleRepository, nil
}

// RoleUseCase returns the role use case.
func (c *Container) RoleUseCase() (roleUseCase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		c.roleUseCase, err = c.initRoleUseCase()
		if err != nil {
			c.initErrors["roleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleUseCase"]; exists {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

func (c *Container) initRoleRepository() (roleUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return roleRepository.NewMySQLRoleRepository(db), nil
	case database.DriverPostgres:
		return roleRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRoleUseCase() (roleUseCase.RoleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for role use case: %w", err)
	}

	repository, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for role use case: %w", err)
	}

	discoveryUseCase, err := c.DiscoveryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get discovery use case for role use case: %w", err)
	}

	baseUseCase := roleUseCase.NewRoleUseCase(txManager, repository, discoveryUseCase)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for role use case: %w", err)
		}
		return roleUseCase.NewRoleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
