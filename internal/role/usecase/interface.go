// Package usecase implements role management on top of the discovered privilege registry.
package usecase

import (
	"context"

	"github.com/google/uuid"

	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
)

// RoleRepository defines persistence operations for roles and their privileges.
// Implementations must support transaction-aware operations via context propagation.
type RoleRepository interface {
	// Create stores the role and its privileges. Returns ErrRoleAlreadyExists on a duplicate name.
	Create(ctx context.Context, role *roleDomain.Role) error

	// Update replaces the role name and privilege set.
	Update(ctx context.Context, role *roleDomain.Role) error

	// Get retrieves a role with its privileges. Returns ErrRoleNotFound if not found.
	Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error)

	GetByName(ctx context.Context, name string) (*roleDomain.Role, error)

	// List returns roles ordered by name.
	List(ctx context.Context, offset, limit int) ([]*roleDomain.Role, error)

	Delete(ctx context.Context, roleID uuid.UUID) error

	// CountUsers returns how many users hold the role.
	CountUsers(ctx context.Context, roleID uuid.UUID) (int, error)
}

// RoleUseCase defines role management operations.
type RoleUseCase interface {
	// Create validates the input against the privilege registry and stores a new role.
	Create(ctx context.Context, input *roleDomain.CreateRoleInput) (*roleDomain.Role, error)

	// Update replaces the name and privileges of an existing role.
	Update(ctx context.Context, roleID uuid.UUID, input *roleDomain.UpdateRoleInput) (*roleDomain.Role, error)

	Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error)

	List(ctx context.Context, offset, limit int) ([]*roleDomain.Role, error)

	// Delete removes a role. Returns ErrRoleInUse while users still hold it.
	Delete(ctx context.Context, roleID uuid.UUID) error

	// GrantAll creates the named role, or refreshes it, so that it holds every
	// discovered privilege.
	GrantAll(ctx context.Context, name string) (*roleDomain.Role, error)
}
