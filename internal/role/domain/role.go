// Package domain defines roles, the named privilege sets assigned to users.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/errors"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
)

// Role is a named set of privileges.
type Role struct {
	ID         uuid.UUID
	Name       string
	Privileges []privilegeDomain.Privilege
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Allows reports whether the role holds p.
func (r *Role) Allows(p privilegeDomain.Privilege) bool {
	return privilegeDomain.Registry(r.Privileges).Contains(p)
}

// CreateRoleInput holds the fields of a new role.
type CreateRoleInput struct {
	Name       string
	Privileges []privilegeDomain.Privilege
}

// UpdateRoleInput replaces the name and privilege set of a role.
type UpdateRoleInput struct {
	Name       string
	Privileges []privilegeDomain.Privilege
}

var (
	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrRoleAlreadyExists indicates another role already uses the name.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrRoleInUse indicates the role is still assigned to users.
	ErrRoleInUse = errors.Wrap(errors.ErrConflict, "role is assigned to users")

	// ErrUnknownPrivilege indicates a privilege that no registered action exposes.
	ErrUnknownPrivilege = errors.Wrap(errors.ErrInvalidInput, "unknown privilege")
)
