// Package domain defines the user entity and its role assignment.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/errors"
)

// User is an account that authenticates with email and password and is
// authorized through its role.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string //nolint:gosec // argon2id hash, never the plain password
	RoleID    *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterUserInput holds the fields of a new user. An empty Password asks
// for a generated one.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string //nolint:gosec // plain password supplied at registration
	RoleID   *uuid.UUID
}

// RegisterUserOutput returns the stored user. GeneratedPassword is set only
// when the password was generated and is shown once.
type RegisterUserOutput struct {
	User              *User
	GeneratedPassword string
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleNotAssignable indicates the referenced role does not exist.
	ErrRoleNotAssignable = errors.Wrap(errors.ErrInvalidInput, "role does not exist")
)
