// Package usecase implements user registration, lookup and role assignment.
package usecase

import (
	"context"

	"github.com/google/uuid"

	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *userDomain.User) error

	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)

	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// List returns users ordered by email.
	List(ctx context.Context, offset, limit int) ([]*userDomain.User, error)

	// UpdateRole sets the role of a user.
	UpdateRole(ctx context.Context, userID uuid.UUID, roleID *uuid.UUID) error
}

// RoleReader is the part of the role repository needed to check assignments.
type RoleReader interface {
	Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error)
}

// UserUseCase defines user operations.
type UserUseCase interface {
	// Register validates the input, hashes (or generates) the password and stores the user.
	Register(ctx context.Context, input *userDomain.RegisterUserInput) (*userDomain.RegisterUserOutput, error)

	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)

	// GetByEmail looks the user up by its lower-cased email.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	List(ctx context.Context, offset, limit int) ([]*userDomain.User, error)

	// AssignRole sets or, with a nil roleID, clears the role of a user.
	AssignRole(ctx context.Context, userID uuid.UUID, roleID *uuid.UUID) (*userDomain.User, error)
}
