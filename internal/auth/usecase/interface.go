// Package usecase implements token issuance and bearer token authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/hivelvet/internal/auth/domain"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash returns ErrTokenNotFound when no token has the hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// Revoke returns ErrTokenNotFound when no unrevoked token has the hash.
	Revoke(ctx context.Context, tokenHash string, revokedAt time.Time) error

	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	CountExpired(ctx context.Context, before time.Time) (int64, error)
}

// UserReader is the part of the user repository authentication needs.
type UserReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// RoleReader loads the role whose privileges a principal holds.
type RoleReader interface {
	Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error)
}

// TokenUseCase issues and authenticates bearer tokens.
type TokenUseCase interface {
	// Issue exchanges an email and password for a new token.
	Issue(ctx context.Context, input *authDomain.IssueTokenInput) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to the principal it belongs to.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Principal, error)

	// Revoke invalidates a usable token before it expires.
	Revoke(ctx context.Context, tokenHash string) error

	// CleanExpired deletes tokens that expired or were revoked more than days ago.
	// With dryRun it only counts them.
	CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
