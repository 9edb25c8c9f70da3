// Package domain defines bearer tokens and the principal they authenticate.
package domain

import (
	"time"

	"github.com/google/uuid"

	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

// Token is an issued bearer token. Only its SHA-256 hash is stored.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token is neither revoked nor expired at now.
func (t *Token) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// IssueTokenInput holds the credentials exchanged for a token.
type IssueTokenInput struct {
	Email    string
	Password string //nolint:gosec // plain password supplied at login
}

// IssueTokenOutput returns the plain token. It is shown once.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}

// Principal is the authenticated user and its role. Role is nil for a user
// without one, which holds no privileges.
type Principal struct {
	User *userDomain.User
	Role *roleDomain.Role
}

// Allows reports whether the principal's role holds p.
func (p *Principal) Allows(privilege privilegeDomain.Privilege) bool {
	return p.Role != nil && p.Role.Allows(privilege)
}

// Privileges returns the privileges of the principal's role.
func (p *Principal) Privileges() []privilegeDomain.Privilege {
	if p.Role == nil {
		return []privilegeDomain.Privilege{}
	}
	return p.Role.Privileges
}
