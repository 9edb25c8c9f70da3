package domain

import (
	"github.com/allisson/hivelvet/internal/errors"
)

// Authentication errors.
var (
	// ErrTokenNotFound indicates no token has the given hash.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials covers unknown emails, wrong passwords and unusable
	// tokens alike so callers cannot tell them apart.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserInactive indicates the credentials are valid but the user is disabled.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")
)
