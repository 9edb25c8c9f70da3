// Package http provides the token endpoint and the authentication,
// authorization and rate limiting middleware of the API.
package http

import (
	"context"

	authDomain "github.com/allisson/hivelvet/internal/auth/domain"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
)

type principalKey struct{}

type privilegeKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authDomain.Principal)
	return principal, ok
}

// WithPrivilege stores the privilege the request was authorized with.
func WithPrivilege(ctx context.Context, privilege privilegeDomain.Privilege) context.Context {
	return context.WithValue(ctx, privilegeKey{}, privilege)
}

// GetPrivilege retrieves the privilege the request was authorized with.
func GetPrivilege(ctx context.Context) (privilegeDomain.Privilege, bool) {
	privilege, ok := ctx.Value(privilegeKey{}).(privilegeDomain.Privilege)
	return privilege, ok
}
