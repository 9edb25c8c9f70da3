// Package usecase discovers the privileges exposed by the registered actions.
package usecase

import (
	"context"

	"github.com/allisson/hivelvet/internal/privilege/domain"
)

// DiscoveryUseCase produces the privilege registry.
type DiscoveryUseCase interface {
	// Discover scans the action catalog and returns one privilege per gated
	// action, in registration order. A missing catalog yields ErrDiscovery and
	// no registry; handlers that vanish mid-scan are skipped.
	Discover(ctx context.Context) (domain.Registry, error)
}

// CachedDiscoveryUseCase keeps the discovered registry until invalidated.
type CachedDiscoveryUseCase interface {
	DiscoveryUseCase

	// Invalidate drops the cached registry so the next Discover rescans.
	Invalidate()
}
