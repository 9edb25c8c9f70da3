package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/hivelvet/internal/action"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	"github.com/allisson/hivelvet/internal/privilege/domain"
)

type discoveryUseCase struct {
	catalog action.Catalog
	logger  *slog.Logger
}

// NewDiscoveryUseCase creates a DiscoveryUseCase that rescans catalog on every call.
func NewDiscoveryUseCase(catalog action.Catalog, logger *slog.Logger) DiscoveryUseCase {
	return &discoveryUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

func (d *discoveryUseCase) Discover(ctx context.Context) (domain.Registry, error) {
	if catalogMissing(d.catalog) {
		return nil, apperrors.Wrap(domain.ErrDiscovery, "action catalog is not configured")
	}

	type candidate struct {
		name string
		id   action.ID
	}

	names := d.catalog.Names()
	candidates := make([]candidate, 0, len(names))
	matched := make([]string, 0, len(names))
	for _, name := range names {
		id, ok := action.ParseName(name)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{name: name, id: id})
		matched = append(matched, name)
	}

	d.logger.DebugContext(ctx, "action names matching naming convention",
		slog.Int("total", len(names)),
		slog.Any("names", matched),
	)

	registry := make(domain.Registry, 0, len(candidates))
	for _, c := range candidates {
		info, err := d.catalog.Inspect(c.name)
		if err != nil {
			if apperrors.Is(err, action.ErrHandlerNotFound) {
				d.logger.WarnContext(ctx, "skipping action handler",
					slog.String("name", c.name),
					slog.Any("error", apperrors.Wrap(domain.ErrReflection, err.Error())),
				)
				continue
			}
			return nil, apperrors.Join(domain.ErrDiscovery, err)
		}

		if !info.Has(action.RequirePrivilege) {
			continue
		}
		registry = append(registry, domain.FromActionID(c.id))
	}

	d.logger.DebugContext(ctx, "privileges discovered",
		slog.Int("count", len(registry)),
		slog.Any("privileges", registry),
	)

	return registry, nil
}

// catalogMissing also catches a nil *action.Registry stored in the interface.
func catalogMissing(catalog action.Catalog) bool {
	if catalog == nil {
		return true
	}
	r, ok := catalog.(*action.Registry)
	return ok && r == nil
}
