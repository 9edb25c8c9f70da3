package usecase

import (
	"context"
	"time"

	"github.com/allisson/hivelvet/internal/metrics"
	"github.com/allisson/hivelvet/internal/privilege/domain"
)

// discoveryUseCaseWithMetrics decorates DiscoveryUseCase with metrics instrumentation.
type discoveryUseCaseWithMetrics struct {
	next    DiscoveryUseCase
	metrics metrics.BusinessMetrics
}

// NewDiscoveryUseCaseWithMetrics wraps a DiscoveryUseCase with metrics recording.
func NewDiscoveryUseCaseWithMetrics(useCase DiscoveryUseCase, m metrics.BusinessMetrics) DiscoveryUseCase {
	return &discoveryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Discover records the operation and, on success, the registry size.
func (d *discoveryUseCaseWithMetrics) Discover(ctx context.Context) (domain.Registry, error) {
	start := time.Now()
	registry, err := d.next.Discover(ctx)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	} else {
		d.metrics.RecordPrivilegeCount(ctx, len(registry))
	}

	d.metrics.RecordOperation(ctx, "privilege", "discover", status)
	d.metrics.RecordDuration(ctx, "privilege", "discover", time.Since(start), status)

	return registry, err
}
