package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/metrics"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
)

const metricsDomain = "role"

// roleUseCaseWithMetrics decorates RoleUseCase with metrics instrumentation.
type roleUseCaseWithMetrics struct {
	next    RoleUseCase
	metrics metrics.BusinessMetrics
}

// NewRoleUseCaseWithMetrics wraps a RoleUseCase with metrics recording.
func NewRoleUseCaseWithMetrics(useCase RoleUseCase, m metrics.BusinessMetrics) RoleUseCase {
	return &roleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *roleUseCaseWithMetrics) Create(
	ctx context.Context,
	input *roleDomain.CreateRoleInput,
) (role *roleDomain.Role, err error) {
	err = metrics.Observe(ctx, r.metrics, metricsDomain, "role_create", func() error {
		role, err = r.next.Create(ctx, input)
		return err
	})
	return role, err
}

func (r *roleUseCaseWithMetrics) Update(
	ctx context.Context,
	roleID uuid.UUID,
	input *roleDomain.UpdateRoleInput,
) (role *roleDomain.Role, err error) {
	err = metrics.Observe(ctx, r.metrics, metricsDomain, "role_update", func() error {
		role, err = r.next.Update(ctx, roleID, input)
		return err
	})
	return role, err
}

func (r *roleUseCaseWithMetrics) Get(ctx context.Context, roleID uuid.UUID) (role *roleDomain.Role, err error) {
	err = metrics.Observe(ctx, r.metrics, metricsDomain, "role_get", func() error {
		role, err = r.next.Get(ctx, roleID)
		return err
	})
	return role, err
}

func (r *roleUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) (roles []*roleDomain.Role, err error) {
	err = metrics.Observe(ctx, r.metrics, metricsDomain, "role_list", func() error {
		roles, err = r.next.List(ctx, offset, limit)
		return err
	})
	return roles, err
}

func (r *roleUseCaseWithMetrics) Delete(ctx context.Context, roleID uuid.UUID) error {
	return metrics.Observe(ctx, r.metrics, metricsDomain, "role_delete", func() error {
		return r.next.Delete(ctx, roleID)
	})
}

func (r *roleUseCaseWithMetrics) GrantAll(ctx context.Context, name string) (role *roleDomain.Role, err error) {
	err = metrics.Observe(ctx, r.metrics, metricsDomain, "role_grant_all", func() error {
		role, err = r.next.GrantAll(ctx, name)
		return err
	})
	return role, err
}
