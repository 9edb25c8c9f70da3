package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/metrics"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

const metricsDomain = "user"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input *userDomain.RegisterUserInput,
) (output *userDomain.RegisterUserOutput, err error) {
	err = metrics.Observe(ctx, u.metrics, metricsDomain, "user_register", func() error {
		output, err = u.next.Register(ctx, input)
		return err
	})
	return output, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (user *userDomain.User, err error) {
	err = metrics.Observe(ctx, u.metrics, metricsDomain, "user_get", func() error {
		user, err = u.next.Get(ctx, userID)
		return err
	})
	return user, err
}

func (u *userUseCaseWithMetrics) GetByEmail(ctx context.Context, email string) (user *userDomain.User, err error) {
	err = metrics.Observe(ctx, u.metrics, metricsDomain, "user_get_by_email", func() error {
		user, err = u.next.GetByEmail(ctx, email)
		return err
	})
	return user, err
}

func (u *userUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) (users []*userDomain.User, err error) {
	err = metrics.Observe(ctx, u.metrics, metricsDomain, "user_list", func() error {
		users, err = u.next.List(ctx, offset, limit)
		return err
	})
	return users, err
}

func (u *userUseCaseWithMetrics) AssignRole(
	ctx context.Context,
	userID uuid.UUID,
	roleID *uuid.UUID,
) (user *userDomain.User, err error) {
	err = metrics.Observe(ctx, u.metrics, metricsDomain, "user_assign_role", func() error {
		user, err = u.next.AssignRole(ctx, userID, roleID)
		return err
	})
	return user, err
}
