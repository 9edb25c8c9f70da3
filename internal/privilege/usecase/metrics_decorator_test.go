package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/hivelvet/internal/privilege/domain"
	"github.com/allisson/hivelvet/internal/privilege/usecase"
	usecaseMocks "github.com/allisson/hivelvet/internal/privilege/usecase/mocks"
	"github.com/allisson/hivelvet/internal/testutil"
)

func TestDiscoveryUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Discover success", func(t *testing.T) {
		registry := domain.Registry{{Group: "Roles", Name: "Create"}, {Group: "Roles", Name: "List"}}
		mockNext := &usecaseMocks.MockDiscoveryUseCase{}
		mockMetrics := &testutil.MockBusinessMetrics{}
		uc := usecase.NewDiscoveryUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Discover", ctx).Return(registry, nil).Once()
		mockMetrics.On("RecordPrivilegeCount", ctx, 2).Return().Once()
		mockMetrics.ExpectOperation("privilege", "discover", "success")

		got, err := uc.Discover(ctx)

		assert.NoError(t, err)
		assert.Equal(t, registry, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Discover error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockDiscoveryUseCase{}
		mockMetrics := &testutil.MockBusinessMetrics{}
		uc := usecase.NewDiscoveryUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Discover", ctx).Return(nil, domain.ErrDiscovery).Once()
		mockMetrics.ExpectOperation("privilege", "discover", "error")

		got, err := uc.Discover(ctx)

		assert.ErrorIs(t, err, domain.ErrDiscovery)
		assert.Nil(t, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertNotCalled(t, "RecordPrivilegeCount", ctx, 0)
		mockMetrics.AssertExpectations(t)
	})
}
