package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	"github.com/allisson/hivelvet/internal/role/usecase"
	roleMocks "github.com/allisson/hivelvet/internal/role/usecase/mocks"
	"github.com/allisson/hivelvet/internal/testutil"
)

func TestRoleUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())
	role := &roleDomain.Role{ID: roleID, Name: "admins"}

	t.Run("Create success", func(t *testing.T) {
		mockNext := &roleMocks.MockRoleUseCase{}
		mockMetrics := &testutil.MockBusinessMetrics{}
		uc := usecase.NewRoleUseCaseWithMetrics(mockNext, mockMetrics)
		input := &roleDomain.CreateRoleInput{Name: "admins"}

		mockNext.On("Create", ctx, input).Return(role, nil).Once()
		mockMetrics.ExpectOperation("role", "role_create", "success")

		got, err := uc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, role, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete error", func(t *testing.T) {
		mockNext := &roleMocks.MockRoleUseCase{}
		mockMetrics := &testutil.MockBusinessMetrics{}
		uc := usecase.NewRoleUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Delete", ctx, roleID).Return(roleDomain.ErrRoleInUse).Once()
		mockMetrics.ExpectOperation("role", "role_delete", "error")

		assert.ErrorIs(t, uc.Delete(ctx, roleID), roleDomain.ErrRoleInUse)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Remaining operations", func(t *testing.T) {
		mockNext := &roleMocks.MockRoleUseCase{}
		mockMetrics := &testutil.MockBusinessMetrics{}
		uc := usecase.NewRoleUseCaseWithMetrics(mockNext, mockMetrics)
		update := &roleDomain.UpdateRoleInput{Name: "admins"}

		mockNext.On("Update", ctx, roleID, update).Return(role, nil).Once()
		mockNext.On("Get", ctx, roleID).Return(nil, roleDomain.ErrRoleNotFound).Once()
		mockNext.On("List", ctx, 0, 10).Return([]*roleDomain.Role{role}, nil).Once()
		mockNext.On("GrantAll", ctx, "admins").Return(nil, errors.New("boom")).Once()
		mockMetrics.ExpectOperation("role", "role_update", "success")
		mockMetrics.ExpectOperation("role", "role_get", "error")
		mockMetrics.ExpectOperation("role", "role_list", "success")
		mockMetrics.ExpectOperation("role", "role_grant_all", "error")

		_, err := uc.Update(ctx, roleID, update)
		assert.NoError(t, err)
		_, err = uc.Get(ctx, roleID)
		assert.ErrorIs(t, err, roleDomain.ErrRoleNotFound)
		roles, err := uc.List(ctx, 0, 10)
		assert.NoError(t, err)
		assert.Len(t, roles, 1)
		_, err = uc.GrantAll(ctx, "admins")
		assert.Error(t, err)

		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
