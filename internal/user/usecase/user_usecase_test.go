package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hivelvet/internal/auth/service"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	"github.com/allisson/hivelvet/internal/testutil"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
	"github.com/allisson/hivelvet/internal/user/usecase"
	userMocks "github.com/allisson/hivelvet/internal/user/usecase/mocks"
)

type fixture struct {
	txManager  *testutil.MockTxManager
	userRepo   *userMocks.MockUserRepository
	roleReader *userMocks.MockRoleReader
	passwords  service.PasswordService
	useCase    usecase.UserUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	passwords, err := service.NewPasswordService()
	require.NoError(t, err)

	f := &fixture{
		txManager:  &testutil.MockTxManager{},
		userRepo:   &userMocks.MockUserRepository{},
		roleReader: &userMocks.MockRoleReader{},
		passwords:  passwords,
	}
	f.useCase = usecase.NewUserUseCase(f.txManager, f.userRepo, f.roleReader, passwords)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.txManager.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.roleReader.AssertExpectations(t)
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.txManager.ExpectTx()
		f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		output, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:     " John Doe ",
			Email:    "John@Example.com",
			Password: "SecurePass123!",
		})

		require.NoError(t, err)
		assert.Equal(t, "John Doe", output.User.Name)
		assert.Equal(t, "john@example.com", output.User.Email)
		assert.True(t, output.User.IsActive)
		assert.Empty(t, output.GeneratedPassword)
		assert.True(t, f.passwords.ComparePassword("SecurePass123!", output.User.Password))
		f.assertExpectations(t)
	})

	t.Run("Success_GeneratedPasswordWithRole", func(t *testing.T) {
		f := newFixture(t)
		roleID := uuid.Must(uuid.NewV7())
		f.txManager.ExpectTx()
		f.roleReader.On("Get", ctx, roleID).Return(&roleDomain.Role{ID: roleID}, nil).Once()
		f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		output, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:   "Admin",
			Email:  "admin@example.com",
			RoleID: &roleID,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, output.GeneratedPassword)
		assert.True(t, f.passwords.ComparePassword(output.GeneratedPassword, output.User.Password))
		assert.Equal(t, &roleID, output.User.RoleID)
		f.assertExpectations(t)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:     "John",
			Email:    "john@example.com",
			Password: "password",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:     "John",
			Email:    "not-an-email",
			Password: "SecurePass123!",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		f := newFixture(t)
		roleID := uuid.Must(uuid.NewV7())
		f.txManager.ExpectTx()
		f.roleReader.On("Get", ctx, roleID).Return(nil, roleDomain.ErrRoleNotFound).Once()

		_, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:     "John",
			Email:    "john@example.com",
			Password: "SecurePass123!",
			RoleID:   &roleID,
		})

		assert.ErrorIs(t, err, userDomain.ErrRoleNotAssignable)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		f := newFixture(t)
		f.txManager.ExpectTx()
		f.userRepo.On("Create", ctx, mock.Anything).Return(userDomain.ErrUserAlreadyExists).Once()

		_, err := f.useCase.Register(ctx, &userDomain.RegisterUserInput{
			Name:     "John",
			Email:    "john@example.com",
			Password: "SecurePass123!",
		})

		assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)
		f.assertExpectations(t)
	})
}

func TestUserUseCase_Lookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "john@example.com"}

	f.userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
	f.userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
	f.userRepo.On("List", ctx, 0, 20).Return([]*userDomain.User{user}, nil).Once()

	got, err := f.useCase.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	got, err = f.useCase.GetByEmail(ctx, "  JOHN@example.com")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	users, err := f.useCase.List(ctx, 0, 20)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	f.assertExpectations(t)
}

func TestUserUseCase_AssignRole(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		updated := &userDomain.User{ID: userID, RoleID: &roleID}
		f.txManager.ExpectTx()
		f.roleReader.On("Get", ctx, roleID).Return(&roleDomain.Role{ID: roleID}, nil).Once()
		f.userRepo.On("UpdateRole", ctx, userID, &roleID).Return(nil).Once()
		f.userRepo.On("Get", ctx, userID).Return(updated, nil).Once()

		user, err := f.useCase.AssignRole(ctx, userID, &roleID)

		require.NoError(t, err)
		assert.Equal(t, updated, user)
		f.assertExpectations(t)
	})

	t.Run("Success_ClearRole", func(t *testing.T) {
		f := newFixture(t)
		f.txManager.ExpectTx()
		f.userRepo.On("UpdateRole", ctx, userID, (*uuid.UUID)(nil)).Return(nil).Once()
		f.userRepo.On("Get", ctx, userID).Return(&userDomain.User{ID: userID}, nil).Once()

		user, err := f.useCase.AssignRole(ctx, userID, nil)

		require.NoError(t, err)
		assert.Nil(t, user.RoleID)
		f.assertExpectations(t)
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.txManager.ExpectTx()
		f.roleReader.On("Get", ctx, roleID).Return(&roleDomain.Role{ID: roleID}, nil).Once()
		f.userRepo.On("UpdateRole", ctx, userID, &roleID).Return(userDomain.ErrUserNotFound).Once()

		_, err := f.useCase.AssignRole(ctx, userID, &roleID)

		assert.ErrorIs(t, err, userDomain.ErrUserNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_RoleLookupFailed", func(t *testing.T) {
		f := newFixture(t)
		dbErr := errors.New("connection reset")
		f.txManager.ExpectTx()
		f.roleReader.On("Get", ctx, roleID).Return(nil, dbErr).Once()

		_, err := f.useCase.AssignRole(ctx, userID, &roleID)

		assert.ErrorIs(t, err, dbErr)
		f.assertExpectations(t)
	})
}
