package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/hivelvet/internal/auth/service"
	"github.com/allisson/hivelvet/internal/database"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
	appValidation "github.com/allisson/hivelvet/internal/validation"
)

type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	roleReader      RoleReader
	passwordService service.PasswordService
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	roleReader RoleReader,
	passwordService service.PasswordService,
) UserUseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		roleReader:      roleReader,
		passwordService: passwordService,
	}
}

// validateRegisterUserInput checks required fields, email format and, when a
// password is supplied, its strength.
func validateRegisterUserInput(input *userDomain.RegisterUserInput) error {
	rules := []*validation.FieldRules{
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
	}
	if input.Password != "" {
		rules = append(rules, validation.Field(&input.Password,
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		))
	}
	return appValidation.WrapValidationError(validation.ValidateStruct(input, rules...))
}

func (u *userUseCase) checkRole(ctx context.Context, roleID *uuid.UUID) error {
	if roleID == nil {
		return nil
	}
	if _, err := u.roleReader.Get(ctx, *roleID); err != nil {
		if apperrors.Is(err, roleDomain.ErrRoleNotFound) {
			return apperrors.Wrapf(userDomain.ErrRoleNotAssignable, "role %s", roleID)
		}
		return err
	}
	return nil
}

func (u *userUseCase) Register(
	ctx context.Context,
	input *userDomain.RegisterUserInput,
) (*userDomain.RegisterUserOutput, error) {
	if err := validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	output := &userDomain.RegisterUserOutput{}

	var (
		hashedPassword string
		err            error
	)
	if input.Password == "" {
		output.GeneratedPassword, hashedPassword, err = u.passwordService.GeneratePassword()
	} else {
		hashedPassword, err = u.passwordService.HashPassword(input.Password)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashedPassword,
		RoleID:    input.RoleID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.checkRole(ctx, user.RoleID); err != nil {
			return err
		}
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	output.User = user
	return output, nil
}

func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	return u.userRepo.Get(ctx, userID)
}

func (u *userUseCase) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

func (u *userUseCase) AssignRole(
	ctx context.Context,
	userID uuid.UUID,
	roleID *uuid.UUID,
) (*userDomain.User, error) {
	var user *userDomain.User
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.checkRole(ctx, roleID); err != nil {
			return err
		}
		if err := u.userRepo.UpdateRole(ctx, userID, roleID); err != nil {
			return err
		}

		var err error
		user, err = u.userRepo.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
