package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/hivelvet/internal/database"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	privilegeUseCase "github.com/allisson/hivelvet/internal/privilege/usecase"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	appValidation "github.com/allisson/hivelvet/internal/validation"
)

type roleUseCase struct {
	txManager        database.TxManager
	roleRepo         RoleRepository
	discoveryUseCase privilegeUseCase.DiscoveryUseCase
}

// NewRoleUseCase creates a RoleUseCase.
func NewRoleUseCase(
	txManager database.TxManager,
	roleRepo RoleRepository,
	discoveryUseCase privilegeUseCase.DiscoveryUseCase,
) RoleUseCase {
	return &roleUseCase{
		txManager:        txManager,
		roleRepo:         roleRepo,
		discoveryUseCase: discoveryUseCase,
	}
}

func validateRoleName(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("name is required"),
		appValidation.NotBlank,
		validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
	)
	if err != nil {
		return appValidation.WrapValidationError(apperrors.Wrap(err, "name"))
	}
	return nil
}

// resolvePrivileges drops duplicates and rejects privileges missing from the registry.
func (r *roleUseCase) resolvePrivileges(
	ctx context.Context,
	privileges []privilegeDomain.Privilege,
) ([]privilegeDomain.Privilege, error) {
	registry, err := r.discoveryUseCase.Discover(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]privilegeDomain.Privilege, 0, len(privileges))
	for _, p := range privileges {
		if !registry.Contains(p) {
			return nil, apperrors.Wrapf(roleDomain.ErrUnknownPrivilege, "%s.%s", p.Group, p.Name)
		}
		if privilegeDomain.Registry(resolved).Contains(p) {
			continue
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}

func (r *roleUseCase) Create(ctx context.Context, input *roleDomain.CreateRoleInput) (*roleDomain.Role, error) {
	if err := validateRoleName(input.Name); err != nil {
		return nil, err
	}

	privileges, err := r.resolvePrivileges(ctx, input.Privileges)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	role := &roleDomain.Role{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       strings.TrimSpace(input.Name),
		Privileges: privileges,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		return r.roleRepo.Create(ctx, role)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleUseCase) Update(
	ctx context.Context,
	roleID uuid.UUID,
	input *roleDomain.UpdateRoleInput,
) (*roleDomain.Role, error) {
	if err := validateRoleName(input.Name); err != nil {
		return nil, err
	}

	privileges, err := r.resolvePrivileges(ctx, input.Privileges)
	if err != nil {
		return nil, err
	}

	var role *roleDomain.Role
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		role, err = r.roleRepo.Get(ctx, roleID)
		if err != nil {
			return err
		}

		role.Name = strings.TrimSpace(input.Name)
		role.Privileges = privileges
		role.UpdatedAt = time.Now().UTC()
		return r.roleRepo.Update(ctx, role)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleUseCase) Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error) {
	return r.roleRepo.Get(ctx, roleID)
}

func (r *roleUseCase) List(ctx context.Context, offset, limit int) ([]*roleDomain.Role, error) {
	return r.roleRepo.List(ctx, offset, limit)
}

func (r *roleUseCase) Delete(ctx context.Context, roleID uuid.UUID) error {
	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.roleRepo.Get(ctx, roleID); err != nil {
			return err
		}

		users, err := r.roleRepo.CountUsers(ctx, roleID)
		if err != nil {
			return err
		}
		if users > 0 {
			return apperrors.Wrapf(roleDomain.ErrRoleInUse, "%d users", users)
		}

		return r.roleRepo.Delete(ctx, roleID)
	})
}

func (r *roleUseCase) GrantAll(ctx context.Context, name string) (*roleDomain.Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	registry, err := r.discoveryUseCase.Discover(ctx)
	if err != nil {
		return nil, err
	}
	privileges := []privilegeDomain.Privilege(registry.Clone())
	name = strings.TrimSpace(name)

	var role *roleDomain.Role
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := r.roleRepo.GetByName(ctx, name)
		if err != nil && !apperrors.Is(err, roleDomain.ErrRoleNotFound) {
			return err
		}

		now := time.Now().UTC()
		if existing != nil {
			existing.Privileges = privileges
			existing.UpdatedAt = now
			role = existing
			return r.roleRepo.Update(ctx, role)
		}

		role = &roleDomain.Role{
			ID:         uuid.Must(uuid.NewV7()),
			Name:       name,
			Privileges: privileges,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return r.roleRepo.Create(ctx, role)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}
