// Package repository implements role persistence.
//
// PostgreSQL uses native UUID types, MySQL uses BINARY(16). Privileges live in
// role_privileges with a position column that keeps their order.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/database"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
)

// PostgreSQLRoleRepository implements Role persistence for PostgreSQL.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQL Role repository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

// Create inserts the role and its privileges.
func (p *PostgreSQLRoleRepository) Create(ctx context.Context, role *roleDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO roles (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return roleDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}

	return p.insertPrivileges(ctx, querier, role)
}

// Update replaces the role name and privilege set.
func (p *PostgreSQLRoleRepository) Update(ctx context.Context, role *roleDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE roles SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, role.Name, role.UpdatedAt, role.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return roleDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update role")
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM role_privileges WHERE role_id = $1`, role.ID); err != nil {
		return apperrors.Wrap(err, "failed to clear role privileges")
	}

	return p.insertPrivileges(ctx, querier, role)
}

func (p *PostgreSQLRoleRepository) insertPrivileges(
	ctx context.Context,
	querier database.Querier,
	role *roleDomain.Role,
) error {
	query := `INSERT INTO role_privileges (role_id, privilege_group, privilege_name, position)
			  VALUES ($1, $2, $3, $4)`

	for i, privilege := range role.Privileges {
		if _, err := querier.ExecContext(ctx, query, role.ID, privilege.Group, privilege.Name, i); err != nil {
			return apperrors.Wrap(err, "failed to insert role privilege")
		}
	}
	return nil
}

// Get retrieves a role by ID.
func (p *PostgreSQLRoleRepository) Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`

	return p.getOne(ctx, querier, query, roleID)
}

// GetByName retrieves a role by its unique name.
func (p *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*roleDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, created_at, updated_at FROM roles WHERE name = $1`

	return p.getOne(ctx, querier, query, name)
}

func (p *PostgreSQLRoleRepository) getOne(
	ctx context.Context,
	querier database.Querier,
	query string,
	arg any,
) (*roleDomain.Role, error) {
	var role roleDomain.Role

	err := querier.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roleDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}

	role.Privileges, err = p.privileges(ctx, querier, role.ID)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns roles ordered by name.
func (p *PostgreSQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*roleDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*roleDomain.Role, 0)
	for rows.Next() {
		var role roleDomain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	_ = rows.Close()

	for _, role := range roles {
		role.Privileges, err = p.privileges(ctx, querier, role.ID)
		if err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (p *PostgreSQLRoleRepository) privileges(
	ctx context.Context,
	querier database.Querier,
	roleID uuid.UUID,
) ([]privilegeDomain.Privilege, error) {
	query := `SELECT privilege_group, privilege_name FROM role_privileges
			  WHERE role_id = $1 ORDER BY position`

	rows, err := querier.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get role privileges")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanPrivileges(rows)
}

// Delete removes the role. Its privileges are removed by cascade.
func (p *PostgreSQLRoleRepository) Delete(ctx context.Context, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return roleDomain.ErrRoleInUse
		}
		return apperrors.Wrap(err, "failed to delete role")
	}
	return requireAffected(result)
}

// CountUsers returns the number of users holding the role.
func (p *PostgreSQLRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM users WHERE role_id = $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, roleID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count role users")
	}
	return count, nil
}
