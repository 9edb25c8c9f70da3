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

// MySQLRoleRepository implements Role persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQL Role repository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{db: db}
}

// Create inserts the role and its privileges.
func (m *MySQLRoleRepository) Create(ctx context.Context, role *roleDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	id, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT INTO roles (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, role.Name, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return roleDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}

	return m.insertPrivileges(ctx, querier, id, role.Privileges)
}

// Update replaces the role name and privilege set. MySQL reports changed rows
// rather than matched rows, so existence is checked by the caller.
func (m *MySQLRoleRepository) Update(ctx context.Context, role *roleDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	id, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `UPDATE roles SET name = ?, updated_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, role.Name, role.UpdatedAt, id); err != nil {
		if database.IsUniqueViolation(err) {
			return roleDomain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update role")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM role_privileges WHERE role_id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to clear role privileges")
	}

	return m.insertPrivileges(ctx, querier, id, role.Privileges)
}

func (m *MySQLRoleRepository) insertPrivileges(
	ctx context.Context,
	querier database.Querier,
	roleID []byte,
	privileges []privilegeDomain.Privilege,
) error {
	query := `INSERT INTO role_privileges (role_id, privilege_group, privilege_name, position)
			  VALUES (?, ?, ?, ?)`

	for i, privilege := range privileges {
		if _, err := querier.ExecContext(ctx, query, roleID, privilege.Group, privilege.Name, i); err != nil {
			return apperrors.Wrap(err, "failed to insert role privilege")
		}
	}
	return nil
}

// Get retrieves a role by ID.
func (m *MySQLRoleRepository) Get(ctx context.Context, roleID uuid.UUID) (*roleDomain.Role, error) {
	id, err := roleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `SELECT id, name, created_at, updated_at FROM roles WHERE id = ?`

	return m.getOne(ctx, database.GetTx(ctx, m.db), query, id)
}

// GetByName retrieves a role by its unique name.
func (m *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*roleDomain.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles WHERE name = ?`

	return m.getOne(ctx, database.GetTx(ctx, m.db), query, name)
}

func (m *MySQLRoleRepository) getOne(
	ctx context.Context,
	querier database.Querier,
	query string,
	arg any,
) (*roleDomain.Role, error) {
	var (
		role roleDomain.Role
		id   []byte
	)

	err := querier.QueryRowContext(ctx, query, arg).Scan(&id, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roleDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}
	if err := role.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role id")
	}

	role.Privileges, err = m.privileges(ctx, querier, id)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns roles ordered by name.
func (m *MySQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*roleDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*roleDomain.Role, 0)
	ids := make([][]byte, 0)
	for rows.Next() {
		var (
			role roleDomain.Role
			id   []byte
		)
		if err := rows.Scan(&id, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		if err := role.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role id")
		}
		roles = append(roles, &role)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	_ = rows.Close()

	for i, role := range roles {
		role.Privileges, err = m.privileges(ctx, querier, ids[i])
		if err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (m *MySQLRoleRepository) privileges(
	ctx context.Context,
	querier database.Querier,
	roleID []byte,
) ([]privilegeDomain.Privilege, error) {
	query := `SELECT privilege_group, privilege_name FROM role_privileges
			  WHERE role_id = ? ORDER BY position`

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
func (m *MySQLRoleRepository) Delete(ctx context.Context, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return roleDomain.ErrRoleInUse
		}
		return apperrors.Wrap(err, "failed to delete role")
	}
	return requireAffected(result)
}

// CountUsers returns the number of users holding the role.
func (m *MySQLRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := roleID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `SELECT COUNT(*) FROM users WHERE role_id = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count role users")
	}
	return count, nil
}
