package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/hivelvet/internal/database"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
// UUIDs are stored as BINARY(16); a user without a role stores NULL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// nullableID converts an optional UUID to a BINARY(16) argument or nil.
func nullableID(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal role id")
	}
	return b, nil
}

// Create inserts a new user.
func (m *MySQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}
	roleID, err := nullableID(user.RoleID)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Name,
		user.Email,
		user.Password,
		roleID,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return userDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a user by ID.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, email))
}

// List retrieves users ordered by email with pagination.
func (m *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY email ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]*userDomain.User, 0)
	for rows.Next() {
		user, err := scanMySQLUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}

// UpdateRole sets or clears the role of a user. MySQL reports changed rows,
// so an unchanged assignment is not treated as a missing user.
func (m *MySQLUserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, roleID *uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}
	role, err := nullableID(roleID)
	if err != nil {
		return err
	}

	query := `UPDATE users SET role_id = ?, updated_at = NOW() WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, role, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return userDomain.ErrRoleNotAssignable
		}
		return apperrors.Wrap(err, "failed to update user role")
	}
	return nil
}

func scanMySQLUser(row rowScanner) (*userDomain.User, error) {
	var (
		user   userDomain.User
		id     []byte
		roleID []byte
	)

	err := row.Scan(
		&id,
		&user.Name,
		&user.Email,
		&user.Password,
		&roleID,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan user")
	}

	if err := user.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	if roleID != nil {
		var rid uuid.UUID
		if err := rid.UnmarshalBinary(roleID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role id")
		}
		user.RoleID = &rid
	}
	return &user, nil
}
