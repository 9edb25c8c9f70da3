package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	"github.com/allisson/hivelvet/internal/testutil"
)

func binaryID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLRoleRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		role := newRole()
		id := binaryID(t, role.ID)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)")).
			WithArgs(id, role.Name, role.CreatedAt, role.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO role_privileges")).
			WithArgs(id, "Roles", "List", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO role_privileges")).
			WithArgs(id, "Users", "Get", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewMySQLRoleRepository(db).Create(ctx, role))
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roles")).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		assert.ErrorIs(t, NewMySQLRoleRepository(db).Create(ctx, newRole()), roleDomain.ErrRoleAlreadyExists)
	})
}

func TestMySQLRoleRepository_Update(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	role := newRole()
	role.Privileges = nil
	id := binaryID(t, role.ID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE roles SET name = ?, updated_at = ? WHERE id = ?")).
		WithArgs(role.Name, role.UpdatedAt, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM role_privileges WHERE role_id = ?")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewMySQLRoleRepository(db).Update(context.Background(), role))
}

func TestMySQLRoleRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		role := newRole()
		id := binaryID(t, role.ID)

		mock.ExpectQuery(regexp.QuoteMeta("FROM roles WHERE id = ?")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
				AddRow(id, role.Name, role.CreatedAt, role.UpdatedAt))
		mock.ExpectQuery(regexp.QuoteMeta("FROM role_privileges")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"privilege_group", "privilege_name"}).
				AddRow("Roles", "List").
				AddRow("Users", "Get"))

		got, err := NewMySQLRoleRepository(db).Get(ctx, role.ID)

		require.NoError(t, err)
		assert.Equal(t, role.ID, got.ID)
		assert.Equal(t, role.Privileges, got.Privileges)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM roles WHERE name = ?")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

		_, err := NewMySQLRoleRepository(db).GetByName(ctx, "missing")

		assert.ErrorIs(t, err, roleDomain.ErrRoleNotFound)
	})
}

func TestMySQLRoleRepository_List(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	role := newRole()
	id := binaryID(t, role.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roles ORDER BY name LIMIT ? OFFSET ?")).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(id, role.Name, role.CreatedAt, role.UpdatedAt))
	mock.ExpectQuery(regexp.QuoteMeta("FROM role_privileges")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"privilege_group", "privilege_name"}).AddRow("Roles", "List"))

	roles, err := NewMySQLRoleRepository(db).List(context.Background(), 10, 5)

	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, role.ID, roles[0].ID)
}

func TestMySQLRoleRepository_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())
	id := binaryID(t, roleID)

	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLRoleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE role_id = ?")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM roles WHERE id = ?")).
		WithArgs(id).
		WillReturnError(&mysql.MySQLError{Number: 1451})

	count, err := repo.CountUsers(ctx, roleID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, roleID), roleDomain.ErrRoleInUse)
}
