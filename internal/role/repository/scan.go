package repository

import (
	"database/sql"

	apperrors "github.com/allisson/hivelvet/internal/errors"
	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
)

func scanPrivileges(rows *sql.Rows) ([]privilegeDomain.Privilege, error) {
	privileges := make([]privilegeDomain.Privilege, 0)
	for rows.Next() {
		var privilege privilegeDomain.Privilege
		if err := rows.Scan(&privilege.Group, &privilege.Name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role privilege")
		}
		privileges = append(privileges, privilege)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate role privileges")
	}
	return privileges, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return roleDomain.ErrRoleNotFound
	}
	return nil
}
