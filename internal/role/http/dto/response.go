package dto

import (
	"time"

	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
)

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Privileges []privilegeDomain.Privilege `json:"privileges"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// MapRoleToResponse converts a domain role to an API response.
func MapRoleToResponse(role *roleDomain.Role) RoleResponse {
	privileges := role.Privileges
	if privileges == nil {
		privileges = []privilegeDomain.Privilege{}
	}
	return RoleResponse{
		ID:         role.ID.String(),
		Name:       role.Name,
		Privileges: privileges,
		CreatedAt:  role.CreatedAt,
		UpdatedAt:  role.UpdatedAt,
	}
}

// ListRolesResponse represents a page of roles.
type ListRolesResponse struct {
	Data []RoleResponse `json:"data"`
}

// MapRolesToListResponse converts domain roles to a list API response.
func MapRolesToListResponse(roles []*roleDomain.Role) ListRolesResponse {
	data := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		data = append(data, MapRoleToResponse(role))
	}
	return ListRolesResponse{Data: data}
}
