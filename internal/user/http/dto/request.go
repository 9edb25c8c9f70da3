// Package dto provides data transfer objects for the user HTTP API.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/hivelvet/internal/validation"
)

// CreateUserRequest is the body of POST /v1/users. Password is optional;
// an omitted password is generated and returned once.
type CreateUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password,omitempty"` //nolint:gosec // request field
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
}

// Validate checks the request shape. Password strength is checked by the use case.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
	)
}

// AssignRoleRequest is the body of PUT /v1/users/:id/role. A null role_id
// clears the assignment.
type AssignRoleRequest struct {
	RoleID *uuid.UUID `json:"role_id"`
}
