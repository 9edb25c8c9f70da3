// Package dto provides data transfer objects for the role HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	privilegeDomain "github.com/allisson/hivelvet/internal/privilege/domain"
	customValidation "github.com/allisson/hivelvet/internal/validation"
)

// RoleRequest is the body of role create and update requests.
type RoleRequest struct {
	Name       string                      `json:"name"`
	Privileges []privilegeDomain.Privilege `json:"privileges"`
}

// Validate checks the request shape. Membership in the privilege registry is
// checked by the use case.
func (r *RoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Privileges,
			validation.Each(validation.By(validatePrivilege)),
		),
	)
}

func validatePrivilege(value interface{}) error {
	privilege, ok := value.(privilegeDomain.Privilege)
	if !ok {
		return validation.NewError("validation_privilege_type", "must be a privilege")
	}

	return validation.ValidateStruct(&privilege,
		validation.Field(&privilege.Group, validation.Required, customValidation.PrivilegeSegment),
		validation.Field(&privilege.Name, validation.Required, customValidation.PrivilegeSegment),
	)
}
