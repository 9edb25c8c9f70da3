// Package dto provides data transfer objects for the token endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/hivelvet/internal/validation"
)

// IssueTokenRequest contains the credentials exchanged for a token.
type IssueTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
