package dto

import (
	"time"

	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

// UserResponse represents a user in API responses. The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    *string   `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	response := UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.RoleID != nil {
		roleID := user.RoleID.String()
		response.RoleID = &roleID
	}
	return response
}

// CreateUserResponse is returned by POST /v1/users.
type CreateUserResponse struct {
	UserResponse
	GeneratedPassword string `json:"generated_password,omitempty"` //nolint:gosec // shown once
}

// MapRegisterOutputToResponse converts a registration result to an API response.
func MapRegisterOutputToResponse(output *userDomain.RegisterUserOutput) CreateUserResponse {
	return CreateUserResponse{
		UserResponse:      MapUserToResponse(output.User),
		GeneratedPassword: output.GeneratedPassword,
	}
}

// ListUsersResponse represents a page of users.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts domain users to a list API response.
func MapUsersToListResponse(users []*userDomain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return ListUsersResponse{Data: data}
}
