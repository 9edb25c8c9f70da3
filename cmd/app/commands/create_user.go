package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	userDomain "github.com/allisson/hivelvet/internal/user/domain"
	userUseCase "github.com/allisson/hivelvet/internal/user/usecase"
)

type userOutput struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Email             string `json:"email" yaml:"email"`
	RoleID            string `json:"role_id,omitempty" yaml:"role_id,omitempty"`
	GeneratedPassword string `json:"generated_password,omitempty" yaml:"generated_password,omitempty"`
}

func newUserOutput(user *userDomain.User) userOutput {
	output := userOutput{ID: user.ID.String(), Name: user.Name, Email: user.Email}
	if user.RoleID != nil {
		output.RoleID = user.RoleID.String()
	}
	return output
}

// parseOptionalID parses value as a UUID; an empty value yields nil.
func parseOptionalID(value, flag string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flag, err)
	}
	return &id, nil
}

// RunCreateUser registers a user. When password is empty a strong one is
// generated and printed once.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	roleIDValue string,
	format string,
) error {
	logger.Info("creating user", slog.String("email", email))

	roleID, err := parseOptionalID(roleIDValue, "role id")
	if err != nil {
		return err
	}

	result, err := useCase.Register(ctx, &userDomain.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleID:   roleID,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created successfully", slog.String("user_id", result.User.ID.String()))

	output := newUserOutput(result.User)
	output.GeneratedPassword = result.GeneratedPassword

	return writeOutput(writer, format, output, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "\nUser created successfully!")
		_, _ = fmt.Fprintf(w, "User ID: %s\n", output.ID)
		_, _ = fmt.Fprintf(w, "Email: %s\n", output.Email)
		if output.RoleID != "" {
			_, _ = fmt.Fprintf(w, "Role ID: %s\n", output.RoleID)
		}
		if output.GeneratedPassword != "" {
			_, _ = fmt.Fprintf(w, "Password: %s\n", output.GeneratedPassword)
			_, _ = fmt.Fprintln(w, "\nIMPORTANT: The password is shown only once. Store it securely.")
		}
	})
}

// RunAssignRole sets the role of a user; an empty roleIDValue clears it.
func RunAssignRole(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userIDValue string,
	roleIDValue string,
	format string,
) error {
	userID, err := uuid.Parse(userIDValue)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	roleID, err := parseOptionalID(roleIDValue, "role id")
	if err != nil {
		return err
	}

	user, err := useCase.AssignRole(ctx, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	logger.Info("role assigned", slog.String("user_id", user.ID.String()), slog.String("role_id", roleIDValue))

	output := newUserOutput(user)
	return writeOutput(writer, format, output, func(w io.Writer) {
		if output.RoleID == "" {
			_, _ = fmt.Fprintf(w, "Role cleared for user %s\n", output.Email)
			return
		}
		_, _ = fmt.Fprintf(w, "Role %s assigned to user %s\n", output.RoleID, output.Email)
	})
}
