package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	roleUseCase "github.com/allisson/hivelvet/internal/role/usecase"
)

type roleOutput struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Privileges []privilegeOutput `json:"privileges" yaml:"privileges"`
}

// RunCreateRole creates a role holding the given privileges. With grantAll the
// role is created, or refreshed when it exists, with every discovered privilege;
// this is how the first administrator role is bootstrapped.
//
// Requirements: Database must be migrated and accessible.
func RunCreateRole(
	ctx context.Context,
	useCase roleUseCase.RoleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	privilegeValues []string,
	grantAll bool,
	format string,
) error {
	logger.Info("creating role", slog.String("name", name), slog.Bool("grant_all", grantAll))

	var (
		role *roleDomain.Role
		err  error
	)

	if grantAll {
		if len(privilegeValues) > 0 {
			return fmt.Errorf("--all cannot be combined with --privilege")
		}
		role, err = useCase.GrantAll(ctx, name)
	} else {
		privileges, parseErr := parsePrivileges(privilegeValues)
		if parseErr != nil {
			return parseErr
		}
		if len(privileges) == 0 {
			return fmt.Errorf("at least one privilege is required (or use --all)")
		}
		role, err = useCase.Create(ctx, &roleDomain.CreateRoleInput{Name: name, Privileges: privileges})
	}
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	logger.Info("role created successfully",
		slog.String("role_id", role.ID.String()),
		slog.Int("privileges", len(role.Privileges)),
	)

	output := roleOutput{
		ID:         role.ID.String(),
		Name:       role.Name,
		Privileges: make([]privilegeOutput, 0, len(role.Privileges)),
	}
	for _, p := range role.Privileges {
		output.Privileges = append(output.Privileges, privilegeOutput{Group: p.Group, Name: p.Name})
	}

	return writeOutput(writer, format, output, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "\nRole created successfully!")
		_, _ = fmt.Fprintf(w, "Role ID: %s\n", output.ID)
		_, _ = fmt.Fprintf(w, "Name: %s\n", output.Name)
		_, _ = fmt.Fprintln(w, "Privileges:")
		for _, p := range role.Privileges {
			_, _ = fmt.Fprintf(w, "  - %s\n", p.String())
		}
	})
}
