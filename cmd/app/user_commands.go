package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hivelvet/cmd/app/commands"
	"github.com/allisson/hivelvet/internal/app"
	"github.com/allisson/hivelvet/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Register a user, generating a password when none is given",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Login email",
				},
				&cli.StringFlag{
					Name:    "password",
					Sources: cli.EnvVars("HIVELVET_USER_PASSWORD"),
					Usage:   "Password (omit to generate one)",
				},
				&cli.StringFlag{
					Name:    "role-id",
					Aliases: []string{"r"},
					Usage:   "Role ID (UUID) to assign",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("role-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "assign-role",
			Usage: "Assign a role to a user, or clear it when --role-id is omitted",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "role-id",
					Aliases: []string{"r"},
					Usage:   "Role ID (UUID)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunAssignRole(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("role-id"),
					cmd.String("format"),
				)
			},
		},
	}
}
