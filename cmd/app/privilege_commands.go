package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hivelvet/cmd/app/commands"
	"github.com/allisson/hivelvet/internal/app"
	"github.com/allisson/hivelvet/internal/config"
)

func getPrivilegeCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list-privileges",
			Usage: "List the privileges exposed by the registered actions",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "grouped",
					Aliases: []string{"g"},
					Usage:   "Group privilege names by action group",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				discoveryUseCase, err := container.OfflineDiscoveryUseCase()
				if err != nil {
					return err
				}

				return commands.RunListPrivileges(
					ctx,
					discoveryUseCase,
					commands.DefaultIO().Writer,
					cmd.Bool("grouped"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-role",
			Usage: "Create a role from a list of privileges",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique role name",
				},
				&cli.StringSliceFlag{
					Name:    "privilege",
					Aliases: []string{"p"},
					Usage:   "Privilege as Group.Name (repeatable)",
				},
				&cli.BoolFlag{
					Name:  "all",
					Usage: "Grant every discovered privilege, refreshing the role when it exists",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				if _, err := container.ActionRegistry(); err != nil {
					return err
				}

				roleUseCase, err := container.RoleUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateRole(
					ctx,
					roleUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.StringSlice("privilege"),
					cmd.Bool("all"),
					cmd.String("format"),
				)
			},
		},
	}
}
