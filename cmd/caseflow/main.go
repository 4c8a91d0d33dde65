// Package main provides the caseflow admin CLI: bulk import and offline
// validation of workflow seed files.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/caseflow/caseflow/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "caseflow",
		Usage:                 "Manage case workflow definitions",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "Import templates and workflows from a seed YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the seed YAML file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "Database connection URL for persistence (file://, postgres://, redis://)",
						Value:   "file://./data",
						Sources: cli.EnvVars("DATABASE_URL"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "info",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					log.Setup(command.String("log-level"))

					return runSeed(ctx, command.String("database-url"), command.String("file"))
				},
			},
			{
				Name:    "validate",
				Aliases: []string{"v"},
				Usage:   "Validate a seed YAML file without importing it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the seed YAML file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "info",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					log.Setup(command.String("log-level"))

					return runValidate(ctx, command.String("file"))
				},
			},
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
