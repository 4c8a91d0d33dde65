// Package main provides the terminal workflow editor for the Caseflow API.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/caseflow/caseflow/internal/tui"
	"github.com/caseflow/caseflow/pkg/client"
	"github.com/caseflow/caseflow/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "caseflow-editor",
		Usage:                 "Edit case workflow definitions from the terminal",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the Caseflow API",
				Value:   "http://localhost:9091",
				Sources: cli.EnvVars("CASEFLOW_API_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			return tui.Run(client.New(command.String("api-url")))
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
