package main

import (
	"context"
	"os"

	"github.com/m-mizutani/vizgen"
	"github.com/m-mizutani/vizgen/mcp"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the generator tool over MCP stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Value:   vizgen.DefaultOutputDir,
				Sources: cli.EnvVars("VIZGEN_OUTPUT_DIR"),
				Usage:   "Default directory for generated files when a call omits output_dir",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := loggerFromCommand(cmd, os.Stderr)
			if err != nil {
				return err
			}

			tool, err := vizgen.NewGeneratorTool(vizgen.New(
				vizgen.WithOutputDir(cmd.String("output-dir")),
				vizgen.WithLogger(logger),
			))
			if err != nil {
				return err
			}

			s, err := mcp.NewServer(
				mcp.WithTools(tool),
				mcp.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			return s.ServeStdio()
		},
	}
}
