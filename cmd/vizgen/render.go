package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/vizgen"
	"github.com/urfave/cli/v3"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render one concept into an HTML visualization file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "concept",
				Aliases:  []string{"c"},
				Required: true,
				Usage:    "Concept to visualize, e.g. \"Quantum Mechanics - Chapter 1\"",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Value:   vizgen.DefaultOutputDir,
				Sources: cli.EnvVars("VIZGEN_OUTPUT_DIR"),
				Usage:   "Directory where the HTML file is written",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the rendered HTML instead of the file path",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := loggerFromCommand(cmd, os.Stderr)
			if err != nil {
				return err
			}

			r := vizgen.New(
				vizgen.WithOutputDir(cmd.String("output-dir")),
				vizgen.WithLogger(logger),
			)
			return runRender(ctx, r, os.Stdout, cmd.String("concept"), cmd.Bool("stdout"))
		},
	}
}

func runRender(ctx context.Context, r *vizgen.Renderer, w io.Writer, concept string, printHTML bool) error {
	result, err := r.Generate(ctx, concept, "")
	if err != nil {
		return err
	}

	if printHTML {
		_, err = io.WriteString(w, result.Content)
	} else {
		_, err = fmt.Fprintln(w, result.Path)
	}
	return err
}
