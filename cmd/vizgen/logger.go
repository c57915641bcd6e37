package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
)

func loggerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Sources: cli.EnvVars("VIZGEN_LOG_LEVEL"),
			Usage:   "Log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Sources: cli.EnvVars("VIZGEN_LOG_FORMAT"),
			Usage:   "Log format (text, json)",
		},
	}
}

// newLogger builds the process logger. Logs always go to w (stderr in main) so that
// stdout stays free for MCP traffic and --stdout output.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lv}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

func loggerFromCommand(cmd *cli.Command, w io.Writer) (*slog.Logger, error) {
	logger, err := newLogger(w, cmd.String("log-level"), cmd.String("log-format"))
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
