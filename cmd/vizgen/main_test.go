package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/vizgen"
	main "github.com/m-mizutani/vizgen/cmd/vizgen"
)

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := main.NewLogger(&buf, "debug", "json")
		gt.NoError(t, err).Required()

		logger.Debug("hello", "k", "v")
		gt.S(t, buf.String()).Contains(`"msg":"hello"`)
	})

	t.Run("level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := main.NewLogger(&buf, "warn", "TEXT")
		gt.NoError(t, err).Required()

		logger.Info("hidden")
		gt.Equal(t, buf.Len(), 0)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := main.NewLogger(&bytes.Buffer{}, "loud", "text")
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := main.NewLogger(&bytes.Buffer{}, "info", "xml")
		gt.Error(t, err)
	})
}

func TestRunRender(t *testing.T) {
	ctx := context.Background()

	t.Run("prints path", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer

		err := main.RunRender(ctx, vizgen.New(vizgen.WithOutputDir(dir)), &out, "Gravity", false)
		gt.NoError(t, err).Required()

		path := filepath.Join(dir, "GravityVisualization.html")
		gt.Equal(t, strings.TrimSpace(out.String()), path)
		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("prints html", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer

		err := main.RunRender(ctx, vizgen.New(vizgen.WithOutputDir(dir)), &out, "3D Shapes", true)
		gt.NoError(t, err).Required()

		raw, err := os.ReadFile(filepath.Join(dir, "Viz3DShapesVisualization.html"))
		gt.NoError(t, err).Required()
		gt.Equal(t, out.String(), string(raw))
	})

	t.Run("error is returned", func(t *testing.T) {
		var out bytes.Buffer
		err := main.RunRender(ctx, vizgen.New(vizgen.WithOutputDir(t.TempDir())), &out, "???", false)
		gt.Error(t, err)
		gt.Equal(t, out.Len(), 0)
	})
}
