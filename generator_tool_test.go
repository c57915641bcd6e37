package vizgen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/vizgen"
)

func TestGeneratorTool(t *testing.T) {
	ctx := context.Background()

	tool, err := vizgen.NewGeneratorTool(nil)
	gt.NoError(t, err).Required()

	t.Run("spec", func(t *testing.T) {
		spec := tool.Spec()
		gt.NoError(t, spec.Validate())
		gt.Equal(t, spec.Name, vizgen.GeneratorToolName)
		gt.Equal(t, spec.Required, []string{vizgen.ArgConcept})
		gt.NotNil(t, spec.Parameters[vizgen.ArgOutputDir])
		gt.S(t, spec.Parameters[vizgen.ArgOutputDir].Description).Contains(vizgen.DefaultOutputDir)
	})

	t.Run("run", func(t *testing.T) {
		dir := t.TempDir()
		resp, err := tool.Run(ctx, map[string]any{
			vizgen.ArgConcept:   "Gravity",
			vizgen.ArgOutputDir: dir,
		})
		gt.NoError(t, err).Required()

		path := filepath.Join(dir, "GravityVisualization.html")
		gt.Equal(t, resp[vizgen.ResultPath], any(path))
		gt.Equal(t, resp[vizgen.ResultClassName], any("GravityVisualization"))

		raw, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp[vizgen.ResultHTML], any(string(raw)))
	})

	t.Run("missing concept", func(t *testing.T) {
		_, err := tool.Run(ctx, map[string]any{vizgen.ArgOutputDir: t.TempDir()})
		gt.True(t, errors.Is(err, vizgen.ErrInvalidArgs))
	})

	t.Run("concept of wrong type", func(t *testing.T) {
		_, err := tool.Run(ctx, map[string]any{vizgen.ArgConcept: 3})
		gt.True(t, errors.Is(err, vizgen.ErrInvalidArgs))
	})

	t.Run("unwritable output dir", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		gt.NoError(t, os.WriteFile(blocker, nil, 0644)).Required()

		resp, err := tool.Run(ctx, map[string]any{
			vizgen.ArgConcept:   "Gravity",
			vizgen.ArgOutputDir: filepath.Join(blocker, "out"),
		})
		gt.True(t, errors.Is(err, vizgen.ErrIO))
		gt.Nil(t, resp)
	})

	t.Run("renderer default directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "lessons")
		tool, err := vizgen.NewGeneratorTool(vizgen.New(vizgen.WithOutputDir(dir)))
		gt.NoError(t, err).Required()

		resp, err := tool.Run(ctx, map[string]any{vizgen.ArgConcept: "3D Shapes"})
		gt.NoError(t, err).Required()
		gt.Equal(t, resp[vizgen.ResultPath], any(filepath.Join(dir, "Viz3DShapesVisualization.html")))
	})
}
