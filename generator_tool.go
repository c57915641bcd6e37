package vizgen

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// GeneratorToolName is the name under which GeneratorTool is exposed to agent runtimes.
	GeneratorToolName = "threejs_generator_tool"

	ArgConcept   = "concept"
	ArgOutputDir = "output_dir"

	ResultHTML      = "html"
	ResultPath      = "path"
	ResultClassName = "class_name"
)

// GeneratorTool exposes a Renderer as a Tool. It takes {concept, output_dir?} and
// returns the rendered HTML along with the written file path.
type GeneratorTool struct {
	renderer  *Renderer
	validator *ArgsValidator
}

var _ Tool = (*GeneratorTool)(nil)

// NewGeneratorTool creates a GeneratorTool backed by renderer. A nil renderer uses New().
func NewGeneratorTool(renderer *Renderer) (*GeneratorTool, error) {
	if renderer == nil {
		renderer = New()
	}

	t := &GeneratorTool{renderer: renderer}

	v, err := NewArgsValidator(t.Spec())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build argument validator")
	}
	t.validator = v

	return t, nil
}

// GeneratorInput is the argument object of GeneratorTool.
type GeneratorInput struct {
	Concept   string `json:"concept" description:"The concept to visualize using Three.js." minLength:"1" required:"true"`
	OutputDir string `json:"output_dir,omitempty" description:"Directory where the generated HTML file will be saved."`
}

var generatorSpec = func() ToolSpec {
	spec, err := SpecFromStruct(GeneratorToolName,
		"Generate a complete HTML file with an embedded Three.js visualization for a concept.",
		GeneratorInput{})
	if err != nil {
		panic(err)
	}
	return spec
}()

func (t *GeneratorTool) Spec() ToolSpec {
	spec := generatorSpec
	spec.Parameters = make(map[string]*Parameter, len(generatorSpec.Parameters))
	for name, param := range generatorSpec.Parameters {
		p := *param
		spec.Parameters[name] = &p
	}
	spec.Parameters[ArgOutputDir].Description += " Defaults to '" + t.renderer.OutputDir() + "'."
	return spec
}

func (t *GeneratorTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	if err := t.validator.Validate(args); err != nil {
		return nil, err
	}

	input, err := DecodeArgs[GeneratorInput](args)
	if err != nil {
		return nil, err
	}

	result, err := t.renderer.Generate(ctx, input.Concept, input.OutputDir)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		ResultHTML:      result.Content,
		ResultPath:      result.Path,
		ResultClassName: result.ClassName,
	}, nil
}
