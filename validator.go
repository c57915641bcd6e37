package vizgen

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ArgsValidator checks tool call arguments against the JSON schema of a ToolSpec.
type ArgsValidator struct {
	tool   string
	schema *jsonschema.Schema
}

// NewArgsValidator compiles the JSON schema of spec.
func NewArgsValidator(spec ToolSpec) (*ArgsValidator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	doc, err := normalizeJSON(spec.JSONSchema())
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTool, "failed to encode schema", goerr.V("tool", spec.Name), goerr.V("cause", err.Error()))
	}

	url := spec.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, goerr.Wrap(ErrInvalidTool, "failed to add schema resource", goerr.V("tool", spec.Name), goerr.V("cause", err.Error()))
	}

	sch, err := c.Compile(url)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTool, "failed to compile schema", goerr.V("tool", spec.Name), goerr.V("cause", err.Error()))
	}

	return &ArgsValidator{tool: spec.Name, schema: sch}, nil
}

// Validate returns ErrInvalidArgs if args do not satisfy the schema.
func (v *ArgsValidator) Validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	inst, err := normalizeJSON(args)
	if err != nil {
		return goerr.Wrap(ErrInvalidArgs, "arguments are not JSON encodable", goerr.V("tool", v.tool), goerr.V("cause", err.Error()))
	}

	if err := v.schema.Validate(inst); err != nil {
		return goerr.Wrap(ErrInvalidArgs, "arguments do not match schema", goerr.V("tool", v.tool), goerr.V("cause", err.Error()))
	}

	return nil
}

// normalizeJSON round-trips v through JSON so that numbers and nested values have the
// types the schema validator expects.
func normalizeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
