package vizgen

import (
	"context"
	"regexp"
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// ToolSpec is the specification of a tool.
// It describes the tool to an agent runtime and is used to validate call arguments.
type ToolSpec struct {
	// Name is the unique identifier for the tool.
	Name string

	// Description is a human-readable description of what the tool does.
	Description string

	// Parameters defines the input parameters that the tool accepts.
	Parameters map[string]*Parameter

	// Required is the list of required parameter names.
	Required []string
}

// Validate validates the tool specification.
func (s *ToolSpec) Validate() error {
	eb := goerr.NewBuilder(goerr.V("tool", s.Name))
	if s.Name == "" {
		return eb.Wrap(ErrInvalidTool, "name is required")
	}

	for name, param := range s.Parameters {
		if err := param.Validate(); err != nil {
			return eb.Wrap(ErrInvalidTool, "invalid parameter", goerr.V("parameter", name), goerr.V("cause", err.Error()))
		}
	}

	for _, req := range s.Required {
		if _, ok := s.Parameters[req]; !ok {
			return eb.Wrap(ErrInvalidTool, "required parameter not defined", goerr.V("parameter", req))
		}
	}

	return nil
}

// JSONSchema returns the arguments of the tool as a JSON Schema object.
func (s *ToolSpec) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Parameters))
	for name, param := range s.Parameters {
		properties[name] = param.JSONSchema()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(s.Required) > 0 {
		required := slices.Clone(s.Required)
		slices.Sort(required)
		schema["required"] = required
	}
	return schema
}

// ParameterType is the type of a parameter.
type ParameterType string

const (
	TypeString  ParameterType = "string"
	TypeNumber  ParameterType = "number"
	TypeInteger ParameterType = "integer"
	TypeBoolean ParameterType = "boolean"
	TypeArray   ParameterType = "array"
	TypeObject  ParameterType = "object"
)

// Parameter is a parameter of a tool. SpecFromStruct fills only the flat fields (Type,
// Description, Enum and the number and string constraints). Title, Default and the
// object and array fields (Properties, Required, Items, MinItems, MaxItems) are for
// hand-built specs; Validate checks them and JSONSchema renders them.
type Parameter struct {
	// Title is the user-friendly name of the parameter.
	Title string

	// Type is the type of the parameter.
	Type ParameterType

	// Description is the description of the parameter.
	Description string

	// Required is the list of required field names when Type is Object.
	Required []string

	// Enum is the list of allowed values for the parameter.
	Enum []string

	// Properties is the properties of the parameter when Type is Object.
	Properties map[string]*Parameter

	// Items is the element type when Type is Array.
	Items *Parameter

	// Number constraints
	Minimum *float64
	Maximum *float64

	// String constraints
	MinLength *int
	MaxLength *int
	Pattern   string

	// Array constraints
	MinItems *int
	MaxItems *int

	// Default value for the parameter.
	Default any
}

// Validate validates the parameter.
func (p *Parameter) Validate() error {
	eb := goerr.NewBuilder(goerr.V("type", p.Type))

	if p.Type == "" {
		return eb.Wrap(ErrInvalidParameter, "type is required")
	}

	if p.Type == TypeObject {
		if p.Properties == nil {
			return eb.Wrap(ErrInvalidParameter, "properties is required for object type")
		}
		for _, prop := range p.Properties {
			if err := prop.Validate(); err != nil {
				return eb.Wrap(ErrInvalidParameter, "invalid property")
			}
		}
		for _, req := range p.Required {
			if _, ok := p.Properties[req]; !ok {
				return eb.Wrap(ErrInvalidParameter, "required field not found in properties", goerr.V("field", req))
			}
		}
	}

	if p.Type == TypeArray {
		if p.Items == nil {
			return eb.Wrap(ErrInvalidParameter, "items is required for array type")
		}
		if err := p.Items.Validate(); err != nil {
			return eb.Wrap(ErrInvalidParameter, "invalid items")
		}
		if p.MinItems != nil && p.MaxItems != nil && *p.MinItems > *p.MaxItems {
			return eb.Wrap(ErrInvalidParameter, "minItems must be less than or equal to maxItems")
		}
	}

	if p.Type == TypeNumber || p.Type == TypeInteger {
		if p.Minimum != nil && p.Maximum != nil && *p.Minimum > *p.Maximum {
			return eb.Wrap(ErrInvalidParameter, "minimum must be less than or equal to maximum")
		}
	}

	if p.Type == TypeString {
		if p.MinLength != nil && p.MaxLength != nil && *p.MinLength > *p.MaxLength {
			return eb.Wrap(ErrInvalidParameter, "minLength must be less than or equal to maxLength")
		}
		if p.Pattern != "" {
			if _, err := regexp.Compile(p.Pattern); err != nil {
				return eb.Wrap(ErrInvalidParameter, "invalid pattern", goerr.V("pattern", p.Pattern))
			}
		}
	}

	return nil
}

// JSONSchema returns the parameter as a JSON Schema object.
func (p *Parameter) JSONSchema() map[string]any {
	schema := map[string]any{
		"type": string(p.Type),
	}

	if p.Title != "" {
		schema["title"] = p.Title
	}
	if p.Description != "" {
		schema["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		schema["enum"] = p.Enum
	}
	if p.Default != nil {
		schema["default"] = p.Default
	}

	switch p.Type {
	case TypeObject:
		props := make(map[string]any, len(p.Properties))
		for name, prop := range p.Properties {
			props[name] = prop.JSONSchema()
		}
		schema["properties"] = props
		if len(p.Required) > 0 {
			schema["required"] = p.Required
		}
	case TypeArray:
		if p.Items != nil {
			schema["items"] = p.Items.JSONSchema()
		}
		setIfNotNil(schema, "minItems", p.MinItems)
		setIfNotNil(schema, "maxItems", p.MaxItems)
	case TypeNumber, TypeInteger:
		setIfNotNil(schema, "minimum", p.Minimum)
		setIfNotNil(schema, "maximum", p.Maximum)
	case TypeString:
		setIfNotNil(schema, "minLength", p.MinLength)
		setIfNotNil(schema, "maxLength", p.MaxLength)
		if p.Pattern != "" {
			schema["pattern"] = p.Pattern
		}
	}

	return schema
}

func setIfNotNil[T any](schema map[string]any, key string, v *T) {
	if v != nil {
		schema[key] = *v
	}
}

// Tool is specification and execution of an action that can be called by an agent runtime.
type Tool interface {
	// Spec returns the specification of the tool.
	Spec() ToolSpec

	// Run is the execution of the tool.
	// A returned error is reported back to the caller as the tool result. It never aborts
	// the host process.
	Run(ctx context.Context, args map[string]any) (map[string]any, error)
}

// ToolSet is a set of tools dispatched by name.
type ToolSet interface {
	// Specs returns the specifications of the tools.
	Specs() []ToolSpec

	// Run executes the tool identified by name.
	Run(ctx context.Context, name string, args map[string]any) (map[string]any, error)
}

type toolSet struct {
	order []string
	tools map[string]Tool
}

// NewToolSet groups tools into a ToolSet. Tool names must be unique and every spec must
// be valid.
func NewToolSet(tools ...Tool) (ToolSet, error) {
	ts := &toolSet{
		tools: make(map[string]Tool, len(tools)),
	}

	for _, tool := range tools {
		spec := tool.Spec()
		if err := spec.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid tool in set")
		}
		if _, ok := ts.tools[spec.Name]; ok {
			return nil, goerr.Wrap(ErrInvalidTool, "duplicate tool name", goerr.V("tool", spec.Name))
		}
		ts.tools[spec.Name] = tool
		ts.order = append(ts.order, spec.Name)
	}

	return ts, nil
}

func (x *toolSet) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(x.order))
	for _, name := range x.order {
		specs = append(specs, x.tools[name].Spec())
	}
	return specs
}

func (x *toolSet) Run(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	tool, ok := x.tools[name]
	if !ok {
		return nil, goerr.Wrap(ErrToolNotFound, "no such tool", goerr.V("tool", name))
	}

	LoggerFromContext(ctx).Debug("run tool", "name", name, "args", args)

	return tool.Run(ctx, args)
}
