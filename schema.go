package vizgen

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrUnsupportedType = goerr.New("unsupported type for schema conversion")
	ErrInvalidTag      = goerr.New("invalid struct tag")
)

// SpecFromStruct builds a ToolSpec whose parameters are the exported fields of the flat
// struct v. Fields are described by struct tags:
//
//   - json:"field_name" - parameter name; "-" skips the field
//   - description:"text" - parameter description
//   - enum:"a,b,c" - allowed values
//   - min:"0", max:"100" - number range
//   - minLength:"1", maxLength:"255", pattern:"^[a-z]+$" - string constraints
//   - required:"true" - the parameter must be present
//
// Example:
//
//	type Input struct {
//	    Concept string `json:"concept" description:"Concept to visualize" minLength:"1" required:"true"`
//	}
//
//	spec, err := vizgen.SpecFromStruct("threejs_generator_tool", "...", Input{})
func SpecFromStruct(name, description string, v any) (ToolSpec, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ToolSpec{}, goerr.Wrap(ErrUnsupportedType, "input must be a struct", goerr.V("tool", name))
	}

	spec := ToolSpec{
		Name:        name,
		Description: description,
		Parameters:  make(map[string]*Parameter, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			tagName, _, _ := strings.Cut(jsonTag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				fieldName = tagName
			}
		}

		param, required, err := fieldToParameter(field)
		if err != nil {
			return ToolSpec{}, goerr.Wrap(err, "failed to convert field", goerr.V("tool", name), goerr.V("field", field.Name))
		}

		spec.Parameters[fieldName] = param
		if required {
			spec.Required = append(spec.Required, fieldName)
		}
	}

	return spec, nil
}

func fieldToParameter(field reflect.StructField) (*Parameter, bool, error) {
	param := &Parameter{
		Description: field.Tag.Get("description"),
		Pattern:     field.Tag.Get("pattern"),
	}

	switch field.Type.Kind() {
	case reflect.String:
		param.Type = TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		param.Type = TypeInteger
	case reflect.Float32, reflect.Float64:
		param.Type = TypeNumber
	case reflect.Bool:
		param.Type = TypeBoolean
	default:
		return nil, false, goerr.Wrap(ErrUnsupportedType, "cannot convert type", goerr.V("type", field.Type.String()))
	}

	if enum := field.Tag.Get("enum"); enum != "" {
		for _, e := range strings.Split(enum, ",") {
			param.Enum = append(param.Enum, strings.TrimSpace(e))
		}
	}

	var err error
	if param.Minimum, err = tagFloat(field, "min"); err != nil {
		return nil, false, err
	}
	if param.Maximum, err = tagFloat(field, "max"); err != nil {
		return nil, false, err
	}
	if param.MinLength, err = tagInt(field, "minLength"); err != nil {
		return nil, false, err
	}
	if param.MaxLength, err = tagInt(field, "maxLength"); err != nil {
		return nil, false, err
	}

	var required bool
	if tag := field.Tag.Get("required"); tag != "" {
		if required, err = strconv.ParseBool(tag); err != nil {
			return nil, false, goerr.Wrap(ErrInvalidTag, "invalid required value", goerr.V("value", tag))
		}
	}

	return param, required, nil
}

func tagFloat(field reflect.StructField, key string) (*float64, error) {
	tag := field.Tag.Get(key)
	if tag == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(tag, 64)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTag, "invalid "+key+" value", goerr.V("value", tag))
	}
	return &v, nil
}

func tagInt(field reflect.StructField, key string) (*int, error) {
	tag := field.Tag.Get(key)
	if tag == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(tag)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidTag, "invalid "+key+" value", goerr.V("value", tag))
	}
	return &v, nil
}

// DecodeArgs decodes tool call arguments into T using its json tags.
func DecodeArgs[T any](args map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(args)
	if err != nil {
		return out, goerr.Wrap(ErrInvalidArgs, "failed to encode arguments", goerr.V("cause", err.Error()))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, goerr.Wrap(ErrInvalidArgs, "failed to decode arguments", goerr.V("cause", err.Error()))
	}
	return out, nil
}
