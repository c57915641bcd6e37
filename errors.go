package vizgen

import (
	"errors"
	"fmt"
)

var (
	// ErrRender is returned when a template cannot be parsed or executed. A concept that
	// does not produce a usable identifier is also reported as ErrRender.
	ErrRender = errors.New("render failed")

	// ErrInvalidConcept is returned when a concept has no characters that can form a
	// script identifier. It wraps ErrRender.
	ErrInvalidConcept = fmt.Errorf("%w: invalid concept", ErrRender)

	// ErrIO is returned when the output directory or file cannot be written.
	ErrIO = errors.New("output write failed")

	ErrInvalidTool      = errors.New("invalid tool specification")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidArgs      = errors.New("invalid tool arguments")
	ErrToolNotFound     = errors.New("tool not found")
)
