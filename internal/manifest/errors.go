package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrMissingOrWrongType indicates a required field is absent or has the wrong shape
	ErrMissingOrWrongType = errors.New("missing or wrong type")

	// ErrInvalidTargetType indicates an unknown target type literal
	ErrInvalidTargetType = errors.New("invalid target type")

	// ErrInvalidMainTarget indicates the main target is missing or not an executable
	ErrInvalidMainTarget = errors.New("main target must name an executable target")

	// ErrEmptySources indicates a target without source files
	ErrEmptySources = errors.New("target must list at least one source file")

	// ErrDuplicateTarget indicates a target name declared twice
	ErrDuplicateTarget = errors.New("duplicate target name")

	// ErrUnknownDependency indicates a dependLibs entry that looks like a misspelled target
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrNoMainTarget indicates no executable target exists
	ErrNoMainTarget = errors.New("no executable target declared")

	// ErrInvalidFormat indicates the manifest file is not valid YAML
	ErrInvalidFormat = errors.New("manifest must be valid YAML")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")
)

// SchemaError is a manifest validation failure tied to a field path
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("manifest field %q: %v", e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func schemaErr(field string, err error) *SchemaError {
	return &SchemaError{Field: field, Err: err}
}

// GraphError is a failure resolving a target's link dependency
type GraphError struct {
	Target     string
	Dependency string
	Suggestion string
	Err        error
}

func (e *GraphError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("target %q: %v %q (did you mean %q?)", e.Target, e.Err, e.Dependency, e.Suggestion)
	}
	return fmt.Sprintf("target %q: %v %q", e.Target, e.Err, e.Dependency)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}
