package manifest

import "fmt"

// TargetType is the kind of artifact a target produces
type TargetType int

const (
	// Executable is a standalone binary (the default when `type` is omitted)
	Executable TargetType = iota
	// StaticLib is a static library
	StaticLib
	// DynamicLib is a shared library
	DynamicLib
)

// Literal values accepted in the manifest `type` field
const (
	TypeExecutable = "executable"
	TypeStaticLib  = "static_lib"
	TypeDynamicLib = "dynamic_lib"
)

// ParseTargetType converts a manifest literal into a TargetType.
// Matching is case-sensitive and never falls back to a default.
func ParseTargetType(s string) (TargetType, error) {
	switch s {
	case TypeExecutable:
		return Executable, nil
	case TypeStaticLib:
		return StaticLib, nil
	case TypeDynamicLib:
		return DynamicLib, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTargetType, s)
	}
}

// String returns the manifest literal for the type
func (t TargetType) String() string {
	switch t {
	case StaticLib:
		return TypeStaticLib
	case DynamicLib:
		return TypeDynamicLib
	default:
		return TypeExecutable
	}
}

// IsLibrary reports whether the target builds a library
func (t TargetType) IsLibrary() bool {
	return t == StaticLib || t == DynamicLib
}

// Target is one buildable unit declared in the manifest
type Target struct {
	Name       string
	Type       TargetType
	Sources    []string
	DependLibs []string
}

// DependencyPackage is an external package installed through the package manager
type DependencyPackage struct {
	Name     string
	Autolink bool
}

// Manifest is the parsed project description
type Manifest struct {
	// Version is the informational `version` scalar written by init
	Version        string
	MainTarget     string
	Targets        []Target
	DependPackages []DependencyPackage
}

// Target returns the target with the given name
func (m *Manifest) Target(name string) (*Target, bool) {
	for i := range m.Targets {
		if m.Targets[i].Name == name {
			return &m.Targets[i], true
		}
	}
	return nil, false
}

// TargetNames returns target names in declaration order
func (m *Manifest) TargetNames() []string {
	names := make([]string, 0, len(m.Targets))
	for _, t := range m.Targets {
		names = append(names, t.Name)
	}
	return names
}
