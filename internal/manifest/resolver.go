package manifest

import (
	"strings"

	"github.com/agext/levenshtein"
)

// minTypoLength is the shortest target name considered for near-miss matching;
// shorter names collide with common system libraries (m, dl, z, rt).
const minTypoLength = 4

// Graph is a validated manifest: targets in declaration order, every
// inter-target reference checked, and the main target determined.
type Graph struct {
	MainTarget     string
	Targets        []Target
	DependPackages []DependencyPackage

	index map[string]int
}

// Resolve validates the link dependencies of every target. Names matching a
// declared target become internal links. A name that only looks like a
// declared target (same name ignoring case, or one edit away from a target of
// at least four characters) is reported as ErrUnknownDependency unless it is
// also declared under dependPackages. Everything else passes through as an
// external library.
func Resolve(m *Manifest) (*Graph, error) {
	g := &Graph{
		MainTarget:     m.MainTarget,
		Targets:        m.Targets,
		DependPackages: m.DependPackages,
		index:          make(map[string]int, len(m.Targets)),
	}
	for i, t := range m.Targets {
		g.index[t.Name] = i
	}
	packages := make(map[string]bool, len(m.DependPackages))
	for _, p := range m.DependPackages {
		packages[p.Name] = true
	}

	for _, t := range g.Targets {
		for _, dep := range t.DependLibs {
			if dep == t.Name {
				return nil, &GraphError{Target: t.Name, Dependency: dep, Err: ErrUnknownDependency}
			}
			if _, ok := g.index[dep]; ok || packages[dep] {
				continue
			}
			if suggestion, ok := g.nearMiss(dep); ok {
				return nil, &GraphError{Target: t.Name, Dependency: dep, Suggestion: suggestion, Err: ErrUnknownDependency}
			}
		}
	}

	return g, nil
}

// nearMiss finds a declared target the reference was probably meant to name.
func (g *Graph) nearMiss(ref string) (string, bool) {
	for _, t := range g.Targets {
		if strings.EqualFold(t.Name, ref) {
			return t.Name, true
		}
		if len(t.Name) >= minTypoLength && levenshtein.Distance(t.Name, ref, nil) == 1 {
			return t.Name, true
		}
	}
	return "", false
}

// Target returns the named target
func (g *Graph) Target(name string) (*Target, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return &g.Targets[i], true
}

// IsInternal reports whether name refers to a declared target
func (g *Graph) IsInternal(name string) bool {
	_, ok := g.index[name]
	return ok
}

// InternalDeps returns the dependLibs of name that are declared targets
func (g *Graph) InternalDeps(name string) []string {
	return g.filterDeps(name, true)
}

// ExternalDeps returns the dependLibs of name that are opaque libraries
func (g *Graph) ExternalDeps(name string) []string {
	return g.filterDeps(name, false)
}

func (g *Graph) filterDeps(name string, internal bool) []string {
	t, ok := g.Target(name)
	if !ok {
		return nil
	}
	var out []string
	for _, dep := range t.DependLibs {
		if g.IsInternal(dep) == internal {
			out = append(out, dep)
		}
	}
	return out
}

// Main returns the main target, failing when no executable was declared
func (g *Graph) Main() (*Target, error) {
	if g.MainTarget == "" {
		return nil, ErrNoMainTarget
	}
	t, ok := g.Target(g.MainTarget)
	if !ok {
		return nil, ErrNoMainTarget
	}
	return t, nil
}
