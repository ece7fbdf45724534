package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	m := &Manifest{
		MainTarget: "app",
		Targets: []Target{
			{Name: "core", Type: StaticLib, Sources: []string{"core.cpp"}},
			{Name: "app", Type: Executable, Sources: []string{"main.cpp"}, DependLibs: []string{"core", "pthread", "fmt::fmt"}},
		},
		DependPackages: []DependencyPackage{{Name: "fmt", Autolink: true}},
	}

	g, err := Resolve(m)
	require.NoError(t, err)

	assert.Equal(t, "app", g.MainTarget)
	assert.Equal(t, m.Targets, g.Targets)
	assert.Equal(t, m.DependPackages, g.DependPackages)
	assert.True(t, g.IsInternal("core"))
	assert.False(t, g.IsInternal("pthread"))
	assert.Equal(t, []string{"core"}, g.InternalDeps("app"))
	assert.Equal(t, []string{"pthread", "fmt::fmt"}, g.ExternalDeps("app"))
	assert.Nil(t, g.InternalDeps("missing"))

	main, err := g.Main()
	require.NoError(t, err)
	assert.Equal(t, "app", main.Name)
}

func TestResolve_UnknownDependency(t *testing.T) {
	targets := []Target{
		{Name: "engine", Type: StaticLib, Sources: []string{"engine.cpp"}},
		{Name: "app", Type: Executable, Sources: []string{"main.cpp"}},
	}

	tests := []struct {
		name       string
		dep        string
		suggestion string
	}{
		{"case mismatch", "Engine", "engine"},
		{"one edit away", "engin", "engine"},
		{"transposed-free substitution", "enjine", "engine"},
		{"self reference", "app", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := append([]Target(nil), targets...)
			ts[1].DependLibs = []string{tt.dep}

			_, err := Resolve(&Manifest{MainTarget: "app", Targets: ts})
			assert.ErrorIs(t, err, ErrUnknownDependency)

			var graphErr *GraphError
			require.ErrorAs(t, err, &graphErr)
			assert.Equal(t, "app", graphErr.Target)
			assert.Equal(t, tt.dep, graphErr.Dependency)
			assert.Equal(t, tt.suggestion, graphErr.Suggestion)
			if tt.suggestion != "" {
				assert.Contains(t, err.Error(), "did you mean")
			}
		})
	}
}

func TestResolve_NearMissBoundary(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		dep      string
		packages []DependencyPackage
		wantErr  bool
	}{
		{"one edit from four letter target", "glfw", "glfw3", nil, true},
		{"declared package wins", "glfw", "glfw3", []DependencyPackage{{Name: "glfw3", Autolink: true}}, false},
		{"short target is exempt", "io", "ios", nil, false},
		{"two edits away", "core", "corexx", nil, false},
		{"case folding ignores length", "io", "IO", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{
				Targets: []Target{
					{Name: tt.target, Type: StaticLib, Sources: []string{"lib.cpp"}},
					{Name: "app", Type: Executable, Sources: []string{"main.cpp"}, DependLibs: []string{tt.dep}},
				},
				DependPackages: tt.packages,
			}

			g, err := Resolve(m)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownDependency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.dep}, g.ExternalDeps("app"))
		})
	}
}

func TestResolve_ExternalPassThrough(t *testing.T) {
	m := &Manifest{Targets: []Target{
		{Name: "io", Type: StaticLib, Sources: []string{"io.cpp"}},
		{Name: "app", Type: Executable, Sources: []string{"main.cpp"}, DependLibs: []string{"z", "m", "dl", "ssl", "boost::system"}},
	}}

	g, err := Resolve(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "dl", "ssl", "boost::system"}, g.ExternalDeps("app"))
}

func TestGraph_MainMissing(t *testing.T) {
	g, err := Resolve(&Manifest{Targets: []Target{
		{Name: "core", Type: StaticLib, Sources: []string{"core.cpp"}},
	}})
	require.NoError(t, err)

	_, err = g.Main()
	assert.ErrorIs(t, err, ErrNoMainTarget)
}
