package generator

import (
	"strings"
	"testing"

	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, doc string) *manifest.Graph {
	t.Helper()
	m, err := manifest.NewLoader(nil).LoadFromBytes([]byte(doc))
	require.NoError(t, err)
	g, err := manifest.Resolve(m)
	require.NoError(t, err)
	return g
}

func TestEmitter_Emit(t *testing.T) {
	g := resolve(t, `
targets:
  core:
    type: static_lib
    src: [core/a.cpp, core/b.cpp]
  plugin:
    type: dynamic_lib
    src: [plugin.cpp]
  app:
    src: [main.cpp]
    dependLibs: [core, plugin, fmt::fmt]
`)

	got := NewEmitter(Options{ProjectName: "app"}).Emit(g)

	want := `cmake_minimum_required(VERSION 3.15)
project(app LANGUAGES CXX)

add_library(core STATIC ../src/core/a.cpp ../src/core/b.cpp)

add_library(plugin SHARED ../src/plugin.cpp)

add_executable(app ../src/main.cpp)
target_link_libraries(app PRIVATE core plugin fmt::fmt)
`
	assert.Equal(t, want, got)
}

func TestEmitter_Defaults(t *testing.T) {
	g := resolve(t, "targets:\n  app:\n    src: [main.cpp]\n")

	got := NewEmitter(Options{}).Emit(g)
	assert.Equal(t, "cmake_minimum_required(VERSION 3.15)\nproject(evp_project LANGUAGES CXX)\n\nadd_executable(app ../src/main.cpp)\n", got)
}

func TestEmitter_Options(t *testing.T) {
	g := resolve(t, "targets:\n  app:\n    src: [main.cpp]\n")

	got := NewEmitter(Options{SourcePrefix: "src/", ProjectName: "demo", CMakeMinimum: "3.20"}).Emit(g)
	assert.Equal(t, "cmake_minimum_required(VERSION 3.20)\nproject(demo LANGUAGES CXX)\n\nadd_executable(app src/main.cpp)\n", got)
}

func TestEmitter_PreservesLinkOrder(t *testing.T) {
	g := resolve(t, `
targets:
  a:
    type: static_lib
    src: [a.cpp]
  b:
    type: static_lib
    src: [b.cpp]
  app:
    src: [main.cpp]
    dependLibs: [b, a]
`)

	got := NewEmitter(Options{}).Emit(g)
	assert.Contains(t, got, "target_link_libraries(app PRIVATE b a)\n")
}

func TestEmitter_NoLinkWithoutDependLibs(t *testing.T) {
	g := resolve(t, "targets:\n  app:\n    src: [main.cpp]\n    dependLibs: []\n")

	got := NewEmitter(Options{}).Emit(g)
	assert.NotContains(t, got, "target_link_libraries")
}

func TestEmitter_Quoting(t *testing.T) {
	g := resolve(t, `
targets:
  app:
    src: ["my file.cpp", "a;b.cpp", "odd\"name.cpp"]
`)

	got := NewEmitter(Options{}).Emit(g)
	assert.Contains(t, got, `add_executable(app "../src/my file.cpp" "../src/a;b.cpp" "../src/odd\"name.cpp")`)
}

func TestEmitter_Deterministic(t *testing.T) {
	doc := `
targets:
  core:
    type: static_lib
    src: [core.cpp]
  app:
    src: [main.cpp]
    dependLibs: [core]
`
	e := NewEmitter(Options{})
	first := e.Emit(resolve(t, doc))
	second := e.Emit(resolve(t, doc))
	assert.Equal(t, first, second)

	changed := e.Emit(resolve(t, doc+"    # trailing comment\n"))
	assert.Equal(t, first, changed)

	reordered := e.Emit(resolve(t, `
targets:
  app:
    src: [main.cpp]
    dependLibs: [core]
  core:
    type: static_lib
    src: [core.cpp]
`))
	assert.NotEqual(t, first, reordered)
}

func TestEmitter_DependsOnlyOnTargets(t *testing.T) {
	const targets = `
targets:
  core:
    type: static_lib
    src: [core.cpp]
  app:
    src: [main.cpp]
    dependLibs: [core]
  tool:
    src: [tool.cpp]
`
	e := NewEmitter(Options{ProjectName: "demo"})
	base := e.Emit(resolve(t, "mainTarget: app\n"+targets))

	tests := []struct {
		name string
		doc  string
		same bool
	}{
		{"other main target", "mainTarget: tool\n" + targets, true},
		{"implicit main target", targets, true},
		{"packages declared", "mainTarget: app\n" + targets + "dependPackages:\n  fmt: {}\n", true},
		{"target type changed", strings.Replace(targets, "static_lib", "dynamic_lib", 1), false},
		{"sources changed", strings.Replace(targets, "[main.cpp]", "[main.cpp, util.cpp]", 1), false},
		{"dependLibs changed", strings.Replace(targets, "[core]", "[core, fmt::fmt]", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Emit(resolve(t, tt.doc))
			if tt.same {
				assert.Equal(t, base, got)
			} else {
				assert.NotEqual(t, base, got)
			}
		})
	}

	g := resolve(t, "mainTarget: app\n"+targets)
	g.MainTarget = ""
	g.DependPackages = []manifest.DependencyPackage{{Name: "zlib", Autolink: true}}
	assert.Equal(t, base, e.Emit(g))
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"main.cpp", "main.cpp"},
		{"fmt::fmt", "fmt::fmt"},
		{"", `""`},
		{"a b", `"a b"`},
		{`c:\src`, `"c:\\src"`},
		{"x#y", `"x#y"`},
		{"f(1)", `"f(1)"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteArg(tt.in))
		})
	}
}
