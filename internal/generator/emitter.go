package generator

import (
	"strings"

	"github.com/quantmind-br/evp/internal/manifest"
)

// Defaults for emitted CMake files
const (
	// DefaultSourcePrefix relocates sources from the build directory back to src/
	DefaultSourcePrefix = "../src/"
	DefaultCMakeMinimum = "3.15"
	DefaultProjectName  = "evp_project"
)

// Options contains options for the emitter
type Options struct {
	SourcePrefix string
	ProjectName  string
	CMakeMinimum string
}

// Emitter renders a resolved target graph as CMakeLists.txt text
type Emitter struct {
	opts Options
}

// NewEmitter creates an emitter, filling unset options with defaults
func NewEmitter(opts Options) *Emitter {
	if opts.SourcePrefix == "" {
		opts.SourcePrefix = DefaultSourcePrefix
	}
	if opts.ProjectName == "" {
		opts.ProjectName = DefaultProjectName
	}
	if opts.CMakeMinimum == "" {
		opts.CMakeMinimum = DefaultCMakeMinimum
	}
	return &Emitter{opts: opts}
}

// Emit renders the graph. Output depends only on the emitter options and on
// target order, type, sources and dependLibs; targets are written in
// declaration order and link libraries in their declared order.
func (e *Emitter) Emit(g *manifest.Graph) string {
	var b strings.Builder

	writeCommand(&b, "cmake_minimum_required", "VERSION", e.opts.CMakeMinimum)
	writeCommand(&b, "project", e.opts.ProjectName, "LANGUAGES", "CXX")

	for _, t := range g.Targets {
		b.WriteByte('\n')

		args := []string{t.Name}
		verb := "add_executable"
		switch t.Type {
		case manifest.StaticLib:
			verb = "add_library"
			args = append(args, "STATIC")
		case manifest.DynamicLib:
			verb = "add_library"
			args = append(args, "SHARED")
		}
		for _, src := range t.Sources {
			args = append(args, e.opts.SourcePrefix+src)
		}
		writeCommand(&b, verb, args...)

		if len(t.DependLibs) > 0 {
			link := append([]string{t.Name, "PRIVATE"}, t.DependLibs...)
			writeCommand(&b, "target_link_libraries", link...)
		}
	}

	return b.String()
}

func writeCommand(b *strings.Builder, name string, args ...string) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quoteArg(arg))
	}
	b.WriteString(")\n")
}

// quoteArg wraps arguments CMake would split or interpret in a quoted argument.
func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\r\n()#\"\\;") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(arg) + `"`
}
