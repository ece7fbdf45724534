// Package manifest provides the data model, parser, resolver and in-place
// editor for evp project manifests. A manifest declares the build targets of
// a C++ project and the external packages it depends on.
//
// # Manifest Format
//
//	version: 0.1.0
//	mainTarget: app
//	targets:
//	  core:
//	    type: static_lib
//	    src: [core/a.cpp, core/b.cpp]
//	  app:
//	    src: [main.cpp]
//	    dependLibs: [core, fmt::fmt]
//	dependPackages:
//	  fmt: {}
//	  zlib:
//	    autolink: false
//
// Older manifests spell the main-target key main_target; both layouts are
// accepted by Parse. Without either key the first executable target in
// document order is the main target.
//
// # Link Dependencies
//
// A dependLibs entry naming a declared target is an internal link; any other
// name is passed to CMake as an external library. Names that look like a
// misspelled target are rejected: a case-insensitive match, or a name one
// edit away from a target of at least four characters. With a target glfw,
// the library glfw3 is therefore rejected unless glfw3 is also declared under
// dependPackages.
//
// # Usage
//
//	loader := manifest.NewLoader(nil)
//	graph, err := loader.LoadGraph("evp.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Validation failures are returned as *SchemaError (field path plus cause)
// or *GraphError (target plus offending dependency). Both unwrap to the
// sentinel errors of this package:
//   - ErrMissingOrWrongType: required field absent or of the wrong shape
//   - ErrInvalidTargetType: unknown target type literal
//   - ErrInvalidMainTarget: main target missing or not an executable
//   - ErrEmptySources: target without sources
//   - ErrDuplicateTarget: target name declared twice
//   - ErrUnknownDependency: dependLibs entry that looks like a misspelled target
package manifest
