package manifest

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// StarterSource is the hello-world file written for new targets and projects
const StarterSource = `#include <iostream>

int main() {
  std::cout << "Hello World!" << std::endl;
  return 0;
}
`

// ScaffoldDir is the directory, relative to the source root, holding
// scaffolds created by AddTarget
const ScaffoldDir = "bin"

// Mutator applies incremental edits to the on-disk manifest. It edits the raw
// document and does not re-run Parse, Resolve or the emitter.
type Mutator struct {
	fs        afero.Fs
	path      string
	sourceDir string
	logger    *utils.Logger
}

// MutatorOptions contains options for the mutator
type MutatorOptions struct {
	Fs           afero.Fs
	ManifestPath string
	SourceDir    string
	Logger       *utils.Logger
}

// RemoveResult describes the outcome of RemoveTarget
type RemoveResult struct {
	Removed bool
	// DanglingMain is set when the removed target was the explicit main
	// target; the main-target key is left as is.
	DanglingMain bool
}

// NewMutator creates a mutator
func NewMutator(opts MutatorOptions) *Mutator {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "src"
	}
	return &Mutator{
		fs:        opts.Fs,
		path:      opts.ManifestPath,
		sourceDir: opts.SourceDir,
		logger:    opts.Logger,
	}
}

// AddPackage registers an external package. It returns false without
// touching the file when the package is already registered.
func (m *Mutator) AddPackage(name string) (bool, error) {
	doc, err := m.read()
	if err != nil {
		return false, err
	}

	pkgs, ok := doc.section(KeyDependPackages)
	if !ok {
		return false, schemaErr(KeyDependPackages, ErrMissingOrWrongType)
	}
	if hasKey(pkgs, name) {
		m.debug("package already registered", name)
		return false, nil
	}

	setKey(pkgs, name, emptyFlowMapping())
	if err := m.write(doc); err != nil {
		return false, err
	}
	m.debug("package registered", name)
	return true, nil
}

// AddTarget declares a new executable target backed by a scaffold source at
// <src>/bin/<name>.cpp. An existing scaffold file is never overwritten. It
// returns false when the target is already declared.
func (m *Mutator) AddTarget(name string) (bool, error) {
	if name == "" {
		return false, schemaErr(KeyTargets, fmt.Errorf("%w: target name must be a non-empty string", ErrMissingOrWrongType))
	}

	doc, err := m.read()
	if err != nil {
		return false, err
	}

	targets, ok := doc.section(KeyTargets)
	if !ok {
		return false, schemaErr(KeyTargets, ErrMissingOrWrongType)
	}
	if hasKey(targets, name) {
		m.debug("target already declared", name)
		return false, nil
	}

	relSource := path.Join(ScaffoldDir, name+".cpp")
	if err := m.ensureScaffold(relSource); err != nil {
		return false, err
	}

	entry := mappingNode()
	setKey(entry, KeySrc, stringSeq(relSource))
	setKey(targets, name, entry)

	if err := m.write(doc); err != nil {
		return false, err
	}
	m.debug("target added", name)
	return true, nil
}

// RemoveTarget deletes a target entry. Removing an absent target leaves the
// file untouched.
func (m *Mutator) RemoveTarget(name string) (RemoveResult, error) {
	doc, err := m.read()
	if err != nil {
		return RemoveResult{}, err
	}

	root := doc.mapping()
	targets := lookup(root, KeyTargets)
	if targets == nil || targets.Kind != yaml.MappingNode || !deleteKey(targets, name) {
		return RemoveResult{}, nil
	}

	res := RemoveResult{Removed: true, DanglingMain: doc.explicitMainTarget() == name}
	if err := m.write(doc); err != nil {
		return RemoveResult{}, err
	}
	if res.DanglingMain && m.logger != nil {
		m.logger.Warn().Str("target", name).Msg("Removed target was the main target; update mainTarget in the manifest")
	}
	return res, nil
}

func (m *Mutator) ensureScaffold(rel string) error {
	full := filepath.Join(m.sourceDir, filepath.FromSlash(rel))
	if _, err := m.fs.Stat(full); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := m.fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return afero.WriteFile(m.fs, full, []byte(StarterSource), 0644)
}

func (m *Mutator) read() (*Document, error) {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, m.path)
		}
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return ParseDocument(data)
}

func (m *Mutator) write(doc *Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return afero.WriteFile(m.fs, m.path, data, 0644)
}

func (m *Mutator) debug(msg, name string) {
	if m.logger != nil {
		m.logger.Debug().Str("name", name).Msg(msg)
	}
}
