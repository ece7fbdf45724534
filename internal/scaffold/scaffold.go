// Package scaffold creates new evp projects on disk.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/evp/internal/domain"
	"github.com/quantmind-br/evp/internal/git"
	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/afero"
)

// Files written by Init
const (
	GitignoreFile    = ".gitignore"
	GitignoreContent = "build/\n"
	MainSource       = "main.cpp"
)

// Scaffolder initializes project directories
type Scaffolder struct {
	fs           afero.Fs
	git          git.Client
	logger       *utils.Logger
	version      string
	manifestFile string
	sourceDir    string
}

// Options contains options for the scaffolder
type Options struct {
	Fs afero.Fs
	// Git initializes a repository in the new project; nil skips that step
	Git          git.Client
	Logger       *utils.Logger
	Version      string
	ManifestFile string
	SourceDir    string
}

// Result describes a created project
type Result struct {
	Dir            string
	ManifestPath   string
	GitInitialized bool
}

// New creates a scaffolder
func New(opts Options) *Scaffolder {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	if opts.ManifestFile == "" {
		opts.ManifestFile = "evp.yaml"
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "src"
	}
	return &Scaffolder{
		fs:           opts.Fs,
		git:          opts.Git,
		logger:       opts.Logger,
		version:      opts.Version,
		manifestFile: opts.ManifestFile,
		sourceDir:    opts.SourceDir,
	}
}

// Init creates project name under parent: the project directory, a
// .gitignore, a hello-world main source and a manifest whose main target is
// the project. Existing source files are kept; an existing manifest is
// ErrProjectExists.
func (s *Scaffolder) Init(parent, name string) (Result, error) {
	if !utils.IsValidTargetName(name) {
		return Result{}, domain.NewValidationError("name", fmt.Sprintf("%q is not a valid project name", name))
	}

	dir := filepath.Join(parent, name)
	res := Result{Dir: dir, ManifestPath: filepath.Join(dir, s.manifestFile)}

	exists, err := afero.Exists(s.fs, res.ManifestPath)
	if err != nil {
		return res, err
	}
	if exists {
		return res, fmt.Errorf("%w: %s", domain.ErrProjectExists, res.ManifestPath)
	}

	if err := s.fs.MkdirAll(filepath.Join(dir, s.sourceDir), 0755); err != nil {
		return res, fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := s.writeIfAbsent(filepath.Join(dir, GitignoreFile), []byte(GitignoreContent)); err != nil {
		return res, err
	}
	if err := s.writeIfAbsent(filepath.Join(dir, s.sourceDir, MainSource), []byte(manifest.StarterSource)); err != nil {
		return res, err
	}

	data, err := manifest.NewProjectDocument(name, s.version).Bytes()
	if err != nil {
		return res, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := afero.WriteFile(s.fs, res.ManifestPath, data, 0644); err != nil {
		return res, err
	}

	res.GitInitialized = s.initGit(dir)

	s.logger.Debug().
		Str("dir", dir).
		Bool("git", res.GitInitialized).
		Msg("Project scaffolded")
	return res, nil
}

// initGit creates a repository unless dir already belongs to one. Failures
// are logged and do not fail the scaffold.
func (s *Scaffolder) initGit(dir string) bool {
	if s.git == nil {
		return false
	}
	if s.git.IsRepository(dir) {
		s.logger.Debug().Str("dir", dir).Msg("Inside an existing git repository, skipping init")
		return false
	}
	if _, err := s.git.PlainInit(dir, false); err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to initialize git repository")
		return false
	}
	return true
}

func (s *Scaffolder) writeIfAbsent(path string, data []byte) error {
	if _, err := s.fs.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return afero.WriteFile(s.fs, path, data, 0644)
}
