package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/quantmind-br/evp/internal/cache"
	"github.com/quantmind-br/evp/internal/config"
	"github.com/quantmind-br/evp/internal/domain"
	"github.com/quantmind-br/evp/internal/generator"
	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/quantmind-br/evp/internal/state"
	"github.com/quantmind-br/evp/internal/toolchain"
	"github.com/quantmind-br/evp/internal/utils"
	"github.com/spf13/afero"
)

// Builder runs the CMake configure and build steps
type Builder interface {
	Configure(ctx context.Context, buildDir, toolchainFile string, log io.Writer) error
	Build(ctx context.Context, buildDir string, log io.Writer) error
}

// PackageManager installs packages and supplies the CMake toolchain file
// that makes them visible to the build
type PackageManager interface {
	toolchain.PackageManager
	ToolchainFile() (string, error)
}

// Dependencies contains the collaborators a Project drives
type Dependencies struct {
	Fs       afero.Fs
	Logger   *utils.Logger
	CMake    Builder
	Packages PackageManager
	Runner   domain.Runner
	Retrier  *toolchain.Retrier
	// Tools are reported by the doctor command
	Tools []domain.Tool
	// Cache backs the install ledger; when nil and OpenCache is set, a
	// badger cache is opened on first use
	Cache     domain.Cache
	OpenCache bool
}

// ProjectOptions contains options for creating a project
type ProjectOptions struct {
	Config  *config.Config
	Dir     string
	Verbose bool
	// RefreshPackages reinstalls packages the install ledger remembers
	RefreshPackages bool
	// Deps replaces the default collaborators
	Deps     *Dependencies
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Progress io.Writer
}

// Project drives one evp project directory
type Project struct {
	config   *config.Config
	dir      string
	fs       afero.Fs
	logger   *utils.Logger
	loader   *manifest.Loader
	cmake    Builder
	packages PackageManager
	runner   domain.Runner
	retrier  *toolchain.Retrier
	tools    []domain.Tool
	state    *state.Manager
	refresh  bool

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	progress io.Writer

	cacheOnce sync.Once
	cache     domain.Cache
	openCache bool
	ownsCache bool
	ledger    *cache.Ledger
}

// NewProject creates a project rooted at opts.Dir
func NewProject(opts ProjectOptions) (*Project, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	deps := opts.Deps
	if deps == nil {
		deps = DefaultDependencies(cfg, opts.Verbose, opts.Stderr)
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Logger == nil {
		deps.Logger = utils.NewNopLogger()
	}
	if deps.Runner == nil {
		deps.Runner = toolchain.NewExecRunner()
	}
	if deps.Retrier == nil {
		deps.Retrier = toolchain.NewRetrier(toolchain.RetrierOptions{MaxRetries: cfg.Packages.MaxRetries})
	}

	p := &Project{
		config:    cfg,
		dir:       opts.Dir,
		fs:        deps.Fs,
		logger:    deps.Logger,
		loader:    manifest.NewLoader(deps.Fs),
		cmake:     deps.CMake,
		packages:  deps.Packages,
		runner:    deps.Runner,
		retrier:   deps.Retrier,
		tools:     deps.Tools,
		stdin:     opts.Stdin,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		progress:  opts.Progress,
		refresh:   opts.RefreshPackages,
		cache:     deps.Cache,
		openCache: deps.OpenCache,
	}
	p.state = state.NewManager(state.ManagerOptions{
		Fs:      deps.Fs,
		BaseDir: p.BuildDir(),
		Logger:  deps.Logger.WithComponent("state"),
	})
	return p, nil
}

// DefaultDependencies wires the real toolchain from the configuration
func DefaultDependencies(cfg *config.Config, verbose bool, stderr io.Writer) *Dependencies {
	logLevel := "info"
	logFormat := "pretty"
	if cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}
	if verbose {
		logLevel = "debug"
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Verbose: verbose,
		Output:  stderr,
	})

	// package manager output is only shown in verbose mode
	var pmOut io.Writer = io.Discard
	if verbose {
		pmOut = stderr
	}

	runner := toolchain.NewExecRunner()
	cmake := toolchain.NewCMake(toolchain.BinaryOptions{Runner: runner})
	vcpkg := toolchain.NewVcpkg(toolchain.VcpkgOptions{
		Root:          cfg.Tools.VcpkgRoot,
		BinaryOptions: toolchain.BinaryOptions{Runner: runner, Stdout: pmOut, Stderr: pmOut},
	})
	git := toolchain.NewGit(toolchain.BinaryOptions{Runner: runner})

	return &Dependencies{
		Fs:        afero.NewOsFs(),
		Logger:    logger,
		CMake:     cmake,
		Packages:  vcpkg,
		Runner:    runner,
		Tools:     []domain.Tool{git, cmake, vcpkg},
		OpenCache: cfg.Packages.CacheEnabled,
	}
}

// Logger returns the project logger
func (p *Project) Logger() *utils.Logger {
	return p.logger
}

// Paths returns the project locations derived from the configuration
func (p *Project) Paths() config.Paths {
	return p.config.ResolvePaths(p.dir)
}

// ManifestPath returns the manifest location
func (p *Project) ManifestPath() string {
	return p.Paths().Manifest
}

// BuildDir returns the build directory
func (p *Project) BuildDir() string {
	return p.Paths().BuildDir
}

// GeneratorPath returns the generator file location
func (p *Project) GeneratorPath() string {
	return p.Paths().Generator
}

// SourceDir returns the source directory
func (p *Project) SourceDir() string {
	return p.Paths().SourceDir
}

// ProjectName returns the CMake project name: build.project_name, else the
// project directory name
func (p *Project) ProjectName() string {
	if p.config.Build.ProjectName != "" {
		return p.config.Build.ProjectName
	}
	dir, err := filepath.Abs(p.dir)
	if err != nil {
		return generator.DefaultProjectName
	}
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return generator.DefaultProjectName
	}
	return name
}

// LogPath returns the build log location
func (p *Project) LogPath() string {
	return p.Paths().Log
}

// Manifest loads and parses the manifest
func (p *Project) Manifest() (*manifest.Manifest, error) {
	return p.loader.Load(p.ManifestPath())
}

// Graph loads the manifest and resolves its target graph
func (p *Project) Graph() (*manifest.Graph, error) {
	return p.loader.LoadGraph(p.ManifestPath())
}

// Close releases resources held by the project
func (p *Project) Close() error {
	if p.ownsCache && p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

// installLedger returns the ledger, opening the package cache on first use
func (p *Project) installLedger() *cache.Ledger {
	p.cacheOnce.Do(func() {
		if p.cache == nil && p.openCache {
			c, err := cache.NewBadgerCache(cache.Options{
				Directory: utils.ExpandPath(p.config.Packages.CacheDirectory),
			})
			if err != nil {
				p.logger.Warn().Err(err).Msg("Package cache unavailable, every package will be installed")
			} else {
				p.cache = c
				p.ownsCache = true
			}
		}
		if p.cache != nil {
			p.ledger = cache.NewLedger(p.cache, p.config.Packages.CacheTTL)
		}
	})
	return p.ledger
}
