package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/quantmind-br/evp/internal/domain"
	"github.com/quantmind-br/evp/internal/generator"
	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/quantmind-br/evp/internal/state"
	"github.com/quantmind-br/evp/internal/toolchain"
	"github.com/quantmind-br/evp/internal/utils"
)

// BuildResult describes one build
type BuildResult struct {
	Generator  generator.Result
	Configured bool
	Installed  []string
	Skipped    []string
	Duration   time.Duration
}

// Generate resolves the manifest and writes the generator file. The file is
// left untouched when its content would not change.
func (p *Project) Generate() (generator.Result, error) {
	g, err := p.Graph()
	if err != nil {
		return generator.Result{}, err
	}
	return p.generate(g)
}

func (p *Project) generate(g *manifest.Graph) (generator.Result, error) {
	e, err := p.emitter()
	if err != nil {
		return generator.Result{}, err
	}
	content := e.Emit(g)

	w := generator.NewWriter(generator.WriterOptions{
		Fs:       p.fs,
		BuildDir: p.BuildDir(),
		FileName: p.config.Build.GeneratorFile,
		Logger:   p.logger.WithComponent("generator"),
	})
	res, err := w.Write(content)
	if err != nil {
		return res, fmt.Errorf("failed to write %s: %w", w.Path(), err)
	}
	return res, nil
}

// emitter configures emission from the project settings only, so the
// generator file changes only when targets do.
func (p *Project) emitter() (*generator.Emitter, error) {
	prefix, err := p.Paths().SourcePrefix()
	if err != nil {
		return nil, err
	}
	return generator.NewEmitter(generator.Options{
		SourcePrefix: prefix,
		ProjectName:  p.ProjectName(),
		CMakeMinimum: p.config.Build.CMakeMinimum,
	}), nil
}

// Build installs the declared packages, regenerates the generator file,
// re-runs the CMake configure step when the generator file or toolchain
// changed, and builds. Tool output is appended to the build log.
func (p *Project) Build(ctx context.Context) (BuildResult, error) {
	start := time.Now()
	var res BuildResult

	g, err := p.Graph()
	if err != nil {
		return res, err
	}

	p.logger.Info().
		Int("targets", len(g.Targets)).
		Int("packages", len(g.DependPackages)).
		Msg("Starting build")

	if len(g.DependPackages) > 0 {
		installer := toolchain.NewInstaller(toolchain.InstallerOptions{
			PackageManager: p.packages,
			Ledger:         p.installLedger(),
			Retrier:        p.retrier,
			Logger:         p.logger,
			Progress:       p.progress,
			Refresh:        p.refresh,
		})
		report, err := installer.InstallAll(ctx, g.DependPackages)
		res.Installed, res.Skipped = report.Installed, report.Skipped
		if err != nil {
			return res, err
		}
	}

	toolchainFile, err := p.packages.ToolchainFile()
	if err != nil {
		if len(g.DependPackages) > 0 {
			return res, err
		}
		p.logger.Debug().Err(err).Msg("Configuring without a package toolchain file")
		toolchainFile = ""
	}

	res.Generator, err = p.generate(g)
	if err != nil {
		return res, err
	}

	if err := p.state.Load(ctx); err != nil && !isStateMiss(err) {
		return res, err
	}

	if err := p.fs.MkdirAll(p.BuildDir(), 0755); err != nil {
		return res, err
	}
	logFile, err := p.fs.OpenFile(p.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return res, fmt.Errorf("failed to open build log: %w", err)
	}
	defer logFile.Close()

	if res.Generator.Changed || p.state.NeedsConfigure(res.Generator.Hash, toolchainFile) {
		p.logger.WithTool("cmake").Debug().Str("dir", p.BuildDir()).Msg("Configuring")
		if err := p.cmake.Configure(ctx, p.BuildDir(), toolchainFile, logFile); err != nil {
			p.state.Invalidate()
			p.saveState(ctx)
			return res, fmt.Errorf("cmake configure failed (see %s): %w", p.LogPath(), err)
		}
		p.state.MarkConfigured(res.Generator.Path, res.Generator.Hash, toolchainFile)
		res.Configured = true
	} else {
		p.logger.Debug().Msg("Generator file unchanged, skipping configure")
	}

	if p.progress != nil {
		bar := utils.NewProgressBarTo(p.progress, -1, utils.DescBuilding)
		_ = bar.Add(1)
		defer bar.Finish()
	}
	if err := p.cmake.Build(ctx, p.BuildDir(), logFile); err != nil {
		p.saveState(ctx)
		return res, fmt.Errorf("cmake build failed (see %s): %w", p.LogPath(), err)
	}
	p.state.MarkBuilt()
	p.saveState(ctx)

	res.Duration = time.Since(start)
	p.logger.Info().
		Dur("duration", res.Duration).
		Bool("configured", res.Configured).
		Msg("Build completed")
	return res, nil
}

// Run builds the project and executes the main target with args, returning
// the program's exit code.
func (p *Project) Run(ctx context.Context, args []string) (int, error) {
	g, err := p.Graph()
	if err != nil {
		return -1, err
	}
	main, err := g.Main()
	if err != nil {
		return -1, err
	}

	if _, err := p.Build(ctx); err != nil {
		return -1, err
	}

	bin, err := p.BinaryPath(main.Name)
	if err != nil {
		return -1, err
	}

	p.logger.WithTarget(main.Name).Info().Msg("Running main target")
	return p.runner.Run(ctx, domain.Command{
		Name:   bin,
		Args:   args,
		Stdin:  p.stdin,
		Stdout: p.stdout,
		Stderr: p.stderr,
	})
}

// BinaryPath locates the built executable of target. Multi-config
// generators place it under Debug/.
func (p *Project) BinaryPath(target string) (string, error) {
	name := target
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	candidates := []string{
		filepath.Join(p.BuildDir(), "Debug", name),
		filepath.Join(p.BuildDir(), name),
	}
	for _, c := range candidates {
		info, err := p.fs.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, target)
}

func (p *Project) saveState(ctx context.Context) {
	if err := p.state.Save(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to save build state")
	}
}

func isStateMiss(err error) bool {
	return errors.Is(err, state.ErrStateNotFound) ||
		errors.Is(err, state.ErrStateCorrupted) ||
		errors.Is(err, state.ErrVersionMismatch)
}
