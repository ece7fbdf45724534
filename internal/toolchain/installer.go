package toolchain

import (
	"context"
	"io"

	"github.com/quantmind-br/evp/internal/cache"
	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/quantmind-br/evp/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// PackageManager installs external packages
type PackageManager interface {
	Name() string
	Root() string
	Install(ctx context.Context, pkg string) error
}

// Ensure Vcpkg implements PackageManager
var _ PackageManager = (*Vcpkg)(nil)

// Installer installs the packages of a manifest one at a time, skipping those
// the ledger remembers
type Installer struct {
	pm       PackageManager
	ledger   *cache.Ledger
	retrier  *Retrier
	logger   *utils.Logger
	progress io.Writer
	refresh  bool
}

// InstallerOptions contains options for the installer
type InstallerOptions struct {
	PackageManager PackageManager
	// Ledger may be nil, in which case every package is installed
	Ledger  *cache.Ledger
	Retrier *Retrier
	Logger  *utils.Logger
	// Progress receives a progress bar when set
	Progress io.Writer
	// Refresh drops ledger records and reinstalls every package
	Refresh bool
}

// InstallReport lists what InstallAll did
type InstallReport struct {
	Installed []string
	Skipped   []string
}

// NewInstaller creates an installer
func NewInstaller(opts InstallerOptions) *Installer {
	if opts.Retrier == nil {
		opts.Retrier = NewRetrier(DefaultRetrierOptions())
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	opts.Logger = opts.Logger.WithComponent("installer")
	return &Installer{
		pm:       opts.PackageManager,
		ledger:   opts.Ledger,
		retrier:  opts.Retrier,
		logger:   opts.Logger,
		progress: opts.Progress,
		refresh:  opts.Refresh,
	}
}

// InstallAll installs pkgs in declaration order and stops at the first
// package that fails after retries.
func (i *Installer) InstallAll(ctx context.Context, pkgs []manifest.DependencyPackage) (InstallReport, error) {
	var report InstallReport
	if len(pkgs) == 0 {
		return report, nil
	}

	var bar *progressbar.ProgressBar
	if i.progress != nil {
		bar = utils.NewProgressBarTo(i.progress, len(pkgs), utils.DescInstalling)
		defer func() { _ = bar.Finish() }()
	}

	root := i.pm.Root()
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if i.refresh {
			if err := i.ledger.Forget(ctx, root, pkg.Name); err != nil {
				i.logger.Warn().Err(err).Str("package", pkg.Name).Msg("Failed to drop install record")
			}
		} else if i.ledger.Installed(ctx, root, pkg.Name) {
			i.logger.Debug().Str("package", pkg.Name).Msg("Package already installed, skipping")
			report.Skipped = append(report.Skipped, pkg.Name)
			advance(bar)
			continue
		}

		i.logger.WithTool(i.pm.Name()).Debug().Str("package", pkg.Name).Msg("Installing package")
		if err := i.retrier.Retry(ctx, func() error {
			return i.pm.Install(ctx, pkg.Name)
		}); err != nil {
			return report, err
		}

		if err := i.ledger.Record(ctx, root, pkg.Name); err != nil {
			i.logger.Warn().Err(err).Str("package", pkg.Name).Msg("Failed to record install")
		}
		report.Installed = append(report.Installed, pkg.Name)
		advance(bar)
	}

	return report, nil
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
