package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/quantmind-br/evp/internal/app"
	"github.com/quantmind-br/evp/internal/cache"
	"github.com/quantmind-br/evp/internal/config"
	"github.com/quantmind-br/evp/internal/generator"
	"github.com/quantmind-br/evp/internal/git"
	"github.com/quantmind-br/evp/internal/scaffold"
	"github.com/quantmind-br/evp/internal/tui"
	"github.com/quantmind-br/evp/internal/utils"
	"github.com/quantmind-br/evp/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	cfgFile    string
	verbose    bool
	projectDir string

	// Dependencies for testing
	projectDeps func(cfg *config.Config) *app.Dependencies
	gitClient   git.Client = git.NewClient()
	runEditor   = tui.Run

	openPackageCache = func(dir string) (*cache.BadgerCache, error) {
		return cache.NewBadgerCache(cache.Options{Directory: dir})
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "evp",
	Short: "Build C++ projects from a declarative manifest",
	Long: `evp reads the targets and packages declared in evp.yaml, generates a
CMakeLists.txt for them and drives vcpkg and CMake to build the project.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.evp/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("manifest", config.DefaultManifestFile, "Manifest file name")
	rootCmd.PersistentFlags().String("build-dir", config.DefaultBuildDir, "Build directory")
	rootCmd.PersistentFlags().String("vcpkg-root", "", "vcpkg root (default is $VCPKG_ROOT)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Reinstall packages without consulting the install cache")

	_ = viper.BindPFlag("manifest.file", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("build.directory", rootCmd.PersistentFlags().Lookup("build-dir"))
	_ = viper.BindPFlag("tools.vcpkg_root", rootCmd.PersistentFlags().Lookup("vcpkg-root"))

	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the manifest changes")
	configCmd.Flags().Bool("accessible", false, "Use screen-reader friendly forms")
	buildCmd.Flags().Bool("refresh", false, "Reinstall packages the install cache remembers")
	runCmd.Flags().Bool("refresh", false, "Reinstall packages the install cache remembers")

	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	targetCmd.AddCommand(targetAddCmd)
	targetCmd.AddCommand(targetListCmd)
	targetCmd.AddCommand(targetRemoveCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Packages.CacheEnabled = false
	}
	return cfg, nil
}

func openProject(cmd *cobra.Command) (*app.Project, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	opts := app.ProjectOptions{
		Config:          cfg,
		Dir:             projectDir,
		Verbose:         verbose,
		RefreshPackages: refresh,
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
		Progress:        cmd.ErrOrStderr(),
	}
	if projectDeps != nil {
		opts.Deps = projectDeps(cfg)
	}
	return app.NewProject(opts)
}

// signalContext cancels on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Initialize a project",
	Long:  "Creates directory <name> with a manifest, a hello-world source and a git repository.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg, cmd.ErrOrStderr())

		s := scaffold.New(scaffold.Options{
			Git:          gitClient,
			Logger:       logger,
			Version:      version.Short(),
			ManifestFile: cfg.Manifest.File,
			SourceDir:    cfg.Build.SourceDir,
		})
		res, err := s.Init(projectDir, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s in %s\n", args[0], res.Dir)
		if !res.GitInitialized {
			fmt.Fprintln(cmd.OutOrStdout(), "  (git repository not initialized)")
		}
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		res, err := p.Build(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Build finished in %s\n", res.Duration.Round(time.Millisecond))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Build project and run the main target",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		code, err := p.Run(ctx, args)
		if err != nil {
			return err
		}
		if code != 0 {
			return &exitError{code: code}
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the CMake generator file without building",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		out := cmd.OutOrStdout()
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return p.Watch(ctx, func(res generator.Result, err error) {
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
					return
				}
				printGenerated(out, res)
			})
		}

		res, err := p.Generate()
		if err != nil {
			return err
		}
		printGenerated(out, res)
		return nil
	},
}

func printGenerated(w io.Writer, res generator.Result) {
	if res.Changed {
		fmt.Fprintf(w, "Wrote %s\n", res.Path)
		return
	}
	fmt.Fprintf(w, "%s is up to date\n", res.Path)
}

var addCmd = &cobra.Command{
	Use:   "add <package>",
	Short: "Add package dependency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		added, err := p.AddPackage(args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added package %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Package %s is already registered\n", args[0])
		}
		return nil
	},
}

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Edit target config",
}

var targetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add new executable target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		added, err := p.AddTarget(args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added target %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Target %s already exists\n", args[0])
		}
		return nil
	},
}

var targetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		targets, err := p.ListTargets()
		if err != nil {
			return err
		}
		renderTargets(cmd.OutOrStdout(), targets)
		return nil
	},
}

func renderTargets(w io.Writer, targets []app.TargetInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Name", "Type", "Sources", "Links"})
	for _, info := range targets {
		marker := ""
		if info.Main {
			marker = "*"
		}
		t.AppendRow(table.Row{marker, info.Name, info.Type.String(), info.Sources, strings.Join(info.Links, ", ")})
	}
	t.Render()
}

var targetRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove existing target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		res, err := p.RemoveTarget(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !res.Removed {
			fmt.Fprintf(out, "Target %s not found\n", args[0])
			return nil
		}
		fmt.Fprintf(out, "Removed target %s\n", args[0])
		if res.DanglingMain {
			fmt.Fprintf(out, "Warning: %s was the main target, update mainTarget in %s\n", args[0], p.ManifestPath())
		}
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools",
	Long:  "Verifies that git, cmake and vcpkg can be found and reports the vcpkg toolchain file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		out := cmd.OutOrStdout()
		titleCaser := cases.Title(language.English)

		fmt.Fprintln(out, "Checking external tools...")
		allPassed := true
		for _, st := range p.CheckTools() {
			fmt.Fprintf(out, "  %s: ", titleCaser.String(st.Name))
			if st.Available {
				fmt.Fprintf(out, "OK (%s)\n", st.Path)
			} else {
				fmt.Fprintln(out, "NOT FOUND")
				allPassed = false
			}
		}

		fmt.Fprint(out, "  Toolchain file: ")
		if path, err := p.ToolchainFile(); err != nil {
			fmt.Fprintf(out, "WARN (%v)\n", err)
		} else {
			fmt.Fprintf(out, "OK (%s)\n", path)
		}

		fmt.Fprint(out, "  Manifest: ")
		if _, err := p.Graph(); err != nil {
			fmt.Fprintf(out, "WARN (%v)\n", err)
		} else {
			fmt.Fprintf(out, "OK (%s)\n", p.ManifestPath())
		}

		fmt.Fprint(out, "  Generator file: ")
		if _, err := os.Stat(p.GeneratorPath()); err != nil {
			fmt.Fprintf(out, "MISSING (%s, run evp generate)\n", p.GeneratorPath())
		} else {
			fmt.Fprintf(out, "OK (%s)\n", p.GeneratorPath())
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All tools found!")
		} else {
			fmt.Fprintln(out, "Some tools are missing. Install them or add them to PATH.")
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the evp configuration interactively",
	Long:  "Opens a terminal editor for ~/.evp/config.yaml (or the file given with --config).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.ConfigFilePath()
		}
		accessible, _ := cmd.Flags().GetBool("accessible")

		return runEditor(tui.Options{
			Config:     cfg,
			ProjectDir: projectDir,
			Accessible: accessible,
			SaveFunc: func(c *config.Config) error {
				return config.Save(c, path)
			},
		})
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the package install cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the install cache location and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir := utils.ExpandPath(cfg.Packages.CacheDirectory)
		c, err := openPackageCache(dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer c.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Directory: %s\n", dir)
		fmt.Fprintf(out, "Enabled:   %t\n", cfg.Packages.CacheEnabled)
		fmt.Fprintf(out, "TTL:       %s\n", cfg.Packages.CacheTTL)
		fmt.Fprintf(out, "Entries:   %d\n", c.Size())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recorded package install",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := openPackageCache(utils.ExpandPath(cfg.Packages.CacheDirectory))
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer c.Close()

		n := c.Size()
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached installs\n", n)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

func newLogger(cfg *config.Config, w io.Writer) *utils.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return utils.NewLogger(utils.LoggerOptions{
		Level:   level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		Output:  w,
	})
}

// exitError carries the main target's exit code out of run
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("main target exited with status %d", e.code)
}

// exitCode maps an error returned by rootCmd to the process exit status
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
