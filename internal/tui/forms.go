package tui

import (
	"github.com/charmbracelet/huh"
)

func manifestForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("file").
				Title("Manifest File").
				Description("Name of the manifest in the project directory").
				Value(&values.ManifestFile).
				Placeholder("evp.yaml").
				Validate(ValidateFileName),
		),
	)
}

func buildForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("directory").
				Title("Build Directory").
				Description("Where CMake configures and builds, relative to the project").
				Value(&values.BuildDirectory).
				Placeholder("build").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("generator_file").
				Title("Generator File").
				Description("File name of the generated CMake project").
				Value(&values.GeneratorFile).
				Placeholder("CMakeLists.txt").
				Validate(ValidateFileName),

			huh.NewInput().
				Key("source_dir").
				Title("Source Directory").
				Description("Root that target sources are relative to").
				Value(&values.SourceDir).
				Placeholder("src").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("log_file").
				Title("Log File").
				Description("CMake output log inside the build directory").
				Value(&values.LogFile).
				Placeholder("log.txt").
				Validate(ValidateFileName),

			huh.NewInput().
				Key("cmake_minimum").
				Title("Minimum CMake Version").
				Description("Written to cmake_minimum_required").
				Value(&values.CMakeMinimum).
				Placeholder("3.15").
				Validate(ValidateCMakeVersion),

			huh.NewInput().
				Key("project_name").
				Title("Project Name").
				Description("Name given to project(); empty uses the project directory name").
				Value(&values.ProjectName),
		),
	)
}

func packagesForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("cache_enabled").
				Title("Install Cache").
				Description("Skip packages installed recently into the same vcpkg root").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("cache_ttl").
				Title("Cache TTL").
				Description("How long an install is remembered (e.g., 24h, 168h)").
				Value(&values.CacheTTL).
				Placeholder("168h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("cache_directory").
				Title("Cache Directory").
				Description("Where the install cache is stored").
				Value(&values.CacheDirectory).
				Placeholder("~/.evp/cache"),

			huh.NewInput().
				Key("max_retries").
				Title("Max Retries").
				Description("Retries for a failed vcpkg install (0-10)").
				Value(&values.MaxRetries).
				Placeholder("3").
				Validate(ValidateIntRange(0, 10)),
		),
	)
}

func toolsForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("vcpkg_root").
				Title("vcpkg Root").
				Description("vcpkg checkout (leave empty to use $VCPKG_ROOT or PATH)").
				Value(&values.VcpkgRoot).
				Placeholder("/opt/vcpkg"),
		),
	)
}

func loggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	)
}
