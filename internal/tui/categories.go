package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// Setting is one editable value of a section
type Setting struct {
	Label string
	Get   func(*ConfigValues) string

	// assign copies the setting from src to dst
	assign func(dst, src *ConfigValues)
}

// Section groups the settings of one block of the config file
type Section struct {
	ID          string
	Name        string
	Description string
	Settings    []Setting
	form        func(*ConfigValues) *huh.Form
}

func text(label string, field func(*ConfigValues) *string) Setting {
	return Setting{
		Label:  label,
		Get:    func(v *ConfigValues) string { return *field(v) },
		assign: func(dst, src *ConfigValues) { *field(dst) = *field(src) },
	}
}

// Sections lists the editor menu in config file order
var Sections = []Section{
	{
		ID:          "manifest",
		Name:        "Manifest",
		Description: "Manifest file name",
		form:        manifestForm,
		Settings: []Setting{
			text("Manifest file", func(v *ConfigValues) *string { return &v.ManifestFile }),
		},
	},
	{
		ID:          "build",
		Name:        "Build",
		Description: "Build directory, generator file and CMake project",
		form:        buildForm,
		Settings: []Setting{
			text("Build directory", func(v *ConfigValues) *string { return &v.BuildDirectory }),
			text("Generator file", func(v *ConfigValues) *string { return &v.GeneratorFile }),
			text("Source directory", func(v *ConfigValues) *string { return &v.SourceDir }),
			text("Log file", func(v *ConfigValues) *string { return &v.LogFile }),
			text("Minimum CMake", func(v *ConfigValues) *string { return &v.CMakeMinimum }),
			text("Project name", func(v *ConfigValues) *string { return &v.ProjectName }),
		},
	},
	{
		ID:          "packages",
		Name:        "Packages",
		Description: "Install cache and retry settings",
		form:        packagesForm,
		Settings: []Setting{
			{
				Label:  "Install cache",
				Get:    func(v *ConfigValues) string { return strconv.FormatBool(v.CacheEnabled) },
				assign: func(dst, src *ConfigValues) { dst.CacheEnabled = src.CacheEnabled },
			},
			text("Cache TTL", func(v *ConfigValues) *string { return &v.CacheTTL }),
			text("Cache directory", func(v *ConfigValues) *string { return &v.CacheDirectory }),
			text("Max retries", func(v *ConfigValues) *string { return &v.MaxRetries }),
		},
	},
	{
		ID:          "tools",
		Name:        "Tools",
		Description: "Location of the vcpkg checkout",
		form:        toolsForm,
		Settings: []Setting{
			text("vcpkg root", func(v *ConfigValues) *string { return &v.VcpkgRoot }),
		},
	},
	{
		ID:          "logging",
		Name:        "Logging",
		Description: "Log level and format",
		form:        loggingForm,
		Settings: []Setting{
			text("Level", func(v *ConfigValues) *string { return &v.LogLevel }),
			text("Format", func(v *ConfigValues) *string { return &v.LogFormat }),
		},
	},
}

// Form returns the huh form editing the section's settings in values
func (s Section) Form(values *ConfigValues) *huh.Form {
	return s.form(values).WithTheme(formTheme())
}

// Reset restores the section's settings in dst from src
func (s Section) Reset(dst, src *ConfigValues) {
	for _, st := range s.Settings {
		st.assign(dst, src)
	}
}
