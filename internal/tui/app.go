package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/evp/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateConfirm
	stateSaved
	stateError
)

// Options contains options for the editor
type Options struct {
	Config   *config.Config
	SaveFunc func(*config.Config) error
	// ProjectDir anchors the path preview; empty means the working directory
	ProjectDir string
	Accessible bool
}

// Model is the bubbletea model of the configuration editor. Sections are
// edited on a draft that only replaces the working values once its form
// completes; the loaded values are kept to report what changed.
type Model struct {
	state      state
	loaded     *ConfigValues
	values     *ConfigValues
	draft      *ConfigValues
	form       *huh.Form
	cursor     int
	projectDir string
	err        error
	saveFunc   func(*config.Config) error
	accessible bool
}

// NewModel creates an editor showing opts.Config, or the defaults
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	loaded := FromConfig(cfg)
	values := *loaded

	return Model{
		state:      stateMenu,
		loaded:     loaded,
		values:     &values,
		projectDir: opts.ProjectDir,
		saveFunc:   opts.SaveFunc,
		accessible: opts.Accessible,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Changes lists the edits not yet saved
func (m Model) Changes() []Change {
	return m.values.Changes(m.loaded)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.updateMenu(key)
		case stateConfirm:
			return m.updateConfirm(key)
		case stateSaved, stateError:
			return m, tea.Quit
		case stateForm:
			if key.String() == "esc" {
				return m.closeForm(), nil
			}
		}
	}

	if m.state == stateForm && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		if m.form.State == huh.StateCompleted {
			*m.values = *m.draft
			return m.closeForm(), nil
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if len(m.Changes()) > 0 {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(Sections) {
			m.cursor++
		}
	case "r":
		if m.cursor < len(Sections) {
			Sections[m.cursor].Reset(m.values, m.loaded)
		}
	case "s":
		return m.save()
	case "enter":
		if m.cursor == len(Sections) {
			return m.save()
		}
		return m.openForm(Sections[m.cursor])
	}
	return m, nil
}

func (m Model) openForm(sec Section) (tea.Model, tea.Cmd) {
	draft := *m.values
	m.draft = &draft
	m.form = sec.Form(m.draft)
	if m.accessible {
		m.form = m.form.WithAccessible(true)
	}
	m.state = stateForm
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.form = nil
	m.draft = nil
	m.state = stateMenu
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.save()
	case "n", "N":
		return m, tea.Quit
	case "c", "esc":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err == nil && m.saveFunc != nil {
		err = m.saveFunc(cfg)
	}
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}

	saved := FromConfig(cfg)
	m.loaded = saved
	values := *saved
	m.values = &values
	m.state = stateSaved
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("evp configuration"))
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		b.WriteString(m.renderMenu())
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("↑/↓ navigate • enter edit • r reset section • s save • q quit"))
	case stateForm:
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	case stateConfirm:
		b.WriteString(m.renderConfirm())
	case stateSaved:
		b.WriteString(successStyle.Render("Configuration saved."))
		b.WriteString("\n\nPress any key to exit.")
	case stateError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\nPress any key to exit.")
	}
	return b.String()
}

func (m Model) renderMenu() string {
	var b strings.Builder
	for i, sec := range Sections {
		var suffix string
		if n := len(sec.changes(m.values, m.loaded)); n > 0 {
			suffix = changedStyle.Render(fmt.Sprintf(" (%d changed)", n))
		}
		if i != m.cursor {
			b.WriteString(sectionStyle.Render("  "+sec.Name) + suffix + "\n")
			continue
		}

		b.WriteString(selectedStyle.Render("> "+sec.Name) + suffix)
		b.WriteString(mutedStyle.Render("  " + sec.Description))
		b.WriteString("\n")
		for _, st := range sec.Settings {
			b.WriteString(renderSetting(st, m.values, m.loaded))
		}
	}

	save := "Save configuration"
	if n := len(m.Changes()); n > 0 {
		save += fmt.Sprintf(" (%d unsaved)", n)
	}
	if m.cursor == len(Sections) {
		b.WriteString("\n" + selectedStyle.Render("> "+save) + "\n")
	} else {
		b.WriteString("\n" + sectionStyle.Render("  "+save) + "\n")
	}
	return b.String()
}

func renderSetting(st Setting, values, loaded *ConfigValues) string {
	to := strings.TrimSpace(st.Get(values))
	from := strings.TrimSpace(st.Get(loaded))
	if to == from {
		return mutedStyle.Render(fmt.Sprintf("      %s: %s", st.Label, display(to))) + "\n"
	}
	return changedStyle.Render(fmt.Sprintf("    * %s: %s (was %s)", st.Label, display(to), display(from))) + "\n"
}

// renderPreview shows where the edited settings put the project files
func (m Model) renderPreview() string {
	cfg, err := m.values.ToConfig()
	if err != nil {
		return previewStyle.Render(errorStyle.Render(fmt.Sprintf("Invalid settings: %v", err))) + "\n"
	}

	dir := m.projectDir
	if dir == "" {
		dir = "."
	}
	paths := cfg.ResolvePaths(dir)
	prefix, err := paths.SourcePrefix()
	if err != nil {
		prefix = err.Error()
	}
	project := cfg.Build.ProjectName
	if project == "" {
		project = "(directory name)"
	}

	rows := [][2]string{
		{"Manifest", paths.Manifest},
		{"Generator", paths.Generator},
		{"Build log", paths.Log},
		{"Sources as", prefix},
		{"CMake project", project},
	}
	var b strings.Builder
	b.WriteString("Resolved paths in " + dir + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", r[0], r[1]))
	}
	return previewStyle.Render(strings.TrimSuffix(b.String(), "\n")) + "\n"
}

func (m Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString("Unsaved changes:\n\n")
	for _, c := range m.Changes() {
		b.WriteString(fmt.Sprintf("  %s: %s -> %s\n", c.Label, display(c.From), display(c.To)))
	}
	b.WriteString("\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel")
	return confirmStyle.Render(b.String())
}

func display(v string) string {
	if v == "" {
		return "(empty)"
	}
	return v
}

// Run shows the editor until the user quits
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
