package tui

import "strings"

// Change is a setting whose edited value differs from the loaded config
type Change struct {
	Section string
	Label   string
	From    string
	To      string
}

// Changes lists the settings of v that differ from base, in menu order.
// Surrounding whitespace is ignored since it is trimmed on save.
func (v *ConfigValues) Changes(base *ConfigValues) []Change {
	var out []Change
	for _, sec := range Sections {
		out = append(out, sec.changes(v, base)...)
	}
	return out
}

func (s Section) changes(v, base *ConfigValues) []Change {
	var out []Change
	for _, st := range s.Settings {
		from := strings.TrimSpace(st.Get(base))
		to := strings.TrimSpace(st.Get(v))
		if from != to {
			out = append(out, Change{Section: s.ID, Label: st.Label, From: from, To: to})
		}
	}
	return out
}
