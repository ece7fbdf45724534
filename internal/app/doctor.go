package app

// ToolStatus reports whether an external tool can be used
type ToolStatus struct {
	Name      string
	Available bool
	Path      string
	Err       error
}

// CheckTools resolves every configured external tool
func (p *Project) CheckTools() []ToolStatus {
	out := make([]ToolStatus, 0, len(p.tools))
	for _, t := range p.tools {
		st := ToolStatus{Name: t.Name()}
		st.Path, st.Err = t.Path()
		st.Available = st.Err == nil
		out = append(out, st)
	}
	return out
}

// ToolchainFile returns the package toolchain file CMake will be given
func (p *Project) ToolchainFile() (string, error) {
	return p.packages.ToolchainFile()
}
