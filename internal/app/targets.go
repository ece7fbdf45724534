package app

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/evp/internal/domain"
	"github.com/quantmind-br/evp/internal/manifest"
	"github.com/quantmind-br/evp/internal/utils"
)

// TargetInfo is one row of the target listing
type TargetInfo struct {
	Name    string
	Type    manifest.TargetType
	Sources int
	Links   []string
	Main    bool
}

// ListTargets returns the declared targets in manifest order
func (p *Project) ListTargets() ([]TargetInfo, error) {
	g, err := p.Graph()
	if err != nil {
		return nil, err
	}

	out := make([]TargetInfo, 0, len(g.Targets))
	for _, t := range g.Targets {
		out = append(out, TargetInfo{
			Name:    t.Name,
			Type:    t.Type,
			Sources: len(t.Sources),
			Links:   t.DependLibs,
			Main:    t.Name == g.MainTarget,
		})
	}
	return out, nil
}

// AddPackage registers an external package in the manifest. It reports
// false when the package was already registered.
func (p *Project) AddPackage(name string) (bool, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return false, domain.NewValidationError("package", fmt.Sprintf("%q is not a valid package name", name))
	}
	return p.mutator().AddPackage(name)
}

// AddTarget declares a new executable target with a scaffold source. It
// reports false when the target was already declared.
func (p *Project) AddTarget(name string) (bool, error) {
	if !utils.IsValidTargetName(name) {
		return false, domain.NewValidationError("target", fmt.Sprintf("%q is not a valid target name", name))
	}
	return p.mutator().AddTarget(name)
}

// RemoveTarget deletes a target from the manifest
func (p *Project) RemoveTarget(name string) (manifest.RemoveResult, error) {
	return p.mutator().RemoveTarget(name)
}

func (p *Project) mutator() *manifest.Mutator {
	return manifest.NewMutator(manifest.MutatorOptions{
		Fs:           p.fs,
		ManifestPath: p.ManifestPath(),
		SourceDir:    p.SourceDir(),
		Logger:       p.logger,
	})
}
