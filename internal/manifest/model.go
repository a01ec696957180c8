package manifest

// ProjectFile and PackageFile are the manifest file names relgate reads.
const (
	ProjectFile = "workspace.yaml"
	PackageFile = "package.yaml"
)

// DefaultBaseBranches are the merge-base candidates used when the project
// manifest does not list any.
var DefaultBaseBranches = []string{
	"master", "origin/master", "upstream/master",
	"main", "origin/main", "upstream/main",
}

// Project represents the top-level workspace.yaml manifest.
type Project struct {
	Version         int      `yaml:"version"`
	Name            string   `yaml:"name"`
	Workspaces      []string `yaml:"workspaces"`
	BaseBranches    []string `yaml:"base_branches,omitempty"`
	ChangesetIgnore []string `yaml:"changeset_ignore,omitempty"`
}

// EffectiveBaseBranches returns the configured base branches, falling back to
// DefaultBaseBranches.
func (p *Project) EffectiveBaseBranches() []string {
	if len(p.BaseBranches) > 0 {
		return p.BaseBranches
	}
	return DefaultBaseBranches
}

// Package represents a package.yaml manifest of a single workspace.
type Package struct {
	Name            string            `yaml:"name"`
	Version         string            `yaml:"version,omitempty"`
	Private         bool              `yaml:"private,omitempty"`
	Dependencies    map[string]string `yaml:"dependencies,omitempty"`
	DevDependencies map[string]string `yaml:"dev_dependencies,omitempty"`
	Release         *Release          `yaml:"release,omitempty"`

	// Extra keeps keys relgate does not know about so Save round-trips them.
	Extra map[string]any `yaml:",inline"`
}

// Release is the decision record written whenever a release decision is made.
// Nonce changes on every decision; Version is the target version, equal to
// the package version when the bump was declined.
type Release struct {
	Nonce   string `yaml:"nonce"`
	Version string `yaml:"version,omitempty"`
}

// Nonce returns the decision nonce, or "" when no decision was ever recorded.
func (p *Package) Nonce() string {
	if p == nil || p.Release == nil {
		return ""
	}
	return p.Release.Nonce
}

// TargetVersion returns the recorded target version, or "".
func (p *Package) TargetVersion() string {
	if p == nil || p.Release == nil {
		return ""
	}
	return p.Release.Version
}

// IsVersioned reports whether the package takes part in release accounting.
func (p *Package) IsVersioned() bool {
	return p.Version != ""
}

// DependencyNames returns the names of all regular and dev dependencies.
// Order is unspecified.
func (p *Package) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies)+len(p.DevDependencies))
	for n := range p.Dependencies {
		names = append(names, n)
	}
	for n := range p.DevDependencies {
		if _, ok := p.Dependencies[n]; !ok {
			names = append(names, n)
		}
	}
	return names
}
