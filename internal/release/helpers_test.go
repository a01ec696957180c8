package release

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbkclanna/relgate/internal/manifest"
	"github.com/fbkclanna/relgate/internal/workspace"
)

type option func(*manifest.Package)

func dependsOn(names ...string) option {
	return func(p *manifest.Package) {
		if p.Dependencies == nil {
			p.Dependencies = map[string]string{}
		}
		for _, n := range names {
			p.Dependencies[n] = "workspace:^"
		}
	}
}

func private() option {
	return func(p *manifest.Package) { p.Private = true }
}

func decided(nonce, target string) option {
	return func(p *manifest.Package) { p.Release = &manifest.Release{Nonce: nonce, Version: target} }
}

func newWorkspace(name, version string, opts ...option) *workspace.Workspace {
	pkg := &manifest.Package{Name: name, Version: version}
	for _, o := range opts {
		o(pkg)
	}
	rel := "packages/" + name
	return &workspace.Workspace{
		Locator:  workspace.NewLocator(name, rel),
		Name:     name,
		Dir:      "/repo/" + rel,
		RelDir:   rel,
		Manifest: pkg,
	}
}

func newGraph(t *testing.T, ws ...*workspace.Workspace) *workspace.Graph {
	t.Helper()
	g, err := workspace.NewGraph(ws)
	require.NoError(t, err)
	return g
}

// fakeBaseline maps workspace names to their baseline manifests; missing
// names did not exist at the baseline.
type fakeBaseline map[string]*manifest.Package

func (f fakeBaseline) Manifest(w *workspace.Workspace) (*manifest.Package, error) {
	return f[w.Name], nil
}

func names(ws []*workspace.Workspace) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Name)
	}
	return out
}

func pairNames(pairs []Pair) [][2]string {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]string{p.Dependent.Name, p.Dependency.Name})
	}
	return out
}
