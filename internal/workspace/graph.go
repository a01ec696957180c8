package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Graph is the read-only dependency graph of a project's workspaces.
type Graph struct {
	workspaces []*Workspace
	index      map[Locator]int
	byName     map[string]*Workspace
	edges      map[Locator][]Locator
}

// NewGraph indexes workspaces (kept in the given declaration order) and
// resolves dependency edges: a dependency whose name matches another
// workspace becomes an edge to that workspace.
func NewGraph(workspaces []*Workspace) (*Graph, error) {
	g := &Graph{
		workspaces: workspaces,
		index:      make(map[Locator]int, len(workspaces)),
		byName:     make(map[string]*Workspace, len(workspaces)),
		edges:      make(map[Locator][]Locator, len(workspaces)),
	}
	for i, w := range workspaces {
		if prev, ok := g.byName[w.Name]; ok {
			return nil, fmt.Errorf("duplicate workspace name %q (%s and %s)", w.Name, prev.RelDir, w.RelDir)
		}
		g.byName[w.Name] = w
		g.index[w.Locator] = i
	}
	for _, w := range workspaces {
		var deps []Locator
		for _, name := range w.Manifest.DependencyNames() {
			target, ok := g.byName[name]
			if !ok || target == w {
				continue
			}
			deps = append(deps, target.Locator)
		}
		sort.Slice(deps, func(i, j int) bool { return g.index[deps[i]] < g.index[deps[j]] })
		g.edges[w.Locator] = deps
	}
	return g, nil
}

// Workspaces returns all workspaces in declaration order.
func (g *Graph) Workspaces() []*Workspace { return g.workspaces }

// Get returns the workspace with the given locator.
func (g *Graph) Get(l Locator) (*Workspace, bool) {
	i, ok := g.index[l]
	if !ok {
		return nil, false
	}
	return g.workspaces[i], true
}

// MustGet returns the workspace with the given locator. An unknown locator
// means the graph snapshot is inconsistent, which is a programming error.
func (g *Graph) MustGet(l Locator) *Workspace {
	w, ok := g.Get(l)
	if !ok {
		panic(fmt.Sprintf("workspace: %s is not part of the resolved workspace graph", l))
	}
	return w
}

// ByName returns the workspace with the given package name.
func (g *Graph) ByName(name string) (*Workspace, bool) {
	w, ok := g.byName[name]
	return w, ok
}

// Dependencies returns the locators w depends on, in declaration order.
func (g *Graph) Dependencies(w *Workspace) []Locator {
	return g.edges[w.Locator]
}

// Owner returns the workspace whose directory is the closest ancestor of
// path, or nil when no workspace contains it.
func (g *Graph) Owner(path string) *Workspace {
	var best *Workspace
	for _, w := range g.workspaces {
		if !within(w.Dir, path) {
			continue
		}
		if best == nil || len(w.Dir) > len(best.Dir) {
			best = w
		}
	}
	return best
}

// Impacted returns the workspaces owning at least one of files, in
// declaration order and without duplicates.
func (g *Graph) Impacted(files []string) []*Workspace {
	hit := make(map[Locator]bool)
	for _, f := range files {
		if w := g.Owner(f); w != nil {
			hit[w.Locator] = true
		}
	}
	result := make([]*Workspace, 0, len(hit))
	for _, w := range g.workspaces {
		if hit[w.Locator] {
			result = append(result, w)
		}
	}
	return result
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
