package release

import "github.com/fbkclanna/relgate/internal/workspace"

// Pair says Dependent needs a decision because Dependency is being released.
type Pair struct {
	Dependent  *workspace.Workspace
	Dependency *workspace.Workspace
}

// Propagate returns a pair for every public, versioned workspace of graph
// that depends directly on a decided workspace and has no decision of its
// own. Workspaces listed in exclude are reported even when they already
// have a decision. Pairs follow graph declaration order.
//
// Only direct dependents are returned; callers run Propagate again once
// those dependents are decided.
func Propagate(decided, declined []*workspace.Workspace, graph *workspace.Graph, exclude map[workspace.Locator]bool) []Pair {
	decidedSet := make(map[workspace.Locator]*workspace.Workspace, len(decided))
	for _, w := range decided {
		decidedSet[w.Locator] = w
	}
	declinedSet := make(map[workspace.Locator]*workspace.Workspace, len(declined))
	for _, w := range declined {
		declinedSet[w.Locator] = w
	}

	var pairs []Pair
	for _, w := range graph.Workspaces() {
		if w.Private() || !w.Manifest.IsVersioned() {
			continue
		}
		_, isDecided := decidedSet[w.Locator]
		_, isDeclined := declinedSet[w.Locator]
		if (isDecided || isDeclined) && !exclude[w.Locator] {
			continue
		}
		for _, l := range graph.Dependencies(w) {
			dep := graph.MustGet(l)
			if _, ok := decidedSet[dep.Locator]; ok {
				pairs = append(pairs, Pair{Dependent: w, Dependency: dep})
			}
		}
	}
	return pairs
}

// Dependent groups the pairs of one dependent workspace.
type Dependent struct {
	Workspace    *workspace.Workspace
	Dependencies []*workspace.Workspace
}

// GroupDependents merges pairs by dependent, in order of first appearance.
func GroupDependents(pairs []Pair) []Dependent {
	var result []Dependent
	index := make(map[workspace.Locator]int)
	for _, p := range pairs {
		i, ok := index[p.Dependent.Locator]
		if !ok {
			i = len(result)
			index[p.Dependent.Locator] = i
			result = append(result, Dependent{Workspace: p.Dependent})
		}
		result[i].Dependencies = append(result[i].Dependencies, p.Dependency)
	}
	return result
}
