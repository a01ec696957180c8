package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fbkclanna/relgate/internal/changeset"
	"github.com/fbkclanna/relgate/internal/release"
	"github.com/fbkclanna/relgate/internal/workspace"
)

// evaluation is the state of the gate for the current work tree.
type evaluation struct {
	ctx      *workspace.Context
	cs       *changeset.ChangeSet
	impacted []*workspace.Workspace
	status   release.Status
	pairs    []release.Pair
}

// loadProject finds the project enclosing dir and loads it.
func loadProject(dir string) (*workspace.Context, error) {
	root, err := workspace.FindRoot(dir)
	if err != nil {
		return nil, err
	}
	return workspace.Load(root)
}

// evaluate resolves the change set of the project enclosing dir, classifies
// the impacted workspaces and computes the first hop of propagation. base
// overrides the project's merge-base candidates when non-empty.
func evaluate(dir string, base []string, log *zap.Logger) (*evaluation, error) {
	ctx, err := loadProject(dir)
	if err != nil {
		return nil, err
	}
	log.Debug("project loaded",
		zap.String("root", ctx.Root),
		zap.Int("workspaces", len(ctx.Graph.Workspaces())))

	candidates := ctx.Project.EffectiveBaseBranches()
	if len(base) > 0 {
		candidates = base
	}
	cs, err := changeset.NewResolver(candidates, ctx.Project.ChangesetIgnore, log).Resolve(ctx.Root)
	if err != nil {
		return nil, err
	}

	impacted := ctx.Graph.Impacted(cs.Files)
	snap, err := workspace.OpenSnapshot(cs.Root, cs.Base.Hash)
	if err != nil {
		return nil, fmt.Errorf("opening baseline: %w", err)
	}
	status, err := release.Classify(impacted, snap)
	if err != nil {
		return nil, err
	}
	if status.Empty() {
		log.Debug("no versioned workspace changed", zap.Int("files", len(cs.Files)))
	}
	for _, w := range impacted {
		log.Debug("classified", zap.String("workspace", w.Name), zap.String("outcome", string(status.Outcome(w))))
	}

	return &evaluation{
		ctx:      ctx,
		cs:       cs,
		impacted: impacted,
		status:   status,
		pairs:    release.Propagate(status.Decided, status.Declined, ctx.Graph, nil),
	}, nil
}
