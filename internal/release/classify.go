package release

import (
	"github.com/fbkclanna/relgate/internal/manifest"
	"github.com/fbkclanna/relgate/internal/workspace"
)

// Baseline provides workspace manifests as they were at the baseline
// revision. A nil manifest means the workspace did not exist there.
type Baseline interface {
	Manifest(w *workspace.Workspace) (*manifest.Package, error)
}

// Status partitions the changed, versioned workspaces. Each slice keeps the
// order of the workspaces passed to Classify.
type Status struct {
	Decided   []*workspace.Workspace
	Undecided []*workspace.Workspace
	Declined  []*workspace.Workspace
}

// Outcome is the classification of a single workspace.
type Outcome string

// Outcomes returned by Classify.
const (
	OutcomeDecided   Outcome = "decided"
	OutcomeUndecided Outcome = "undecided"
	OutcomeDeclined  Outcome = "declined"
)

// Classify sorts the versioned workspaces into decided, undecided and
// declined. Workspaces without a version are skipped.
func Classify(workspaces []*workspace.Workspace, baseline Baseline) (Status, error) {
	var st Status
	for _, w := range workspaces {
		if !w.Manifest.IsVersioned() {
			continue
		}
		previous, err := baseline.Manifest(w)
		if err != nil {
			return Status{}, err
		}
		switch classify(w.Manifest, previous) {
		case OutcomeUndecided:
			st.Undecided = append(st.Undecided, w)
		case OutcomeDecided:
			st.Decided = append(st.Decided, w)
		case OutcomeDeclined:
			st.Declined = append(st.Declined, w)
		}
	}
	return st, nil
}

func classify(current, previous *manifest.Package) Outcome {
	if current.Nonce() == previous.Nonce() {
		return OutcomeUndecided
	}
	if target := current.TargetVersion(); target != "" && target != current.Version {
		return OutcomeDecided
	}
	return OutcomeDeclined
}

// Outcome returns the bucket w was placed in, or "" when w is not part of st.
func (st Status) Outcome(w *workspace.Workspace) Outcome {
	switch {
	case contains(st.Decided, w):
		return OutcomeDecided
	case contains(st.Undecided, w):
		return OutcomeUndecided
	case contains(st.Declined, w):
		return OutcomeDeclined
	}
	return ""
}

// Empty reports whether no workspace was classified.
func (st Status) Empty() bool {
	return len(st.Decided)+len(st.Undecided)+len(st.Declined) == 0
}

func contains(list []*workspace.Workspace, w *workspace.Workspace) bool {
	for _, x := range list {
		if x.Locator == w.Locator {
			return true
		}
	}
	return false
}
