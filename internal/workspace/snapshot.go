package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/manifest"
)

// Snapshot reads workspace manifests as they were committed at a baseline
// revision.
type Snapshot struct {
	repoRoot string
	history  *git.History
}

// OpenSnapshot opens the repository rooted at repoRoot at revision rev.
func OpenSnapshot(repoRoot, rev string) (*Snapshot, error) {
	h, err := git.OpenHistory(repoRoot, rev)
	if err != nil {
		return nil, err
	}
	return &Snapshot{repoRoot: repoRoot, history: h}, nil
}

// Rev returns the baseline revision.
func (s *Snapshot) Rev() string { return s.history.Rev() }

// Manifest returns w's manifest at the baseline, or nil when the manifest
// did not exist at that revision.
func (s *Snapshot) Manifest(w *Workspace) (*manifest.Package, error) {
	rel, err := filepath.Rel(s.repoRoot, w.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", w.ManifestPath(), err)
	}
	data, err := s.history.ReadFile(rel)
	if err != nil {
		if errors.Is(err, git.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	pkg, err := manifest.ParsePackage(data)
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", rel, git.ShortHash(s.Rev()), err)
	}
	return pkg, nil
}
