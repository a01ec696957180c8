package git

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotFound is returned by History.ReadFile when the path did not exist at
// the revision.
var ErrNotFound = errors.New("file not found at revision")

// History reads files as they were committed at a single revision.
type History struct {
	rev    string
	commit *object.Commit
}

// OpenHistory opens the repository containing repoDir and resolves rev.
func OpenHistory(repoDir, rev string) (*History, error) {
	repo, err := gogit.PlainOpenWithOptions(repoDir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", repoDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", ShortHash(hash.String()), err)
	}
	return &History{rev: rev, commit: commit}, nil
}

// Rev returns the revision the history was opened at.
func (h *History) Rev() string { return h.rev }

// ReadFile returns the content of relPath (relative to the repository root)
// at the history's revision.
func (h *History) ReadFile(relPath string) ([]byte, error) {
	p := path.Clean(filepath.ToSlash(relPath))
	f, err := h.commit.File(p)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s at %s: %w", p, ShortHash(h.rev), ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s at %s: %w", p, ShortHash(h.rev), err)
	}
	content, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", p, ShortHash(h.rev), err)
	}
	return []byte(content), nil
}
