// Package changeset computes what changed in a repository since the point
// where the current branch diverged from a trunk branch.
package changeset

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"github.com/fbkclanna/relgate/internal/git"
)

// Base is the revision a change set is compared against.
type Base struct {
	Hash  string
	Ref   string // candidate branch the merge-base was found with
	Title string
}

// ChangeSet is the result of Resolve.
type ChangeSet struct {
	Root  string
	Base  Base
	Files []string // absolute, sorted, de-duplicated
}

// Resolver finds the baseline and the changed files of a work tree.
type Resolver struct {
	// Candidates are tried in order when looking for the merge-base.
	Candidates []string
	// Ignore holds gitignore-style patterns; matching files are dropped.
	Ignore []string

	log *zap.Logger
}

// NewResolver returns a Resolver logging to log (nil disables logging).
func NewResolver(candidates, ignore []string, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{Candidates: candidates, Ignore: ignore, log: log}
}

// Resolve finds the repository containing dir, its baseline and every file
// changed since: tracked modifications plus untracked files that are not
// ignored.
func (r *Resolver) Resolve(dir string) (*ChangeSet, error) {
	root, err := git.Root(dir)
	if err != nil {
		return nil, err
	}

	hash, ref, err := git.MergeBase(root, r.Candidates)
	if err != nil {
		return nil, err
	}
	title, err := git.Subject(root, hash)
	if err != nil {
		return nil, fmt.Errorf("describing baseline %s: %w", git.ShortHash(hash), err)
	}
	r.log.Debug("baseline found",
		zap.String("hash", hash),
		zap.String("ref", ref),
		zap.String("title", title),
	)

	tracked, err := git.DiffNames(root, hash)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	untracked, err := git.Untracked(root)
	if err != nil {
		return nil, fmt.Errorf("listing untracked files: %w", err)
	}

	matcher := newMatcher(r.Ignore)
	seen := make(map[string]bool, len(tracked)+len(untracked))
	var files []string
	for _, rel := range append(tracked, untracked...) {
		if matcher != nil && matcher.Match(segments(rel), false) {
			r.log.Debug("ignoring changed file", zap.String("path", rel))
			continue
		}
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if seen[abs] {
			continue
		}
		seen[abs] = true
		files = append(files, abs)
	}
	sort.Strings(files)

	r.log.Debug("change set resolved",
		zap.Int("tracked", len(tracked)),
		zap.Int("untracked", len(untracked)),
		zap.Int("files", len(files)),
	)

	return &ChangeSet{
		Root:  root,
		Base:  Base{Hash: hash, Ref: ref, Title: title},
		Files: files,
	}, nil
}

// Rel returns f relative to the repository root, slash-separated.
func (cs *ChangeSet) Rel(f string) string {
	rel, err := filepath.Rel(cs.Root, f)
	if err != nil {
		return f
	}
	return filepath.ToSlash(rel)
}

func newMatcher(patterns []string) gitignore.Matcher {
	var ps []gitignore.Pattern
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}
	if len(ps) == 0 {
		return nil
	}
	return gitignore.NewMatcher(ps)
}

func segments(rel string) []string {
	var out []string
	for _, s := range strings.Split(filepath.ToSlash(rel), "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
