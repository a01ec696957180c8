package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbkclanna/relgate/internal/manifest"
)

// Locator identifies a workspace for the whole run: its name plus the
// project-relative directory it was declared at.
type Locator string

// Workspace is one package of the project.
type Workspace struct {
	Locator  Locator
	Name     string
	Dir      string // absolute
	RelDir   string // slash-separated, relative to the project root; "." for the root
	Manifest *manifest.Package
}

// ManifestPath returns the absolute path of the workspace's package.yaml.
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.Dir, manifest.PackageFile)
}

// Version returns the manifest version, "" when the workspace is not versioned.
func (w *Workspace) Version() string { return w.Manifest.Version }

// Private reports whether the workspace is marked private.
func (w *Workspace) Private() bool { return w.Manifest.Private }

// String returns the workspace name.
func (w *Workspace) String() string { return w.Name }

// NewLocator builds the locator of a workspace.
func NewLocator(name, relDir string) Locator {
	return Locator(name + "@workspace:" + relDir)
}

// ErrNoProject is returned by FindRoot when no ancestor holds a project manifest.
var ErrNoProject = errors.New("no " + manifest.ProjectFile + " found in this directory or any parent")

// FindRoot walks up from dir to the nearest directory holding a project
// manifest.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, manifest.ProjectFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// Context holds the resolved paths and loaded configuration for a project.
type Context struct {
	Root         string
	ManifestPath string
	Project      *manifest.Project
	Graph        *Graph
}

// Load resolves project paths, loads workspace.yaml, discovers every
// workspace and builds the dependency graph.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	manifestPath := filepath.Join(root, manifest.ProjectFile)
	project, err := manifest.LoadProject(manifestPath)
	if err != nil {
		return nil, err
	}

	workspaces, err := discover(root, project)
	if err != nil {
		return nil, err
	}
	graph, err := NewGraph(workspaces)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		Project:      project,
		Graph:        graph,
	}, nil
}

// discover returns workspaces in declaration order: the root package first
// (when the root has a package.yaml), then each pattern's matches sorted by path.
func discover(root string, project *manifest.Project) ([]*Workspace, error) {
	var result []*Workspace
	seen := make(map[string]bool)

	add := func(dir string) error {
		if seen[dir] {
			return nil
		}
		path := filepath.Join(dir, manifest.PackageFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		seen[dir] = true
		pkg, err := manifest.LoadPackage(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return fmt.Errorf("resolving workspace path %s: %w", dir, err)
		}
		rel = filepath.ToSlash(rel)
		result = append(result, &Workspace{
			Locator:  NewLocator(pkg.Name, rel),
			Name:     pkg.Name,
			Dir:      dir,
			RelDir:   rel,
			Manifest: pkg,
		})
		return nil
	}

	if err := add(root); err != nil {
		return nil, err
	}
	for _, pattern := range project.Workspaces {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("expanding workspaces pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.IsDir() {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
