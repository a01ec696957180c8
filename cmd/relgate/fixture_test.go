package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/manifest"
	"github.com/fbkclanna/relgate/internal/testutil"
)

// setupProject creates a project on main with the chain a <- b <- c and a
// private d depending on a, then checks out a feature branch.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := testutil.CreateRepo(t, map[string]string{
		"workspace.yaml":          "version: 1\nname: acme\nworkspaces:\n  - packages/*\nbase_branches:\n  - main\nchangeset_ignore:\n  - \"*.md\"\n",
		"packages/a/package.yaml": "name: a\nversion: 1.0.0\n",
		"packages/a/index.txt":    "a\n",
		"packages/b/package.yaml": "name: b\nversion: 2.0.0\ndependencies:\n  a: \"workspace:^\"\n",
		"packages/c/package.yaml": "name: c\nversion: 3.0.0-beta.1\ndependencies:\n  b: \"workspace:^\"\n",
		"packages/d/package.yaml": "name: d\nversion: 0.1.0\nprivate: true\ndependencies:\n  a: \"workspace:^\"\n",
	})
	if err := git.CreateBranch(dir, "feature"); err != nil {
		t.Fatal(err)
	}
	return dir
}

// commitChange writes files on the feature branch and commits them.
func commitChange(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	testutil.WriteFiles(t, dir, files)
	testutil.CommitAll(t, dir, "change")
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

func loadPackage(t *testing.T, dir, name string) *manifest.Package {
	t.Helper()
	pkg, err := manifest.LoadPackage(filepath.Join(dir, "packages", name, manifest.PackageFile))
	if err != nil {
		t.Fatal(err)
	}
	return pkg
}
