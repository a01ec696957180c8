package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/relgate/internal/manifest"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "acme")

	if _, err := execute(t, "--root", dir, "init", "acme", "--workspaces", "packages/*,tools/*", "--base", "trunk"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, err := manifest.LoadProject(filepath.Join(dir, manifest.ProjectFile))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "acme" {
		t.Errorf("name = %q, want acme", p.Name)
	}
	if len(p.Workspaces) != 2 || p.Workspaces[1] != "tools/*" {
		t.Errorf("workspaces = %v", p.Workspaces)
	}
	if got := p.EffectiveBaseBranches(); len(got) != 1 || got[0] != "trunk" {
		t.Errorf("base branches = %v, want [trunk]", got)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf("expected .git directory: %v", err)
	}

	if _, err := execute(t, "--root", dir, "init", "acme"); err == nil {
		t.Error("second init without --force should fail")
	}
	if _, err := execute(t, "--root", dir, "init", "renamed", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestRunInit_noGit(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "--root", dir, "init", "acme", "--no-git"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		t.Error(".git should not be created with --no-git")
	}
}

func TestRunInit_invalidPattern(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "--root", dir, "init", "acme", "--workspaces", "../outside"); err == nil {
		t.Fatal("init should reject patterns escaping the project")
	}
	if _, err := os.Stat(filepath.Join(dir, manifest.ProjectFile)); err == nil {
		t.Error("no manifest should be written on error")
	}
}
