package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/manifest"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a project manifest in the root directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().StringSlice("workspaces", []string{"packages/*"}, "Workspace glob patterns")
	cmd.Flags().StringSlice("base", nil, "Base branch candidates (default: master/main and their remotes)")
	cmd.Flags().Bool("force", false, "Overwrite an existing workspace.yaml")
	cmd.Flags().Bool("no-git", false, "Skip git repository initialization")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	patterns, _ := cmd.Flags().GetStringSlice("workspaces")
	base, _ := cmd.Flags().GetStringSlice("base")
	force, _ := cmd.Flags().GetBool("force")
	noGit, _ := cmd.Flags().GetBool("no-git")

	manifestPath := filepath.Join(root, manifest.ProjectFile)
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
	}

	// Build and validate the manifest before creating anything.
	data, err := buildProject(args[0], patterns, base)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(root, 0755); err != nil { //nolint:gosec // project dir needs to be world-readable
		return fmt.Errorf("creating project directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil { //nolint:gosec // manifest file needs to be readable
		return fmt.Errorf("writing manifest: %w", err)
	}

	if !noGit {
		initGitRepo(cmd, root)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %q created at %s\n", args[0], manifestPath)
	return nil
}

// buildProject assembles and validates a Project and serializes it to YAML.
func buildProject(name string, patterns, base []string) ([]byte, error) {
	p := manifest.Project{
		Version:      1,
		Name:         name,
		Workspaces:   patterns,
		BaseBranches: base,
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("building project manifest: %w", err)
	}
	if _, err := manifest.ParseProject(data); err != nil {
		return nil, err
	}
	return data, nil
}

// initGitRepo initializes a git repository in dir unless dir is already
// inside one. Errors are reported as warnings and do not fail init.
func initGitRepo(cmd *cobra.Command, dir string) {
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: git is not installed; skipping git initialization\n")
		return
	}

	_, err := git.Root(dir)
	if err == nil {
		return
	}
	if !errors.Is(err, git.ErrNotRepository) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return
	}

	if err := git.Init(dir); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: git init failed: %v\n", err)
		return
	}
	if err := git.Add(dir, manifest.ProjectFile); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: git add failed: %v\n", err)
		return
	}
	if err := git.Commit(dir, "Initialize relgate project"); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: git commit failed: %v\n", err)
	}
}
