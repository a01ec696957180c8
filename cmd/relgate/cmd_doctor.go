package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and project configuration",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	cmd.Flags().StringSlice("base", nil, "Base branch candidates (overrides base_branches)")
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	root, _ := cmd.Flags().GetString("root")
	base, _ := cmd.Flags().GetStringSlice("base")
	ok := true

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		return fmt.Errorf("doctor checks failed")
	}
	if v, err := git.Version(); err != nil {
		_, _ = fmt.Fprintf(out, "ERROR (%v)\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, v)
	}

	// Check the project manifest and workspace graph.
	_, _ = fmt.Fprint(out, "Checking project... ")
	ctx, err := loadProject(root)
	if err != nil {
		_, _ = fmt.Fprintf(out, "FAILED\n  %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}
	_, _ = fmt.Fprintf(out, "%s (%d workspaces)\n", ctx.Project.Name, len(ctx.Graph.Workspaces()))
	for _, w := range ctx.Graph.Workspaces() {
		if w.Version() == "" && !w.Private() {
			_, _ = fmt.Fprintf(out, "  Warning: %s has no version and is excluded from release checks\n", w.Name)
		}
	}

	// Check the repository and baseline.
	_, _ = fmt.Fprint(out, "Checking repository... ")
	repoRoot, err := git.Root(ctx.Root)
	if err != nil {
		_, _ = fmt.Fprintf(out, "FAILED\n  %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}
	if head, err := git.HeadCommit(repoRoot); err == nil {
		_, _ = fmt.Fprintf(out, "%s at %s\n", repoRoot, head)
	} else {
		_, _ = fmt.Fprintf(out, "%s (no commits)\n", repoRoot)
	}

	candidates := ctx.Project.EffectiveBaseBranches()
	if len(base) > 0 {
		candidates = base
	}
	_, _ = fmt.Fprint(out, "Checking baseline... ")
	hash, ref, err := git.MergeBase(repoRoot, candidates)
	var nb *git.NoBaseError
	switch {
	case errors.As(err, &nb):
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintf(out, "  %v\n  Set base_branches in %s or pass --base.\n", err, ctx.ManifestPath)
		ok = false
	case err != nil:
		_, _ = fmt.Fprintf(out, "ERROR (%v)\n", err)
		ok = false
	default:
		_, _ = fmt.Fprintf(out, "%s via %s\n", git.ShortHash(hash), ref)
		if _, err := workspace.OpenSnapshot(repoRoot, hash); err != nil {
			_, _ = fmt.Fprintf(out, "  Warning: cannot read baseline: %v\n", err)
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}
