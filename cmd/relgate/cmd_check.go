package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/fbkclanna/relgate/internal/release"
	"github.com/fbkclanna/relgate/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every changed workspace has a release decision",
		Long: `Compares the work tree against its merge-base with the first base branch
found and reports every changed workspace without a release decision, along
with the dependents of workspaces planned for release.

With --interactive, opens a session to record the missing decisions.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
	cmd.Flags().BoolP("interactive", "i", false, "Record missing decisions interactively")
	cmd.Flags().StringSlice("base", nil, "Base branch candidates (overrides base_branches)")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	base, _ := cmd.Flags().GetStringSlice("base")
	interactive, _ := cmd.Flags().GetBool("interactive")

	log := loggerFor(cmd)
	defer func() { _ = log.Sync() }()

	ev, err := evaluate(root, base, log)
	if err != nil {
		return err
	}

	if !interactive {
		if !release.Report(cmd.OutOrStdout(), ui.DetectPalette(), ev.cs, ev.status, ev.pairs) {
			return &exitError{code: 1}
		}
		return nil
	}
	return runDecide(cmd, ev, log)
}

// runDecide runs the interactive session and applies the confirmed plan.
func runDecide(cmd *cobra.Command, ev *evaluation, log *zap.Logger) error {
	session := release.NewSession(ev.status, ev.ctx.Graph)
	if len(session.Rows()) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to decide.")
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a TTY; run without --interactive to list missing decisions")
	}

	result, err := tea.NewProgram(newDecideModel(session)).Run()
	if err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating relgate executable: %w", err)
	}
	applier := &release.ExecApplier{Executable: exe, Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	return finishDecide(cmd, result.(decideModel), applier, log)
}

// finishDecide ends a session: an aborted session exits 1 without writing
// anything, a confirmed one applies its plan and exits with the code of the
// last action.
func finishDecide(cmd *cobra.Command, m decideModel, applier release.Applier, log *zap.Logger) error {
	if m.aborted || !m.confirmed {
		return &exitError{code: 1}
	}

	out := cmd.OutOrStdout()
	plan := m.session.Plan()
	if len(plan) == 0 {
		_, _ = fmt.Fprintln(out, "No decisions recorded.")
		return nil
	}
	log.Debug("applying plan", zap.Int("decisions", len(plan)))

	steps := ui.NewSteps(out, len(plan), ui.DetectPalette())
	steps.Log("Recording %d release decisions", len(plan))
	code, err := release.ApplyAll(cmd.Context(), applier, plan, steps)
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}
