package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/fbkclanna/relgate/internal/ui"
	"github.com/fbkclanna/relgate/internal/workspace"
)

// Applier durably records a strategy for one workspace. It returns the exit
// status of the action; err is reserved for actions that could not run.
type Applier interface {
	Apply(ctx context.Context, w *workspace.Workspace, s Strategy) (code int, err error)
}

// ExecApplier runs "<Executable> version <strategy>" inside the workspace
// directory.
type ExecApplier struct {
	Executable string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Apply implements Applier.
func (a *ExecApplier) Apply(ctx context.Context, w *workspace.Workspace, s Strategy) (int, error) {
	cmd := exec.CommandContext(ctx, a.Executable, "version", string(s)) //nolint:gosec // executable is relgate itself
	cmd.Dir = w.Dir
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), nil
	}
	return 1, fmt.Errorf("running %s version %s in %s: %w", a.Executable, s, w.RelDir, err)
}

// ApplyAll applies plan one decision at a time, in order. Actions must not
// run concurrently since they may touch the same work tree. The returned
// code is the exit status of the last action.
func ApplyAll(ctx context.Context, a Applier, plan []Decision, steps *ui.Steps) (int, error) {
	code := 0
	for _, d := range plan {
		if err := ctx.Err(); err != nil {
			return 1, err
		}
		c, err := a.Apply(ctx, d.Workspace, d.Strategy)
		if err != nil {
			return 1, err
		}
		code = c
		label := fmt.Sprintf("%s: %s", d.Workspace.Name, d.Strategy)
		if c != 0 {
			steps.Fail(fmt.Sprintf("%s (exit %d)", label, c))
			continue
		}
		steps.Done(label)
	}
	return code, nil
}
