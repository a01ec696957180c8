package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNotRepository is returned by Root when dir is not inside a work tree.
var ErrNotRepository = errors.New("not a git repository")

// NoBaseError is returned by MergeBase when no candidate shares history with HEAD.
type NoBaseError struct {
	Candidates []string
}

func (e *NoBaseError) Error() string {
	return fmt.Sprintf("no ancestor could be found between HEAD and any of %s", strings.Join(e.Candidates, ", "))
}

// Root returns the absolute path of the work tree containing dir.
func Root(dir string) (string, error) {
	out, err := outputQuiet(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if isExitError(err) {
			return "", fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// MergeBase returns the merge-base of HEAD with the first candidate ref that
// has one, along with the candidate that matched.
func MergeBase(repoDir string, candidates []string) (hash, ref string, err error) {
	for _, c := range candidates {
		out, err := outputQuiet(repoDir, "merge-base", c, "HEAD")
		if err != nil {
			continue
		}
		if h := strings.TrimSpace(out); h != "" {
			return h, c, nil
		}
	}
	return "", "", &NoBaseError{Candidates: candidates}
}

// Subject returns the one-line commit message of rev.
func Subject(repoDir, rev string) (string, error) {
	out, err := outputQuiet(repoDir, "show", "--quiet", "--pretty=format:%s", rev)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DiffNames lists files that differ between rev and the working tree,
// relative to the repository root. Paths are returned verbatim, never
// C-quoted.
func DiffNames(repoDir, rev string) ([]string, error) {
	out, err := outputQuiet(repoDir, "diff", "--name-only", "--no-renames", "-z", rev, "--")
	if err != nil {
		return nil, err
	}
	return fields(out), nil
}

// Untracked lists untracked files that are not ignored, relative to the
// repository root.
func Untracked(repoDir string) ([]string, error) {
	out, err := outputQuiet(repoDir, "ls-files", "--others", "--exclude-standard", "--full-name", "-z")
	if err != nil {
		return nil, err
	}
	return fields(out), nil
}

// HeadCommit returns the short SHA of HEAD.
func HeadCommit(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ShortHash abbreviates a full commit hash for display.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the output of git version.
func Version() (string, error) {
	out, err := outputQuiet(".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Init runs git init with main as the initial branch.
func Init(dir string) error {
	return runQuiet(dir, "init", "-b", "main")
}

// Add stages the given paths in the repository.
func Add(dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return runQuiet(dir, args...)
}

// Commit creates a commit with the given message.
// If user.name or user.email is not configured, it sets repo-local fallback values.
func Commit(dir, message string) error {
	if err := ensureCommitIdentity(dir); err != nil {
		return fmt.Errorf("setting commit identity: %w", err)
	}
	return runQuiet(dir, "commit", "-m", message)
}

// CreateBranch creates and checks out a new branch from the current HEAD.
func CreateBranch(dir, branch string) error {
	return runQuiet(dir, "checkout", "-b", branch)
}

func ensureCommitIdentity(dir string) error {
	if _, err := outputQuiet(dir, "config", "user.name"); err != nil {
		if err2 := runQuiet(dir, "config", "user.name", "relgate"); err2 != nil {
			return err2
		}
	}
	if _, err := outputQuiet(dir, "config", "user.email"); err != nil {
		if err2 := runQuiet(dir, "config", "user.email", "relgate@localhost"); err2 != nil {
			return err2
		}
	}
	return nil
}

// runQuiet executes a git command without printing stdout.
// Stderr is captured and included in the error message on failure.
func runQuiet(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// outputQuiet executes a git command and returns its stdout without printing to the console.
func outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// fields splits NUL-terminated -z output.
func fields(out string) []string {
	var result []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			result = append(result, f)
		}
	}
	return result
}

func isExitError(err error) bool {
	var ee *exec.ExitError
	return errors.As(err, &ee)
}
