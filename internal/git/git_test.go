package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/relgate/internal/testutil"
)

// featureRepo returns a repo with a main commit and a feature branch on top.
func featureRepo(t *testing.T) (dir, base string) {
	t.Helper()
	dir = testutil.CreateRepo(t, map[string]string{
		"README.md":            "# test\n",
		"packages/a/index.txt": "a\n",
	})
	base = testutil.GitOutput(t, dir, "rev-parse", "HEAD")
	testutil.Git(t, dir, "checkout", "-b", "feature")
	testutil.WriteFiles(t, dir, map[string]string{"packages/a/index.txt": "a2\n"})
	testutil.CommitAll(t, dir, "change a")
	return dir, base
}

func TestRoot(t *testing.T) {
	dir := testutil.CreateRepo(t, nil)
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}

	root, err := Root(sub)
	if err != nil {
		t.Fatal(err)
	}
	if root != dir {
		t.Errorf("Root() = %q, want %q", root, dir)
	}
}

func TestRoot_notRepository(t *testing.T) {
	_, err := Root(t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}

func TestMergeBase(t *testing.T) {
	dir, base := featureRepo(t)

	hash, ref, err := MergeBase(dir, []string{"master", "main"})
	if err != nil {
		t.Fatal(err)
	}
	if hash != base {
		t.Errorf("hash = %q, want %q", hash, base)
	}
	if ref != "main" {
		t.Errorf("ref = %q, want main", ref)
	}
}

func TestMergeBase_noCandidate(t *testing.T) {
	dir, _ := featureRepo(t)

	_, _, err := MergeBase(dir, []string{"trunk", "origin/trunk"})
	var nb *NoBaseError
	if !errors.As(err, &nb) {
		t.Fatalf("expected NoBaseError, got %v", err)
	}
	if len(nb.Candidates) != 2 {
		t.Errorf("candidates = %v", nb.Candidates)
	}
}

func TestSubject(t *testing.T) {
	dir, base := featureRepo(t)

	subject, err := Subject(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "initial commit" {
		t.Errorf("Subject() = %q, want %q", subject, "initial commit")
	}
}

func TestDiffNamesAndUntracked(t *testing.T) {
	dir, base := featureRepo(t)
	testutil.WriteFiles(t, dir, map[string]string{
		"README.md":    "# changed\n",
		"new/file.txt": "untracked\n",
		"ignored.log":  "ignored\n",
		".gitignore":   "*.log\n",
	})

	changed, err := DiffNames(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"README.md": true, "packages/a/index.txt": true}
	if len(changed) != len(want) {
		t.Fatalf("DiffNames() = %v, want %v", changed, want)
	}
	for _, c := range changed {
		if !want[c] {
			t.Errorf("unexpected changed file %q", c)
		}
	}

	untracked, err := Untracked(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, u := range untracked {
		got[u] = true
	}
	if !got["new/file.txt"] || !got[".gitignore"] {
		t.Errorf("Untracked() = %v, missing expected files", untracked)
	}
	if got["ignored.log"] {
		t.Error("ignored file should not be listed")
	}
}

func TestDiffNamesAndUntracked_nonASCII(t *testing.T) {
	dir := testutil.CreateRepo(t, map[string]string{"packages/b/naïve.txt": "n\n"})
	base := testutil.GitOutput(t, dir, "rev-parse", "HEAD")
	testutil.WriteFiles(t, dir, map[string]string{
		"packages/b/naïve.txt":      "n2\n",
		"packages/b/café.txt":       "c\n",
		"packages/b/with space.txt": "s\n",
	})

	changed, err := DiffNames(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || changed[0] != "packages/b/naïve.txt" {
		t.Errorf("DiffNames() = %q, want [packages/b/naïve.txt]", changed)
	}

	untracked, err := Untracked(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"packages/b/café.txt": true, "packages/b/with space.txt": true}
	if len(untracked) != len(want) {
		t.Fatalf("Untracked() = %q, want %v", untracked, want)
	}
	for _, u := range untracked {
		if !want[u] {
			t.Errorf("unexpected untracked path %q", u)
		}
	}
}

func TestHistory_ReadFile(t *testing.T) {
	dir, base := featureRepo(t)

	h, err := OpenHistory(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	data, err := h.ReadFile("packages/a/index.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\n" {
		t.Errorf("ReadFile() = %q, want %q", data, "a\n")
	}
}

func TestHistory_ReadFile_missing(t *testing.T) {
	dir, base := featureRepo(t)

	h, err := OpenHistory(dir, base)
	if err != nil {
		t.Fatal(err)
	}
	_, err = h.ReadFile("packages/b/package.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenHistory_badRevision(t *testing.T) {
	dir := testutil.CreateRepo(t, nil)

	if _, err := OpenHistory(dir, "does-not-exist"); err == nil {
		t.Fatal("expected error for unknown revision")
	}
}

func TestShortHash(t *testing.T) {
	if got := ShortHash("0123456789abcdef"); got != "0123456" {
		t.Errorf("ShortHash() = %q", got)
	}
	if got := ShortHash("abc"); got != "abc" {
		t.Errorf("ShortHash() = %q", got)
	}
}

func TestIsGitInstalled(t *testing.T) {
	if !IsGitInstalled() {
		t.Skip("git not installed")
	}
	if _, err := Version(); err != nil {
		t.Fatal(err)
	}
}
