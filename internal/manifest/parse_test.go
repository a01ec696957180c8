package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestParseProject_valid(t *testing.T) {
	data := []byte(`
version: 1
name: acme
workspaces:
  - packages/*
  - tools/cli
base_branches: [main]
changeset_ignore: ["**/*.md"]
`)
	p, err := ParseProject(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "acme" {
		t.Errorf("name = %q, want %q", p.Name, "acme")
	}
	if len(p.Workspaces) != 2 {
		t.Errorf("workspaces count = %d, want 2", len(p.Workspaces))
	}
	if got := p.EffectiveBaseBranches(); len(got) != 1 || got[0] != "main" {
		t.Errorf("EffectiveBaseBranches() = %v", got)
	}
	if len(p.ChangesetIgnore) != 1 {
		t.Errorf("changeset_ignore = %v", p.ChangesetIgnore)
	}
}

func TestParseProject_defaultBaseBranches(t *testing.T) {
	p, err := ParseProject([]byte("version: 1\nname: acme\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.EffectiveBaseBranches(); len(got) != len(DefaultBaseBranches) {
		t.Errorf("EffectiveBaseBranches() = %v, want defaults", got)
	}
}

func TestParseProject_invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing version", "name: acme\n"},
		{"missing name", "version: 1\n"},
		{"absolute pattern", "version: 1\nname: a\nworkspaces: [/abs/*]\n"},
		{"escaping pattern", "version: 1\nname: a\nworkspaces: [../other]\n"},
		{"bad glob", "version: 1\nname: a\nworkspaces: [\"packages/[\"]\n"},
		{"empty base branch", "version: 1\nname: a\nbase_branches: [\"\"]\n"},
		{"bad yaml", ":::invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProject([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParsePackage_valid(t *testing.T) {
	data := []byte(`
name: "@acme/foo"
version: 1.0.0
private: true
dependencies:
  "@acme/bar": "workspace:^"
dev_dependencies:
  "@acme/baz": "workspace:*"
  "@acme/bar": "workspace:^"
release:
  nonce: abc
  version: 1.1.0
`)
	p, err := ParsePackage(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Version != "1.0.0" || !p.Private {
		t.Errorf("unexpected package: %+v", p)
	}
	if p.Nonce() != "abc" || p.TargetVersion() != "1.1.0" {
		t.Errorf("release = %+v", p.Release)
	}
	names := p.DependencyNames()
	sort.Strings(names)
	if strings.Join(names, ",") != "@acme/bar,@acme/baz" {
		t.Errorf("DependencyNames() = %v", names)
	}
}

func TestParsePackage_invalid(t *testing.T) {
	if _, err := ParsePackage([]byte("version: 1.0.0\n")); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := ParsePackage([]byte("name: a\nrelease:\n  version: 1.0.0\n")); err == nil {
		t.Error("expected error for release without nonce")
	}
}

func TestPackage_nilRelease(t *testing.T) {
	var p *Package
	if p.Nonce() != "" || p.TargetVersion() != "" {
		t.Error("nil package should have no decision")
	}
	p = &Package{Name: "a"}
	if p.Nonce() != "" || p.IsVersioned() {
		t.Error("unversioned package without release")
	}
}

func TestSaveRelease_preservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PackageFile)
	src := "name: foo\nversion: 1.0.0\ndescription: keep me\nscripts:\n  build: make\n"
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	p.Release = &Release{Nonce: "n1", Version: "1.0.1"}
	if err := SaveRelease(path, p); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Extra["description"] != "keep me" {
		t.Errorf("description lost: %v", reloaded.Extra)
	}
	if _, ok := reloaded.Extra["scripts"]; !ok {
		t.Errorf("scripts lost: %v", reloaded.Extra)
	}
	if reloaded.Nonce() != "n1" || reloaded.TargetVersion() != "1.0.1" {
		t.Errorf("release = %+v", reloaded.Release)
	}
}

func TestSaveRelease_keepsCommentsAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), PackageFile)
	src := `# the core library
name: foo # public name
version: 1.0.0
dependencies:
  bar: "workspace:^" # pinned by the workspace
release:
  nonce: old
  version: 1.0.0
private: false
`
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	p.Release = &Release{Nonce: "n2", Version: "1.1.0"}
	if err := SaveRelease(path, p); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"# the core library", "# public name", "# pinned by the workspace", "nonce: n2", "version: 1.1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "nonce: old") {
		t.Errorf("old release kept:\n%s", out)
	}
	keys := []string{"name:", "version: 1.0.0", "dependencies:", "release:", "private:"}
	last := -1
	for _, k := range keys {
		i := strings.Index(out, k)
		if i <= last {
			t.Fatalf("key order changed at %q:\n%s", k, out)
		}
		last = i
	}
}

func TestSetRelease(t *testing.T) {
	src := []byte("name: foo\nversion: 1.0.0\n")

	added, err := SetRelease(src, &Release{Nonce: "n1", Version: "2.0.0"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParsePackage(added)
	if err != nil {
		t.Fatal(err)
	}
	if p.Nonce() != "n1" || p.TargetVersion() != "2.0.0" {
		t.Errorf("release = %+v", p.Release)
	}

	removed, err := SetRelease(added, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(removed) != string(src) {
		t.Errorf("SetRelease(nil) = %q, want %q", removed, src)
	}

	if _, err := SetRelease([]byte("- a\n- b\n"), nil); err == nil {
		t.Error("expected error for a non-mapping manifest")
	}
}

func TestSaveRelease_newFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), PackageFile)
	p := &Package{Name: "foo", Version: "1.0.0", Release: &Release{Nonce: "n", Version: "1.0.1"}}
	if err := SaveRelease(path, p); err != nil {
		t.Fatal(err)
	}
	got, err := LoadPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "foo" || got.TargetVersion() != "1.0.1" {
		t.Errorf("reloaded = %+v", got)
	}
}

func TestLoadPackage_missing(t *testing.T) {
	if _, err := LoadPackage(filepath.Join(t.TempDir(), PackageFile)); err == nil {
		t.Fatal("expected error for missing file")
	}
}
