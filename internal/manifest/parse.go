package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadProject reads and validates a workspace.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the project manifest path
	if err != nil {
		return nil, fmt.Errorf("reading project manifest: %w", err)
	}
	return ParseProject(data)
}

// ParseProject parses and validates workspace.yaml content.
func ParseProject(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project manifest YAML: %w", err)
	}
	if err := validateProject(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPackage reads and validates a package.yaml file.
func LoadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a workspace manifest path
	if err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}
	pkg, err := ParsePackage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// ParsePackage parses and validates package.yaml content.
func ParsePackage(data []byte) (*Package, error) {
	var p Package
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing package manifest YAML: %w", err)
	}
	if err := validatePackage(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveRelease validates p and writes its release record to the manifest at
// path. Only the release mapping of an existing file is replaced; comments,
// key order and unknown keys stay as they are. A missing or empty file gets
// the whole manifest.
func SaveRelease(path string, p *Package) error {
	if err := validatePackage(p); err != nil {
		return err
	}
	existing, err := os.ReadFile(path) //nolint:gosec // path is a workspace manifest path
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading package manifest: %w", err)
	}

	var data []byte
	if len(bytes.TrimSpace(existing)) == 0 {
		data, err = yaml.Marshal(p)
	} else {
		data, err = SetRelease(existing, p.Release)
	}
	if err != nil {
		return fmt.Errorf("encoding package manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // manifests are committed files
		return fmt.Errorf("writing package manifest: %w", err)
	}
	return nil
}

// SetRelease returns package.yaml content with its top-level release key
// set to r, or removed when r is nil. Everything else is left in place.
func SetRelease(data []byte, r *Release) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing package manifest YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("package manifest: top level must be a mapping")
	}
	root := doc.Content[0]

	at := -1
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "release" {
			at = i
			break
		}
	}

	switch {
	case r == nil && at >= 0:
		root.Content = append(root.Content[:at], root.Content[at+2:]...)
	case r != nil:
		var value yaml.Node
		if err := value.Encode(r); err != nil {
			return nil, fmt.Errorf("encoding release: %w", err)
		}
		if at >= 0 {
			value.HeadComment = root.Content[at+1].HeadComment
			value.LineComment = root.Content[at+1].LineComment
			root.Content[at+1] = &value
		} else {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "release"}
			root.Content = append(root.Content, key, &value)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding package manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding package manifest: %w", err)
	}
	return buf.Bytes(), nil
}

func validateProject(p *Project) error {
	if p.Version != 1 {
		return fmt.Errorf("unsupported manifest version: %d (expected 1)", p.Version)
	}
	if p.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	for i, pattern := range p.Workspaces {
		if pattern == "" {
			return fmt.Errorf("manifest: workspaces[%d] is empty", i)
		}
		if err := validatePath(pattern, fmt.Sprintf("workspaces[%d]", i)); err != nil {
			return err
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("manifest: workspaces[%d]: invalid pattern %q: %w", i, pattern, err)
		}
	}
	for i, b := range p.BaseBranches {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("manifest: base_branches[%d] is empty", i)
		}
	}
	return nil
}

func validatePackage(p *Package) error {
	if p.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if p.Release != nil && p.Release.Nonce == "" {
		return fmt.Errorf("manifest: %s: release.nonce is required when release is set", p.Name)
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the project.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("manifest: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("manifest: %s: path must not escape project (contains ..): %s", label, p)
	}
	return nil
}
