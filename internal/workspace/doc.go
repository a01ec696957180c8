// Package workspace discovers the workspaces of a project, resolves their
// dependency graph, and maps changed files to the workspaces that own them.
// It also reads workspace manifests as they existed at a baseline revision.
package workspace
