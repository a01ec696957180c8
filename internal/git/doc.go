// Package git provides a wrapper around the Git commands relgate needs to
// build a change set: repository root discovery, merge-base selection, diff
// enumeration, and reading files as they existed at a past revision.
// It does not depend on other internal packages.
package git
