package release

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Strategy is the release decision recorded for a workspace.
type Strategy string

// Strategies, in the order they are offered.
const (
	Undecided  Strategy = "undecided"
	Decline    Strategy = "decline"
	Major      Strategy = "major"
	Minor      Strategy = "minor"
	Patch      Strategy = "patch"
	Prerelease Strategy = "prerelease"
)

var (
	defaultStrategies    = []Strategy{Undecided, Decline, Patch, Minor, Major, Prerelease}
	prereleaseStrategies = []Strategy{Undecided, Decline, Prerelease, Major}
)

// String returns the strategy name.
func (s Strategy) String() string { return string(s) }

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case Undecided, Decline, Major, Minor, Patch, Prerelease:
		return true
	default:
		return false
	}
}

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown strategy: %q (must be decline, major, minor, patch, or prerelease)", s)
	}
	return st, nil
}

// IsPrerelease reports whether version parses as a semantic version carrying
// a prerelease tag.
func IsPrerelease(version string) bool {
	v, err := semver.NewVersion(version)
	return err == nil && v.Prerelease() != ""
}

// StrategiesFor returns the strategies offered for a workspace at version.
// A workspace already on a prerelease can only move to the next prerelease
// or to a new major.
func StrategiesFor(version string) []Strategy {
	src := defaultStrategies
	if IsPrerelease(version) {
		src = prereleaseStrategies
	}
	return append([]Strategy(nil), src...)
}

// Cycle moves delta steps from current through options, wrapping at both
// ends. A current value missing from options starts from the first entry.
func Cycle(current Strategy, options []Strategy, delta int) Strategy {
	n := len(options)
	if n == 0 {
		return current
	}
	i := 0
	for j, o := range options {
		if o == current {
			i = j
			break
		}
	}
	return options[((i+delta)%n+n)%n]
}
