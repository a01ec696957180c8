package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/fbkclanna/relgate/internal/manifest"
)

const (
	nonceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	nonceLength   = 12
)

// ErrNotVersioned is returned when recording a decision for a workspace
// without a version.
var ErrNotVersioned = errors.New("workspace is not versioned")

// NewNonce returns a fresh decision marker. Nonces are only ever compared
// for equality.
func NewNonce() (string, error) {
	id, err := nanoid.Generate(nonceAlphabet, nonceLength)
	if err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	return id, nil
}

// TargetVersion computes the version current moves to under s.
// Decline keeps the current version. Bumping a prerelease to a release
// drops the prerelease tag when that already reaches the bumped level.
func TargetVersion(current string, s Strategy) (string, error) {
	if s == Decline {
		return current, nil
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", current, err)
	}
	pre := v.Prerelease() != ""

	var next semver.Version
	switch s {
	case Major:
		if pre && v.Minor() == 0 && v.Patch() == 0 {
			next = *semver.New(v.Major(), 0, 0, "", "")
		} else {
			next = v.IncMajor()
		}
	case Minor:
		if pre && v.Patch() == 0 {
			next = *semver.New(v.Major(), v.Minor(), 0, "", "")
		} else {
			next = v.IncMinor()
		}
	case Patch:
		next = v.IncPatch()
	case Prerelease:
		if pre {
			next = *semver.New(v.Major(), v.Minor(), v.Patch(), nextPrerelease(v.Prerelease()), "")
		} else {
			next = *semver.New(v.Major(), v.Minor(), v.Patch()+1, "0", "")
		}
	default:
		return "", fmt.Errorf("strategy %q has no target version", s)
	}
	return next.String(), nil
}

// nextPrerelease increments the last numeric identifier of pre, or appends
// ".0" when there is none.
func nextPrerelease(pre string) string {
	ids := strings.Split(pre, ".")
	for i := len(ids) - 1; i >= 0; i-- {
		if n, err := strconv.ParseUint(ids[i], 10, 64); err == nil {
			ids[i] = strconv.FormatUint(n+1, 10)
			return strings.Join(ids, ".")
		}
	}
	return pre + ".0"
}

// Record writes a decision for strategy s into pkg's release record with a
// fresh nonce. Undecided cannot be recorded.
func Record(pkg *manifest.Package, s Strategy) error {
	if s == Undecided || !s.IsValid() {
		return fmt.Errorf("cannot record strategy %q", s)
	}
	if !pkg.IsVersioned() {
		return fmt.Errorf("%s: %w", pkg.Name, ErrNotVersioned)
	}
	target, err := TargetVersion(pkg.Version, s)
	if err != nil {
		return fmt.Errorf("%s: %w", pkg.Name, err)
	}
	return RecordVersion(pkg, target)
}

// RecordVersion writes an explicit target version into pkg's release record
// with a fresh nonce. A target equal to the current version declines.
func RecordVersion(pkg *manifest.Package, target string) error {
	if !pkg.IsVersioned() {
		return fmt.Errorf("%s: %w", pkg.Name, ErrNotVersioned)
	}
	if _, err := semver.StrictNewVersion(target); err != nil {
		return fmt.Errorf("%s: invalid target version %q: %w", pkg.Name, target, err)
	}
	nonce, err := NewNonce()
	if err != nil {
		return err
	}
	pkg.Release = &manifest.Release{Nonce: nonce, Version: target}
	return nil
}
