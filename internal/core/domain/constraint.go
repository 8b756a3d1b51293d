package domain

import (
	"errors"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// VersionConstraint is a predicate over semantic versions, parsed from a
// range expression such as ">= 1.2.0" or "~> 2.1".
//
// The zero value accepts nothing; use AnyVersion for an open constraint.
type VersionConstraint struct {
	raw        string
	constraint *semver.Constraints
}

// ParseConstraint parses a version range expression into a VersionConstraint.
// Returns ErrInvalidConstraint if the expression cannot be parsed.
func ParseConstraint(expr string) (VersionConstraint, error) {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return VersionConstraint{}, zerr.With(errors.Join(ErrInvalidConstraint, err), "expression", expr)
	}
	return VersionConstraint{raw: expr, constraint: c}, nil
}

// AnyVersion returns a constraint satisfied by every release version.
func AnyVersion() VersionConstraint {
	c, err := ParseConstraint(">= 0.0.0")
	if err != nil {
		panic(err) // static expression, cannot fail
	}
	return c
}

// SatisfiedBy reports whether the given version satisfies the constraint.
// Versions that do not parse as semantic versions never satisfy.
func (vc VersionConstraint) SatisfiedBy(version string) bool {
	if vc.constraint == nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return vc.constraint.Check(v)
}

// IsZero reports whether the constraint is the unparsed zero value.
func (vc VersionConstraint) IsZero() bool {
	return vc.constraint == nil
}

// String returns the original range expression.
func (vc VersionConstraint) String() string {
	return vc.raw
}

// Equal reports whether two constraints were parsed from the same expression.
// Semantically equivalent but textually different expressions are not equal;
// a rewritten expression is treated as a change of intent.
func (vc VersionConstraint) Equal(other VersionConstraint) bool {
	return vc.raw == other.raw
}

// MarshalText implements encoding.TextMarshaler.
func (vc VersionConstraint) MarshalText() ([]byte, error) {
	return []byte(vc.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (vc *VersionConstraint) UnmarshalText(text []byte) error {
	parsed, err := ParseConstraint(string(text))
	if err != nil {
		return err
	}
	*vc = parsed
	return nil
}

// CompareVersions orders two version strings ascending. Versions that fail to
// parse sort before valid ones so they surface first in sorted output.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	default:
		return va.Compare(vb)
	}
}
