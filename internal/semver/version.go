// Package semver holds the validated version value parsed from a milestone
// title and the bump types the changelog tooling understands.
package semver

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	msemver "github.com/Masterminds/semver/v3"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

var milestonePattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// Version is an immutable MAJOR.MINOR.PATCH triple.
// The zero value is not a valid version; use FromMilestoneTitle or New.
type Version struct {
	v *msemver.Version
}

// FromMilestoneTitle parses a milestone title of the exact form
// MAJOR.MINOR.PATCH. Prefixes, leading zeros, pre-release tags, build
// metadata, surrounding whitespace and components too large to increment
// are rejected with an InvalidMilestoneVersion error.
func FromMilestoneTitle(title string) (Version, error) {
	m := milestonePattern.FindStringSubmatch(title)
	if m == nil {
		return Version{}, relerrors.InvalidVersion(title,
			fmt.Errorf("expected MAJOR.MINOR.PATCH"))
	}

	parts := make([]uint64, 3)
	for i, s := range m[1:] {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Version{}, relerrors.InvalidVersion(title, err)
		}
		if n == math.MaxUint64 {
			return Version{}, relerrors.InvalidVersion(title,
				fmt.Errorf("component %s is too large to increment", s))
		}
		parts[i] = n
	}

	return New(parts[0], parts[1], parts[2]), nil
}

// New builds a version from its components.
func New(major, minor, patch uint64) Version {
	return Version{v: msemver.New(major, minor, patch, "", "")}
}

// IsZero reports whether v was never constructed.
func (v Version) IsZero() bool {
	return v.v == nil
}

func (v Version) Major() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Major()
}

func (v Version) Minor() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Minor()
}

func (v Version) Patch() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Patch()
}

// String returns the MAJOR.MINOR.PATCH form.
func (v Version) String() string {
	if v.v == nil {
		return "0.0.0"
	}
	return v.v.String()
}

// Equal reports whether both versions have the same components.
func (v Version) Equal(o Version) bool {
	return v.Major() == o.Major() && v.Minor() == o.Minor() && v.Patch() == o.Patch()
}

// SameMinor reports whether v and o share major and minor.
func (v Version) SameMinor(o Version) bool {
	return v.Major() == o.Major() && v.Minor() == o.Minor()
}

// Bump returns the version that follows v for the given bump type.
func (v Version) Bump(t BumpType) Version {
	base := *msemver.New(v.Major(), v.Minor(), v.Patch(), "", "")
	var next msemver.Version
	switch t {
	case BumpMajor:
		next = base.IncMajor()
	case BumpMinor:
		next = base.IncMinor()
	default:
		next = base.IncPatch()
	}
	return Version{v: &next}
}
