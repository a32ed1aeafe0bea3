package semver

import (
	"fmt"
	"strings"
)

// BumpType selects which version component a changelog bump increments.
type BumpType int

const (
	BumpPatch BumpType = iota
	BumpMinor
	BumpMajor
)

func (t BumpType) String() string {
	switch t {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return fmt.Sprintf("BumpType(%d)", int(t))
	}
}

// ParseBumpType accepts "patch", "minor" or "major" (case-insensitive).
func ParseBumpType(s string) (BumpType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	}
	return 0, fmt.Errorf("unknown bump type %q (valid: patch, minor, major)", s)
}
