package changelog

import (
	"strings"

	"github.com/ariel-frischer/autorelease/internal/semver"
)

// Releases returns the release headings in document order.
func (d *Document) Releases() []Release {
	out := make([]Release, len(d.releases))
	copy(out, d.releases)
	return out
}

// ListVersions returns the heading label of every release, newest first as
// they appear in the document.
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.releases))
	for i, r := range d.releases {
		versions[i] = r.Version
	}
	return versions
}

// GetRelease looks up a release by its label. A leading "v" on either side
// is ignored.
func (d *Document) GetRelease(version string) (Release, bool) {
	want := normalizeVersion(version)
	for _, r := range d.releases {
		if normalizeVersion(r.Version) == want {
			return r, true
		}
	}
	return Release{}, false
}

// GetUnreleased returns the "Unreleased" section, if any.
func (d *Document) GetUnreleased() (Release, bool) {
	for _, r := range d.releases {
		if r.IsUnreleased() {
			return r, true
		}
	}
	return Release{}, false
}

// HasVersion reports whether the document already has a section for v.
func (d *Document) HasVersion(v semver.Version) bool {
	_, ok := d.GetRelease(v.String())
	return ok
}

func normalizeVersion(version string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}
