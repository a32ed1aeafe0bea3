package changelog

import "strings"

// UnreleasedVersion is the heading label of the section collecting changes
// that are not yet part of a release.
const UnreleasedVersion = "Unreleased"

// DateTBD marks a release section whose release date is not yet known.
const DateTBD = "TBD"

// Categories lists the Keep a Changelog change categories written into a
// freshly opened release section, in rendering order.
var Categories = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed"}

// EmptyEntry is the placeholder entry written under each empty category.
const EmptyEntry = "- Nothing."

// Release is a single second-level release heading found in a changelog.
// Version holds the heading label without brackets, e.g. "1.2.3" or
// "Unreleased". Date is empty when the heading carries no date.
type Release struct {
	Version string
	Date    string
	Line    int
}

// IsUnreleased reports whether r is the "Unreleased" section.
func (r Release) IsUnreleased() bool {
	return strings.EqualFold(r.Version, UnreleasedVersion)
}

// Document is a parsed changelog. It keeps the original lines so that
// rewriting a document only touches the lines that change.
type Document struct {
	lines []string
	// endings holds the line ending of each line; the last line may have none.
	endings  []string
	releases []Release
	// eol is the ending given to added lines.
	eol string
}
