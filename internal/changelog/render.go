package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/autorelease/internal/semver"
)

// Bytes renders the document. Every line keeps the ending it was parsed
// with; added lines use the dominant ending.
func (d *Document) Bytes() []byte {
	if len(d.lines) == 0 {
		return nil
	}
	var sb strings.Builder
	for i, line := range d.lines {
		sb.WriteString(line)
		sb.WriteString(d.endings[i])
	}
	return []byte(sb.String())
}

// formatReleaseHeading formats the heading line for a release without a
// known release date.
func formatReleaseHeading(v semver.Version) string {
	return fmt.Sprintf("## %s - %s", v, DateTBD)
}

// renderSection returns the lines of a new, empty release section. The
// section ends with a blank line so that it can be placed directly above
// another heading.
func renderSection(v semver.Version) []string {
	lines := []string{formatReleaseHeading(v), ""}
	for _, category := range Categories {
		lines = append(lines, "### "+category, "", EmptyEntry, "")
	}
	return lines
}

// OpenRelease adds a section for v. An existing "Unreleased" heading is
// renamed in place. Otherwise an empty section is inserted above the first
// release heading, or appended when the document has none.
func (d *Document) OpenRelease(v semver.Version) {
	if r, ok := d.GetUnreleased(); ok {
		d.lines[r.Line] = formatReleaseHeading(v)
		d.index()
		return
	}

	section := renderSection(v)
	if len(d.releases) > 0 {
		at := d.releases[0].Line
		lines := make([]string, 0, len(d.lines)+len(section))
		lines = append(lines, d.lines[:at]...)
		lines = append(lines, section...)
		d.lines = append(lines, d.lines[at:]...)

		endings := make([]string, 0, len(d.endings)+len(section))
		endings = append(endings, d.endings[:at]...)
		endings = append(endings, d.newEndings(len(section))...)
		d.endings = append(endings, d.endings[at:]...)
		d.index()
		return
	}

	for n := len(d.lines); n > 0 && strings.TrimSpace(d.lines[n-1]) == ""; n = len(d.lines) {
		d.lines = d.lines[:n-1]
		d.endings = d.endings[:n-1]
	}
	if n := len(d.lines); n > 0 {
		if d.endings[n-1] == "" {
			d.endings[n-1] = d.eol
		}
		d.lines = append(d.lines, "")
		d.endings = append(d.endings, d.eol)
	}
	section = section[:len(section)-1]
	d.lines = append(d.lines, section...)
	d.endings = append(d.endings, d.newEndings(len(section))...)
	d.index()
}

func (d *Document) newEndings(n int) []string {
	endings := make([]string, n)
	for i := range endings {
		endings[i] = d.eol
	}
	return endings
}
