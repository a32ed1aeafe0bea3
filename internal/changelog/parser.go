package changelog

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// releaseHeadingPattern matches "## 1.2.3 - 2024-01-15", "## [1.2.3](link) - TBD"
// and "## [Unreleased]" style headings. Other second-level headings such as
// "## Notes" are not releases.
var releaseHeadingPattern = regexp.MustCompile(
	`^##\s+\[?(v?\d[^\]\s]*|(?i:unreleased))\]?(?:\([^)]*\))?(?:\s+-\s+(.*\S))?\s*$`,
)

// Parse splits content into lines and indexes its release headings.
// Headings inside fenced code blocks are ignored.
func Parse(content []byte) (*Document, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("changelog is not valid UTF-8")
	}

	doc := &Document{eol: dominantLineEnding(content)}
	text := string(content)
	for text != "" {
		line, ending := text, ""
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, ending, text = text[:i], "\n", text[i+1:]
		} else {
			text = ""
		}
		if ending != "" && strings.HasSuffix(line, "\r") {
			line, ending = strings.TrimSuffix(line, "\r"), "\r\n"
		}
		doc.lines = append(doc.lines, line)
		doc.endings = append(doc.endings, ending)
	}
	doc.index()

	return doc, nil
}

// dominantLineEnding returns the line ending used for lines added to the
// document: CRLF when most lines end with it, LF otherwise.
func dominantLineEnding(content []byte) string {
	crlf := bytes.Count(content, []byte("\r\n"))
	if crlf > bytes.Count(content, []byte("\n"))-crlf {
		return "\r\n"
	}
	return "\n"
}

func (d *Document) index() {
	d.releases = d.releases[:0]
	fenced := false

	for i, line := range d.lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
			continue
		}
		if fenced {
			continue
		}
		if r, ok := parseReleaseHeading(line); ok {
			r.Line = i
			d.releases = append(d.releases, r)
		}
	}
}

func parseReleaseHeading(line string) (Release, bool) {
	m := releaseHeadingPattern.FindStringSubmatch(line)
	if m == nil {
		return Release{}, false
	}
	return Release{Version: m[1], Date: m[2]}, true
}
