package git

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/autorelease/internal/semver"
)

// releaseBranchPattern matches maintenance branches such as 1.2.x or v1.2.x.
var releaseBranchPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.x$`)

// invalidRefSequences are rejected by git check-ref-format.
var invalidRefSequences = []string{"..", "~", "^", ":", "?", "*", "[", "\\", "@{", "//"}

// BranchName is a validated git branch name.
type BranchName struct {
	name string
}

// NewBranchName validates name against git's ref naming rules.
func NewBranchName(name string) (BranchName, error) {
	if name == "" {
		return BranchName{}, fmt.Errorf("branch name is empty")
	}
	if strings.IndexFunc(name, func(r rune) bool { return r <= ' ' || r == 0x7f }) >= 0 {
		return BranchName{}, fmt.Errorf("branch name %q contains whitespace or control characters", name)
	}
	for _, seq := range invalidRefSequences {
		if strings.Contains(name, seq) {
			return BranchName{}, fmt.Errorf("branch name %q contains %q", name, seq)
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") ||
		strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") ||
		strings.HasSuffix(name, ".lock") || name == "@" {
		return BranchName{}, fmt.Errorf("branch name %q is not a valid ref name", name)
	}
	return BranchName{name: name}, nil
}

// MustBranchName is NewBranchName for names known to be valid at compile time.
func MustBranchName(name string) BranchName {
	b, err := NewBranchName(name)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the branch name.
func (b BranchName) String() string {
	return b.name
}

// IsZero reports whether b was never constructed.
func (b BranchName) IsZero() bool {
	return b.name == ""
}

// IsReleaseBranch reports whether b follows the MAJOR.MINOR.x convention.
func (b BranchName) IsReleaseBranch() bool {
	return releaseBranchPattern.MatchString(b.name)
}

// MajorAndMinor returns the version embedded in a release branch name.
// ok is false for branches that are not release branches.
func (b BranchName) MajorAndMinor() (major, minor uint64, ok bool) {
	m := releaseBranchPattern.FindStringSubmatch(b.name)
	if m == nil {
		return 0, 0, false
	}
	major, errMajor := strconv.ParseUint(m[1], 10, 64)
	minor, errMinor := strconv.ParseUint(m[2], 10, 64)
	if errMajor != nil || errMinor != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// Targets reports whether b is the release branch for v's major.minor.
func (b BranchName) Targets(v semver.Version) bool {
	major, minor, ok := b.MajorAndMinor()
	return ok && major == v.Major() && minor == v.Minor()
}

// Compare orders branches by embedded major.minor, then by name.
// Release branches sort after any other branch.
func (b BranchName) Compare(o BranchName) int {
	bMajor, bMinor, bOK := b.MajorAndMinor()
	oMajor, oMinor, oOK := o.MajorAndMinor()

	switch {
	case bOK && !oOK:
		return 1
	case !bOK && oOK:
		return -1
	case bOK && oOK:
		if c := compareUint(bMajor, oMajor); c != 0 {
			return c
		}
		if c := compareUint(bMinor, oMinor); c != 0 {
			return c
		}
	}
	return strings.Compare(b.name, o.name)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MergeTargetCandidateBranches is the ordered set of release branches that
// may receive a changelog bump. Branches are unique and sorted newest first.
type MergeTargetCandidateBranches struct {
	branches []BranchName
}

// CandidatesFromBranches keeps only release branches, drops duplicates and
// sorts the result by version, newest first.
func CandidatesFromBranches(branches ...BranchName) MergeTargetCandidateBranches {
	seen := make(map[string]bool, len(branches))
	kept := make([]BranchName, 0, len(branches))

	for _, b := range branches {
		if !b.IsReleaseBranch() || seen[b.name] {
			continue
		}
		seen[b.name] = true
		kept = append(kept, b)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Compare(kept[j]) > 0
	})

	return MergeTargetCandidateBranches{branches: kept}
}

// CandidatesFromNames validates raw names and builds the candidate set.
// Names that are not valid branch names are skipped.
func CandidatesFromNames(names ...string) MergeTargetCandidateBranches {
	branches := make([]BranchName, 0, len(names))
	for _, n := range names {
		b, err := NewBranchName(n)
		if err != nil {
			logDebug("[git] skipping branch %q: %v", n, err)
			continue
		}
		branches = append(branches, b)
	}
	return CandidatesFromBranches(branches...)
}

// Branches returns a copy of the candidates, newest first.
func (c MergeTargetCandidateBranches) Branches() []BranchName {
	return append([]BranchName(nil), c.branches...)
}

// Names returns the candidate names, newest first.
func (c MergeTargetCandidateBranches) Names() []string {
	names := make([]string, len(c.branches))
	for i, b := range c.branches {
		names[i] = b.name
	}
	return names
}

func (c MergeTargetCandidateBranches) Len() int {
	return len(c.branches)
}

// ForVersion returns every candidate sharing v's major.minor, newest first.
func (c MergeTargetCandidateBranches) ForVersion(v semver.Version) []BranchName {
	var matches []BranchName
	for _, b := range c.branches {
		if b.Targets(v) {
			matches = append(matches, b)
		}
	}
	return matches
}
