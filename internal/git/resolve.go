package git

import (
	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/semver"
)

// Resolve selects the release branch that receives the changelog bump for
// version. Only branches whose major.minor equals the version's are eligible.
// When several branches share that major.minor (for example 1.2.x and
// v1.2.x), the one with the lexicographically highest name wins.
// No eligible branch yields a NoMatchingBranch error.
func Resolve(candidates MergeTargetCandidateBranches, version semver.Version) (BranchName, error) {
	matches := candidates.ForVersion(version)

	switch len(matches) {
	case 0:
		return BranchName{}, relerrors.NoBranchFor(version.String(), candidates.Names())
	case 1:
		logDebug("[git] Resolve: %s -> %s", version, matches[0])
		return matches[0], nil
	}

	best := matches[0]
	for _, b := range matches[1:] {
		if b.String() > best.String() {
			best = b
		}
	}
	logDebug("[git] Resolve: %d branches match %s, picked %s", len(matches), version, best)
	return best, nil
}
