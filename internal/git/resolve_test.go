// Package git tests resolving the merge target branch for a milestone version.
// Related: internal/git/resolve.go
// Tags: git, resolve, release-branch

package git

import (
	"testing"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		branches []string
		version  semver.Version
		want     string
	}{
		"picks matching minor": {
			branches: []string{"1.1.x", "1.2.x", "1.3.x"},
			version:  semver.New(1, 2, 3),
			want:     "1.2.x",
		},
		"patch is ignored": {
			branches: []string{"1.1.x", "1.2.x"},
			version:  semver.New(1, 1, 99),
			want:     "1.1.x",
		},
		"double digit minor": {
			branches: []string{"1.1.x", "1.10.x", "1.100.x"},
			version:  semver.New(1, 10, 0),
			want:     "1.10.x",
		},
		"major must match": {
			branches: []string{"1.2.x", "2.2.x"},
			version:  semver.New(2, 2, 0),
			want:     "2.2.x",
		},
		"collision picks highest name": {
			branches: []string{"1.2.x", "v1.2.x", "1.3.x"},
			version:  semver.New(1, 2, 3),
			want:     "v1.2.x",
		},
		"non release branches ignored": {
			branches: []string{"master", "1.2.x", "feature/1.2.x"},
			version:  semver.New(1, 2, 0),
			want:     "1.2.x",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(CandidatesFromNames(tt.branches...), tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())

			major, minor, ok := got.MajorAndMinor()
			require.True(t, ok)
			assert.Equal(t, tt.version.Major(), major)
			assert.Equal(t, tt.version.Minor(), minor)
		})
	}
}

func TestResolve_NoMatchingBranch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		branches []string
		version  semver.Version
	}{
		"no candidates":       {branches: nil, version: semver.New(1, 2, 3)},
		"only other minors":   {branches: []string{"1.1.x", "1.3.x"}, version: semver.New(1, 2, 3)},
		"only other majors":   {branches: []string{"2.2.x"}, version: semver.New(1, 2, 3)},
		"only non release":    {branches: []string{"master", "develop"}, version: semver.New(1, 2, 3)},
		"prefix is not match": {branches: []string{"11.2.x", "1.22.x"}, version: semver.New(1, 2, 3)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(CandidatesFromNames(tt.branches...), tt.version)
			require.Error(t, err)
			assert.True(t, got.IsZero())
			assert.Equal(t, relerrors.NoMatchingBranch, relerrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.version.String())
		})
	}
}

func TestResolve_IsDeterministicRegardlessOfInputOrder(t *testing.T) {
	t.Parallel()

	a, err := Resolve(CandidatesFromNames("1.2.x", "v1.2.x"), semver.New(1, 2, 0))
	require.NoError(t, err)
	b, err := Resolve(CandidatesFromNames("v1.2.x", "1.2.x"), semver.New(1, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
