// Package git tests branch name validation and the release branch catalog.
// Related: internal/git/branch.go
// Tags: git, branch, release-branch

package git

import (
	"testing"

	"github.com/ariel-frischer/autorelease/internal/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranchName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		wantErr bool
	}{
		"release branch":   {name: "1.2.x"},
		"prefixed release": {name: "v1.2.x"},
		"feature branch":   {name: "feature/changelog"},
		"master":           {name: "master"},
		"empty":            {name: "", wantErr: true},
		"space":            {name: "1.2 x", wantErr: true},
		"double dot":       {name: "1..2", wantErr: true},
		"tilde":            {name: "1.2~1", wantErr: true},
		"caret":            {name: "1.2^", wantErr: true},
		"colon":            {name: "a:b", wantErr: true},
		"glob":             {name: "1.*", wantErr: true},
		"leading dash":     {name: "-1.2.x", wantErr: true},
		"trailing slash":   {name: "release/", wantErr: true},
		"lock suffix":      {name: "1.2.x.lock", wantErr: true},
		"reflog syntax":    {name: "main@{1}", wantErr: true},
		"control char":     {name: "1.2.x\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBranchName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, b.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, b.String())
		})
	}
}

func TestBranchName_MajorAndMinor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name      string
		wantMajor uint64
		wantMinor uint64
		wantOK    bool
	}{
		"release":        {name: "1.2.x", wantMajor: 1, wantMinor: 2, wantOK: true},
		"v prefix":       {name: "v10.20.x", wantMajor: 10, wantMinor: 20, wantOK: true},
		"patch version":  {name: "1.2.3", wantOK: false},
		"master":         {name: "master", wantOK: false},
		"nested":         {name: "release/1.2.x", wantOK: false},
		"upper X":        {name: "1.2.X", wantOK: false},
		"missing minor":  {name: "1.x", wantOK: false},
		"trailing stuff": {name: "1.2.x-old", wantOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := MustBranchName(tt.name)
			major, minor, ok := b.MajorAndMinor()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, b.IsReleaseBranch())
			if tt.wantOK {
				assert.Equal(t, tt.wantMajor, major)
				assert.Equal(t, tt.wantMinor, minor)
			}
		})
	}
}

func TestBranchName_Compare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b string
		want int
	}{
		"minor ordering":       {a: "1.10.x", b: "1.9.x", want: 1},
		"major ordering":       {a: "1.9.x", b: "2.0.x", want: -1},
		"equal":                {a: "1.2.x", b: "1.2.x", want: 0},
		"same version by name": {a: "v1.2.x", b: "1.2.x", want: 1},
		"release after other":  {a: "master", b: "0.1.x", want: -1},
		"non-release by name":  {a: "develop", b: "master", want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MustBranchName(tt.a).Compare(MustBranchName(tt.b)))
		})
	}
}

func TestCandidatesFromNames_FiltersDedupsAndSorts(t *testing.T) {
	t.Parallel()

	candidates := CandidatesFromNames(
		"master",
		"1.1.x",
		"1.10.x",
		"feature/foo",
		"1.2.x",
		"1.1.x",
		"2.0.x",
		"bad..name",
		"1.2.3",
	)

	assert.Equal(t, []string{"2.0.x", "1.10.x", "1.2.x", "1.1.x"}, candidates.Names())
	assert.Equal(t, 4, candidates.Len())

	for _, b := range candidates.Branches() {
		assert.True(t, b.IsReleaseBranch(), b.String())
	}
}

func TestMergeTargetCandidateBranches_BranchesReturnsCopy(t *testing.T) {
	t.Parallel()

	candidates := CandidatesFromNames("1.1.x", "1.2.x")
	branches := candidates.Branches()
	branches[0] = MustBranchName("9.9.x")

	assert.Equal(t, []string{"1.2.x", "1.1.x"}, candidates.Names())
}

func TestMergeTargetCandidateBranches_Empty(t *testing.T) {
	t.Parallel()

	candidates := CandidatesFromNames("master", "develop")
	assert.Equal(t, 0, candidates.Len())

	assert.Empty(t, candidates.ForVersion(semver.New(1, 0, 0)))
}

func TestMergeTargetCandidateBranches_ForVersion(t *testing.T) {
	t.Parallel()

	candidates := CandidatesFromNames("1.1.x", "1.2.x", "v1.2.x", "1.3.x")
	matches := candidates.ForVersion(semver.New(1, 2, 7))

	require.Len(t, matches, 2)
	assert.Equal(t, "v1.2.x", matches[0].String())
	assert.Equal(t, "1.2.x", matches[1].String())
}
