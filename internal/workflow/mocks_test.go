package workflow

import (
	"context"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	"github.com/ariel-frischer/autorelease/internal/event"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/semver"
)

// MockEventLoader returns a configured event and records calls.
type MockEventLoader struct {
	Event event.MilestoneClosedEvent
	Err   error
	Calls int
}

func (m *MockEventLoader) Load(context.Context) (event.MilestoneClosedEvent, error) {
	m.Calls++
	return m.Event, m.Err
}

// FetchCall records a call to Fetch
type FetchCall struct {
	URL  string
	Path string
}

// MockFetcher records fetches and returns a configured error.
type MockFetcher struct {
	Err   error
	Calls []FetchCall
}

// WithError configures the mock to fail every fetch
func (m *MockFetcher) WithError(err error) *MockFetcher {
	m.Err = err
	return m
}

func (m *MockFetcher) Fetch(_ context.Context, remoteURL, path string) error {
	m.Calls = append(m.Calls, FetchCall{URL: remoteURL, Path: path})
	return m.Err
}

// MockBranchLister returns configured candidates and records the
// workspaces it was asked about.
type MockBranchLister struct {
	Names []string
	Err   error
	Calls []string
}

func (m *MockBranchLister) MergeTargetCandidateBranches(_ context.Context, path string) (git.MergeTargetCandidateBranches, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return git.MergeTargetCandidateBranches{}, m.Err
	}
	return git.CandidatesFromNames(m.Names...), nil
}

// BumpCall records a call to Bump
type BumpCall struct {
	BumpType  semver.BumpType
	Workspace string
	Version   semver.Version
	Branch    git.BranchName
}

// MockChangelogBumper records bumps. BumpFunc, when set, decides the result.
type MockChangelogBumper struct {
	Err      error
	BumpFunc func(BumpCall) (changelog.Result, error)
	Calls    []BumpCall
}

// WithError configures the mock to fail every bump
func (m *MockChangelogBumper) WithError(err error) *MockChangelogBumper {
	m.Err = err
	return m
}

func (m *MockChangelogBumper) Bump(
	_ context.Context,
	bumpType semver.BumpType,
	workspace string,
	version semver.Version,
	branch git.BranchName,
) (changelog.Result, error) {
	call := BumpCall{BumpType: bumpType, Workspace: workspace, Version: version, Branch: branch}
	m.Calls = append(m.Calls, call)
	if m.BumpFunc != nil {
		return m.BumpFunc(call)
	}
	if m.Err != nil {
		return changelog.Result{}, m.Err
	}
	return changelog.Result{
		Commit:  git.CommitRef{Hash: "0123456789abcdef0123456789abcdef01234567", Branch: branch},
		Version: version.Bump(bumpType),
		Changed: true,
	}, nil
}
