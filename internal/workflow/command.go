// Package workflow runs the changelog bump for a closed milestone: load the
// event, fetch the repository, resolve the release branch and bump its
// changelog with a signed commit.
// Related: internal/git/resolve.go, internal/changelog/bump.go
// Tags: workflow, orchestrator, state-machine, release
package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/event"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/semver"
)

// Exit statuses returned by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// EventLoader supplies the milestone that triggered the run.
type EventLoader interface {
	Load(ctx context.Context) (event.MilestoneClosedEvent, error)
}

// Fetcher brings every branch of remoteURL into path.
type Fetcher interface {
	Fetch(ctx context.Context, remoteURL, path string) error
}

// BranchLister lists the release branches available in a workspace.
type BranchLister interface {
	MergeTargetCandidateBranches(ctx context.Context, path string) (git.MergeTargetCandidateBranches, error)
}

// ChangelogBumper opens the next release section on branch and commits it.
type ChangelogBumper interface {
	Bump(ctx context.Context, bumpType semver.BumpType, workspace string, version semver.Version, branch git.BranchName) (changelog.Result, error)
}

// Outcome summarizes a successful run.
type Outcome struct {
	Event   event.MilestoneClosedEvent
	Version semver.Version
	Branch  git.BranchName
	Result  changelog.Result
}

// BumpChangelogForReleaseBranch bumps the changelog of the release branch
// matching a closed milestone. A command value runs once.
type BumpChangelogForReleaseBranch struct {
	Events   EventLoader
	Fetcher  Fetcher
	Branches BranchLister
	Bumper   ChangelogBumper

	// Token authenticates the fetch URL.
	Token string
	// Workspace is the directory the repository is fetched into.
	Workspace string
	// Timeout is only used to describe deadline errors.
	Timeout time.Duration

	Stdout io.Writer
	Stderr io.Writer

	state State
}

// State returns the last state the command reached.
func (c *BumpChangelogForReleaseBranch) State() State {
	return c.state
}

func (c *BumpChangelogForReleaseBranch) transition(to State) {
	logDebug("[workflow] %s -> %s", c.state, to)
	c.state = to
}

func (c *BumpChangelogForReleaseBranch) fail(err error) (Outcome, error) {
	c.transition(StateFailed)
	return Outcome{}, err
}

// Run executes the pipeline, prints the outcome and returns the exit status:
// ExitSuccess, or ExitFailure after printing the error on Stderr.
func (c *BumpChangelogForReleaseBranch) Run(ctx context.Context) int {
	outcome, err := c.Execute(ctx)
	if err != nil {
		relerrors.FprintError(c.stderr(), err)
		return ExitFailure
	}
	c.printSummary(outcome)
	return ExitSuccess
}

// Execute runs Idle -> EventLoaded -> RepoFetched -> BranchResolved -> Done.
// Any failure moves the command to StateFailed and is returned with its
// error kind.
func (c *BumpChangelogForReleaseBranch) Execute(ctx context.Context) (Outcome, error) {
	if c.state != StateIdle {
		return Outcome{}, fmt.Errorf("command already ran (state %s)", c.state)
	}

	ev, err := c.Events.Load(ctx)
	if err != nil {
		return c.fail(classify(err, relerrors.InvalidEvent, "loading milestone event", c.Timeout))
	}
	version, err := ev.Version()
	if err != nil {
		return c.fail(err)
	}
	c.transition(StateEventLoaded)
	logDebug("[workflow] milestone %q of %s closed", ev.MilestoneTitle(), ev.FullName())

	remoteURL := RepositoryURL(c.Token, ev.RepositoryOwner(), ev.RepositoryName())
	if err := c.Fetcher.Fetch(ctx, remoteURL, c.Workspace); err != nil {
		if relerrors.As(err) == nil {
			err = relerrors.Fetch(ev.FullName(), err)
		}
		return c.fail(classify(err, relerrors.FetchFailed, "fetching "+ev.FullName(), c.Timeout))
	}
	c.transition(StateRepoFetched)

	candidates, err := c.Branches.MergeTargetCandidateBranches(ctx, c.Workspace)
	if err != nil {
		return c.fail(classify(err, relerrors.FetchFailed, "listing branches", c.Timeout))
	}
	branch, err := git.Resolve(candidates, version)
	if err != nil {
		return c.fail(err)
	}
	c.transition(StateBranchResolved)
	logDebug("[workflow] %s targets %s", version, branch)

	result, err := c.Bumper.Bump(ctx, semver.BumpPatch, c.Workspace, version, branch)
	if err != nil {
		return c.fail(classify(err, relerrors.CommitFailed, "bumping changelog", c.Timeout))
	}
	c.transition(StateDone)

	return Outcome{Event: ev, Version: version, Branch: branch, Result: result}, nil
}

func (c *BumpChangelogForReleaseBranch) printSummary(o Outcome) {
	w := c.stdout()
	if !o.Result.Changed {
		fmt.Fprintf(w, "%s changelog on %s already has a %s section; nothing to commit\n",
			color.YellowString("•"), o.Branch, o.Result.Version)
		return
	}
	fmt.Fprintf(w, "%s bumped changelog on %s to %s (%s)\n",
		color.GreenString("✓"), o.Branch, o.Result.Version, o.Result.Commit.Short())
}

func (c *BumpChangelogForReleaseBranch) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *BumpChangelogForReleaseBranch) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}

var debugLogger func(format string, args ...any)

// SetDebugLogger installs a logger for debug output.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
