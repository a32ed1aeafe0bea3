package event

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/google/go-github/v52/github"
	"golang.org/x/oauth2"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// FileLoader reads the event payload GitHub Actions writes to
// GITHUB_EVENT_PATH.
type FileLoader struct {
	Path string
}

// Load reads and parses the payload at l.Path.
func (l FileLoader) Load(ctx context.Context) (MilestoneClosedEvent, error) {
	if err := ctx.Err(); err != nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.Path, err)
	}
	if l.Path == "" {
		return MilestoneClosedEvent{}, relerrors.BadEvent("event file", fmt.Errorf("no event path configured"))
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.Path, fmt.Errorf("reading event file: %w", err))
	}

	ev, err := FromEventJSON(data)
	if err != nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.Path, err)
	}
	logDebug("[event] loaded milestone %q (#%d) of %s from %s", ev.title, ev.number, ev.FullName(), l.Path)
	return ev, nil
}

// MilestoneGetter is the subset of the GitHub issues API the APILoader
// needs. *github.IssuesService satisfies it.
type MilestoneGetter interface {
	GetMilestone(ctx context.Context, owner, repo string, number int) (*github.Milestone, *github.Response, error)
}

// APILoader fetches a milestone through the GitHub REST API. It lets a
// maintainer re-run a bump by hand for a milestone closed earlier.
type APILoader struct {
	Milestones MilestoneGetter
	Owner      string
	Repo       string
	Number     int
}

// NewAPILoader builds an APILoader authenticated with token. An empty token
// makes unauthenticated requests.
func NewAPILoader(ctx context.Context, token, owner, repo string, number int) *APILoader {
	return &APILoader{
		Milestones: newGitHubClient(ctx, token).Issues,
		Owner:      owner,
		Repo:       repo,
		Number:     number,
	}
}

func newGitHubClient(ctx context.Context, token string) *github.Client {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return github.NewClient(httpClient)
}

func (l *APILoader) source() string {
	return fmt.Sprintf("GitHub API (%s/%s milestone #%d)", l.Owner, l.Repo, l.Number)
}

// Load fetches the milestone and refuses it unless it is closed.
func (l *APILoader) Load(ctx context.Context) (MilestoneClosedEvent, error) {
	milestone, _, err := l.Milestones.GetMilestone(ctx, l.Owner, l.Repo, l.Number)
	if err != nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.source(), fmt.Errorf("fetching milestone: %w", err))
	}
	if milestone == nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.source(), fmt.Errorf("milestone not found"))
	}
	if state := milestone.GetState(); state != ActionClosed {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.source(),
			fmt.Errorf("milestone %q is %s, expected closed", milestone.GetTitle(), state))
	}

	number := milestone.GetNumber()
	if number == 0 {
		number = l.Number
	}
	ev, err := NewMilestoneClosedEvent(l.Owner, l.Repo, milestone.GetTitle(), number)
	if err != nil {
		return MilestoneClosedEvent{}, relerrors.BadEvent(l.source(), err)
	}
	logDebug("[event] loaded milestone %q (#%d) of %s from the API", ev.title, ev.number, ev.FullName())
	return ev, nil
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
