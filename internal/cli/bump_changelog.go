package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	"github.com/ariel-frischer/autorelease/internal/config"
	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/event"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/gpg"
	"github.com/ariel-frischer/autorelease/internal/progress"
	"github.com/ariel-frischer/autorelease/internal/workflow"
)

var (
	bumpWorkspace string
	bumpEventPath string
	bumpRepo      string
	bumpMilestone int
	bumpTimeout   time.Duration
)

var bumpChangelogCmd = &cobra.Command{
	Use:     "bump-changelog",
	Aliases: []string{"bump"},
	Short:   "Open the next patch section on the release branch of a closed milestone",
	Long: `Bump the changelog of the release branch matching a closed milestone.

The milestone comes from the GitHub event payload (GITHUB_EVENT_PATH), or
from the GitHub API when --repo and --milestone are given. Its title must be
MAJOR.MINOR.PATCH. The repository is fetched into the workspace, the
MAJOR.MINOR.x branch is checked out, a "## <next> - TBD" section is opened
in the changelog and the change is committed, signed with
SIGNING_SECRET_KEY. The commit is not pushed.

Running it again for the same milestone commits nothing.`,
	Example: `  # Inside GitHub Actions
  autorelease bump-changelog

  # By hand, for milestone #7 of foo/bar, keeping the checkout
  autorelease bump-changelog --repo foo/bar --milestone 7 --workspace ./checkout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBumpChangelog(cmd)
	},
}

func init() {
	bumpChangelogCmd.GroupID = GroupRelease
	rootCmd.AddCommand(bumpChangelogCmd)

	bumpChangelogCmd.Flags().StringVarP(&bumpWorkspace, "workspace", "w", "", "Directory to fetch the repository into (default: GITHUB_WORKSPACE or a temporary directory)")
	bumpChangelogCmd.Flags().StringVarP(&bumpEventPath, "event", "e", "", "Milestone event payload file (default: GITHUB_EVENT_PATH)")
	bumpChangelogCmd.Flags().StringVar(&bumpRepo, "repo", "", "Load the milestone from the GitHub API for this owner/name repository")
	bumpChangelogCmd.Flags().IntVar(&bumpMilestone, "milestone", 0, "Milestone number to load with --repo")
	bumpChangelogCmd.Flags().DurationVarP(&bumpTimeout, "timeout", "t", 0, "Abort the run after this long (default: timeout setting, 10m)")
}

func runBumpChangelog(cmd *cobra.Command) error {
	overrides := map[string]interface{}{
		"workspace":  bumpWorkspace,
		"event_path": bumpEventPath,
	}
	if cmd.Flags().Changed("timeout") {
		overrides["timeout"] = bumpTimeout.String()
	}

	env, err := config.LoadWithOptions(config.LoadOptions{ConfigPath: configPath, Overrides: overrides})
	if err != nil {
		return reportError(cmd, err)
	}
	if file := env.ConfigFile(); file != "" {
		logDebug("[cli] loaded config from %s", file)
	}
	if err := env.RequireForBump(); err != nil {
		return reportError(cmd, err)
	}

	// Imported before anything is fetched so a bad key fails fast.
	key, err := gpg.ImportKey(env.SigningSecretKey())
	if err != nil {
		return reportError(cmd, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if env.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.Timeout())
		defer cancel()
	}

	loader, err := newEventLoader(ctx, env)
	if err != nil {
		return reportError(cmd, err)
	}

	workspace, release, err := workflow.AcquireWorkspace(env.WorkspacePath())
	if err != nil {
		return reportError(cmd, relerrors.Wrap(err, relerrors.FetchFailed, "preparing workspace"))
	}
	defer release()

	tracker := newTracker(cmd.ErrOrStderr())
	command := &workflow.BumpChangelogForReleaseBranch{
		Events:   loader,
		Fetcher:  trackedFetcher{fetcher: git.Cloner{}, tracker: tracker},
		Branches: git.Lister{},
		Bumper: &changelog.Bumper{
			FileName: env.ChangelogFile(),
			Signer: git.CommitSigner{
				Author: git.Author{Name: env.AuthorName(), Email: env.AuthorEmail()},
			},
			Key: key,
		},
		Token:     env.GitHubToken(),
		Workspace: workspace,
		Timeout:   env.Timeout(),
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	}

	if status := command.Run(ctx); status != workflow.ExitSuccess {
		return NewExitError(status)
	}
	return nil
}

// newEventLoader reads the milestone from the API when --repo or
// --milestone is given and from the event payload file otherwise.
func newEventLoader(ctx context.Context, env *config.Environment) (workflow.EventLoader, error) {
	if bumpRepo == "" && bumpMilestone == 0 {
		return event.FileLoader{Path: env.EventPath()}, nil
	}
	if bumpRepo == "" || bumpMilestone <= 0 {
		return nil, relerrors.New(relerrors.InvalidEvent,
			"--repo and --milestone must be given together",
			"Pass the repository as owner/name and a positive milestone number",
		)
	}

	owner, name, err := event.ParseRepository(bumpRepo)
	if err != nil {
		return nil, relerrors.BadEvent("--repo", err)
	}
	return event.NewAPILoader(ctx, env.GitHubToken(), owner, name, bumpMilestone), nil
}

func newTracker(w io.Writer) *progress.Tracker {
	if f, ok := w.(*os.File); ok {
		return progress.NewTracker(f)
	}
	return progress.NewPlainTracker(w)
}

// trackedFetcher shows fetch progress on the terminal.
type trackedFetcher struct {
	fetcher workflow.Fetcher
	tracker *progress.Tracker
}

func (f trackedFetcher) Fetch(ctx context.Context, remoteURL, path string) error {
	return f.tracker.Track("Fetching repository", func() error {
		return f.fetcher.Fetch(ctx, remoteURL, path)
	})
}
