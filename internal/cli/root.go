// Package cli implements the autorelease command line.
// Related: internal/workflow/command.go, internal/config/config.go
// Tags: cli, cobra, root, commands
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/event"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/gpg"
	"github.com/ariel-frischer/autorelease/internal/workflow"
)

// Command groups
const (
	GroupRelease = "release"
	GroupInfo    = "info"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "autorelease",
	Short: "Open the next changelog section on a release branch when a milestone closes",
	Long: `autorelease reacts to a closed GitHub milestone titled MAJOR.MINOR.PATCH.

It fetches the repository, picks the MAJOR.MINOR.x release branch matching
the milestone, opens the next patch section in CHANGELOG.md and commits the
change with a GPG signature.

Settings come from .autorelease.yml, AUTORELEASE_* variables and the
variables GitHub Actions provides (GITHUB_TOKEN, GITHUB_EVENT_PATH,
GITHUB_WORKSPACE), plus SIGNING_SECRET_KEY.`,
	Example: `  # Run from a workflow triggered by 'milestone: types: [closed]'
  autorelease bump-changelog

  # Re-run by hand for milestone #7 of foo/bar
  autorelease bump-changelog --repo foo/bar --milestone 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			enableDebugLogging(cmd.ErrOrStderr())
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Information:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: .autorelease.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
}

// Execute runs the root command. Errors other than ExitError are printed
// before being returned.
func Execute() error {
	err := rootCmd.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		relerrors.PrintError(err)
	}
	return err
}

func enableDebugLogging(w io.Writer) {
	logger := func(format string, args ...any) {
		fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
	debugLogger = logger
	git.SetDebugLogger(logger)
	gpg.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
	event.SetDebugLogger(logger)
	workflow.SetDebugLogger(logger)
}

var debugLogger func(format string, args ...any)

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// reportError prints err the way every command reports a failed run and
// returns the matching ExitError.
func reportError(cmd *cobra.Command, err error) error {
	relerrors.FprintError(cmd.ErrOrStderr(), err)
	return NewExitError(ExitFailure)
}
