package errors

import "fmt"

// Common error messages for autorelease.
// These templates ensure consistent, actionable error messages.

// InvalidVersion creates an error for a milestone title that is not MAJOR.MINOR.PATCH.
func InvalidVersion(title string, err error) error {
	return Wrap(err, InvalidMilestoneVersion,
		fmt.Sprintf("milestone title %q is not a valid MAJOR.MINOR.PATCH version", title),
		"Rename the milestone to a plain semantic version, e.g. 1.2.3",
		"Pre-release suffixes, build metadata and a leading 'v' are not accepted",
	)
}

// NoBranchFor creates an error when no release branch matches the milestone.
func NoBranchFor(version string, available []string) *ReleaseError {
	msg := fmt.Sprintf("no release branch found for version %s", version)
	if len(available) > 0 {
		msg = fmt.Sprintf("%s (candidates: %v)", msg, available)
	}
	return New(NoMatchingBranch, msg,
		"Create the maintenance branch for this minor release, e.g. 1.2.x",
		"Release branches must be named MAJOR.MINOR.x",
	)
}

// Fetch creates an error for a failed clone or fetch.
func Fetch(repository string, err error) error {
	return Wrap(err, FetchFailed,
		fmt.Sprintf("fetching %s", repository),
		"Check that GITHUB_TOKEN has read access to the repository",
		"Verify the repository exists and the network is reachable",
	)
}

// MissingChangelog creates an error when the changelog file is absent on the branch.
func MissingChangelog(path, branch string) *ReleaseError {
	return New(ChangelogNotFound,
		fmt.Sprintf("changelog %s not found on branch %s", path, branch),
		"Add a CHANGELOG.md following https://keepachangelog.com to the branch",
		"Or set changelog_file in the configuration",
	)
}

// InvalidSigningKey creates an error for a signing key that cannot be imported.
func InvalidSigningKey(err error) error {
	return Wrap(err, SigningKeyInvalid,
		"importing signing key",
		"SIGNING_SECRET_KEY must hold an ASCII-armored, unencrypted OpenPGP private key",
		"Export one with: gpg --armor --export-secret-keys <key-id>",
	)
}

// Commit creates an error for a failed checkout, stage or commit step.
func Commit(step string, err error) error {
	return Wrap(err, CommitFailed, step,
		"Treat the workspace as unclean and re-fetch before retrying",
	)
}

// MissingSetting creates a configuration error for a required setting.
func MissingSetting(key, envVar string) *ReleaseError {
	return New(Configuration,
		fmt.Sprintf("required setting %q is empty", key),
		fmt.Sprintf("Export %s in the environment", envVar),
		"Or set it in .autorelease.yml",
	)
}

// ConfigParse creates an error for an invalid configuration file.
func ConfigParse(path string, err error) error {
	return Wrap(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML/JSON syntax errors",
		"Remove the file to fall back to defaults",
	)
}

// BadEvent creates an error for an unusable event payload.
func BadEvent(source string, err error) error {
	return Wrap(err, InvalidEvent,
		fmt.Sprintf("loading milestone event from %s", source),
		"Run from a workflow triggered by 'milestone: types: [closed]'",
		"Or pass --repo and --milestone to load the milestone from the API",
	)
}
