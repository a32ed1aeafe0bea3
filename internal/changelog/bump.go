package changelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/gpg"
	"github.com/ariel-frischer/autorelease/internal/semver"
)

// DefaultFileName is the changelog file looked up at the repository root.
const DefaultFileName = "CHANGELOG.md"

// Signer turns staged changes into a signed commit.
type Signer interface {
	Sign(ctx context.Context, key gpg.SigningKey, staged git.StagedChanges) (git.CommitRef, error)
}

// Result describes the outcome of a bump.
type Result struct {
	// Commit is the new signed commit, or the untouched branch head when
	// nothing changed.
	Commit  git.CommitRef
	Version semver.Version
	Changed bool
}

// Bumper opens the next release section in the changelog of a release
// branch and commits it.
type Bumper struct {
	FileName string
	Signer   Signer
	Key      gpg.SigningKey
}

func (b *Bumper) fileName() string {
	if b.FileName != "" {
		return b.FileName
	}
	return DefaultFileName
}

// CommitMessage returns the message used for the bump commit of next.
func CommitMessage(next semver.Version) string {
	return fmt.Sprintf("Bumps changelog version to %s", next)
}

// BumpContent opens a release section for next in content. It reports false
// and returns content unchanged when a section for next already exists.
func BumpContent(content []byte, next semver.Version) ([]byte, bool, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, false, err
	}
	if doc.HasVersion(next) {
		return content, false, nil
	}
	doc.OpenRelease(next)
	return doc.Bytes(), true, nil
}

// Bump checks out branch in the workspace, opens the section for
// version bumped by bumpType and commits the result signed with b.Key.
func (b *Bumper) Bump(
	ctx context.Context,
	bumpType semver.BumpType,
	workspace string,
	version semver.Version,
	branch git.BranchName,
) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, relerrors.Commit("bumping changelog", err)
	}

	next := version.Bump(bumpType)
	logDebug("bumping %s on %s: %s -> %s (%s)", b.fileName(), branch, version, next, bumpType)

	if err := git.Checkout(workspace, branch); err != nil {
		return Result{}, relerrors.Commit(fmt.Sprintf("checking out %s", branch), err)
	}

	path := filepath.Join(workspace, filepath.FromSlash(b.fileName()))
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{}, relerrors.MissingChangelog(b.fileName(), branch.String())
	}
	if err != nil {
		return Result{}, relerrors.Commit("reading changelog", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, relerrors.Commit("reading changelog", err)
	}

	updated, changed, err := BumpContent(content, next)
	if err != nil {
		return Result{}, relerrors.Commit("parsing changelog", err)
	}

	if !changed {
		logDebug("%s already has a section for %s", b.fileName(), next)
		head, err := git.HeadCommit(workspace)
		if err != nil {
			return Result{}, relerrors.Commit("reading branch head", err)
		}
		return Result{Commit: head, Version: next}, nil
	}

	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return Result{}, relerrors.Commit("writing changelog", err)
	}
	if err := git.StageFile(workspace, filepath.ToSlash(b.fileName())); err != nil {
		return Result{}, relerrors.Commit("staging changelog", err)
	}

	ref, err := b.Signer.Sign(ctx, b.Key, git.StagedChanges{
		RepositoryPath: workspace,
		Message:        CommitMessage(next),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Commit: ref, Version: next, Changed: true}, nil
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
