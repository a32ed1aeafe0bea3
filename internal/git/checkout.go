package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// Checkout switches the worktree at path to branch.
// When only a remote-tracking ref exists, a local branch is created from it
// with the remote configured as upstream. An existing local branch that is
// behind its remote-tracking ref is fast-forwarded; one that has diverged
// from it is an error.
func Checkout(path string, branch BranchName) error {
	repo, err := openRepo(path)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	localRef := plumbing.NewBranchReferenceName(branch.String())
	if _, err := repo.Reference(localRef, false); err == nil {
		logDebug("[git] Checkout: switching to existing branch %s", branch)
		if err := worktree.Checkout(&git.CheckoutOptions{Branch: localRef}); err != nil {
			return fmt.Errorf("checking out %s: %w", branch, err)
		}
		return fastForward(repo, worktree, branch)
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("looking up branch %s: %w", branch, err)
	}

	remoteRef, err := findRemoteRef(repo, branch)
	if err != nil {
		return err
	}

	logDebug("[git] Checkout: creating %s from %s", branch, remoteRef.Name().Short())
	err = worktree.Checkout(&git.CheckoutOptions{
		Hash:   remoteRef.Hash(),
		Branch: localRef,
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("creating branch %s: %w", branch, err)
	}

	remoteName := strings.TrimSuffix(remoteRef.Name().Short(), "/"+branch.String())
	err = repo.CreateBranch(&config.Branch{
		Name:   branch.String(),
		Remote: remoteName,
		Merge:  localRef,
	})
	if err != nil && !errors.Is(err, git.ErrBranchExists) {
		return fmt.Errorf("configuring upstream for %s: %w", branch, err)
	}

	return nil
}

// fastForward moves the checked-out branch to its remote-tracking ref when
// the local tip is an ancestor of it. A branch without a remote-tracking ref,
// or one already ahead of it, is left alone.
func fastForward(repo *git.Repository, worktree *git.Worktree, branch BranchName) error {
	remoteRef, err := findRemoteRef(repo, branch)
	if err != nil {
		// Local-only branch.
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}
	if head.Hash() == remoteRef.Hash() {
		return nil
	}

	local, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading %s: %w", branch, err)
	}
	remote, err := repo.CommitObject(remoteRef.Hash())
	if err != nil {
		return fmt.Errorf("reading %s: %w", remoteRef.Name().Short(), err)
	}

	if ahead, err := remote.IsAncestor(local); err != nil {
		return fmt.Errorf("comparing %s with %s: %w", branch, remoteRef.Name().Short(), err)
	} else if ahead {
		logDebug("[git] Checkout: %s is ahead of %s", branch, remoteRef.Name().Short())
		return nil
	}
	behind, err := local.IsAncestor(remote)
	if err != nil {
		return fmt.Errorf("comparing %s with %s: %w", branch, remoteRef.Name().Short(), err)
	}
	if !behind {
		return fmt.Errorf("branch %s has diverged from %s", branch, remoteRef.Name().Short())
	}

	logDebug("[git] Checkout: fast-forwarding %s to %s", branch, remoteRef.Hash())
	if err := worktree.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("fast-forwarding %s: %w", branch, err)
	}
	return nil
}

// findRemoteRef returns refs/remotes/<remote>/<branch>, preferring DefaultRemote.
func findRemoteRef(repo *git.Repository, branch BranchName) (*plumbing.Reference, error) {
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(DefaultRemote, branch.String()), true)
	if err == nil {
		return ref, nil
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}
	for _, r := range remotes {
		ref, err := repo.Reference(plumbing.NewRemoteReferenceName(r.Config().Name, branch.String()), true)
		if err == nil {
			return ref, nil
		}
	}

	return nil, fmt.Errorf("branch %s not found locally or on any remote", branch)
}
