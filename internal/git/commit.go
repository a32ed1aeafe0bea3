package git

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/gpg"
)

// CommitRef identifies a commit on a branch.
type CommitRef struct {
	Hash   string
	Branch BranchName
}

// Short returns the abbreviated commit hash.
func (r CommitRef) Short() string {
	if len(r.Hash) > 7 {
		return r.Hash[:7]
	}
	return r.Hash
}

// Author is the identity recorded on release commits.
type Author struct {
	Name  string
	Email string
}

// StagedChanges describes an index ready to be committed.
type StagedChanges struct {
	// RepositoryPath is the worktree root holding the staged index.
	RepositoryPath string
	// Message is the full commit message.
	Message string
}

// CommitSigner turns staged changes into a GPG-signed commit.
type CommitSigner struct {
	Author Author
	// Now supplies the commit timestamp; time.Now when nil.
	Now func() time.Time
}

func (s CommitSigner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sign commits the staged index at staged.RepositoryPath, signed with key.
// A zero key is a SigningKeyInvalid error; an empty index or any go-git
// failure is a CommitFailed error.
func (s CommitSigner) Sign(ctx context.Context, key gpg.SigningKey, staged StagedChanges) (CommitRef, error) {
	if key.IsZero() {
		return CommitRef{}, relerrors.InvalidSigningKey(fmt.Errorf("no signing key imported"))
	}
	if err := ctx.Err(); err != nil {
		return CommitRef{}, relerrors.Commit("signing commit", err)
	}

	repo, err := openRepo(staged.RepositoryPath)
	if err != nil {
		return CommitRef{}, relerrors.Commit("signing commit", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return CommitRef{}, relerrors.Commit("signing commit", fmt.Errorf("getting worktree: %w", err))
	}

	if err := requireStagedChanges(worktree); err != nil {
		return CommitRef{}, relerrors.Commit("signing commit", err)
	}

	hash, err := worktree.Commit(staged.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.Author.Name,
			Email: s.Author.Email,
			When:  s.now(),
		},
		SignKey: key.Entity(),
	})
	if err != nil {
		return CommitRef{}, relerrors.Commit("signing commit", err)
	}

	ref := CommitRef{Hash: hash.String()}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		if b, err := NewBranchName(head.Name().Short()); err == nil {
			ref.Branch = b
		}
	}

	logDebug("[git] Sign: created %s on %s with key %s", ref.Short(), ref.Branch, key.KeyID())
	return ref, nil
}

// requireStagedChanges fails when the index matches HEAD.
func requireStagedChanges(worktree *git.Worktree) error {
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("reading worktree status: %w", err)
	}
	for _, st := range status {
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			return nil
		}
	}
	return fmt.Errorf("nothing staged to commit")
}

// StageFile adds relPath, relative to the worktree root, to the index.
func StageFile(path, relPath string) error {
	repo, err := openRepo(path)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if _, err := worktree.Add(relPath); err != nil {
		return fmt.Errorf("staging %s: %w", relPath, err)
	}
	return nil
}

// HeadCommit returns the commit HEAD points at.
func HeadCommit(path string) (CommitRef, error) {
	repo, err := openRepo(path)
	if err != nil {
		return CommitRef{}, err
	}

	head, err := repo.Head()
	if err != nil {
		return CommitRef{}, fmt.Errorf("getting HEAD reference: %w", err)
	}

	ref := CommitRef{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		if b, err := NewBranchName(head.Name().Short()); err == nil {
			ref.Branch = b
		}
	}
	return ref, nil
}

// VerifyCommit checks the signature of commit hash against an armored
// public key ring and returns the signer's key id.
func VerifyCommit(path, hash, armoredKeyRing string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", hash, err)
	}
	if commit.PGPSignature == "" {
		return "", fmt.Errorf("commit %s is not signed", hash)
	}

	entity, err := commit.Verify(armoredKeyRing)
	if err != nil {
		return "", fmt.Errorf("verifying commit %s: %w", hash, err)
	}
	return fmt.Sprintf("%016X", entity.PrimaryKey.KeyId), nil
}

// CommitMessage returns the full message of commit hash.
func CommitMessage(path, hash string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return commit.Message, nil
}
