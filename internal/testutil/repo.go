// Package testutil provides test utilities and helpers for autorelease tests:
// scratch git repositories built with go-git and throwaway OpenPGP keys.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// DefaultBranch is the branch go-git's PlainInit points HEAD at.
const DefaultBranch = "master"

// Repo is a scratch repository rooted in a test temp directory.
type Repo struct {
	t    testing.TB
	Path string
	Git  *git.Repository
}

// NewRepo initializes a repository with one commit on DefaultBranch.
func NewRepo(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	r := &Repo{t: t, Path: dir, Git: repo}
	r.Commit("Initial commit", map[string]string{"README.md": "# test\n"})
	return r
}

// WriteFile writes content to rel inside the worktree without staging it.
func (r *Repo) WriteFile(rel, content string) {
	r.t.Helper()

	full := filepath.Join(r.Path, rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

// ReadFile returns the worktree content of rel.
func (r *Repo) ReadFile(rel string) string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.Path, rel))
	require.NoError(r.t, err)
	return string(data)
}

// Commit writes files, stages them and commits on the current branch.
func (r *Repo) Commit(message string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)

	for rel, content := range files {
		r.WriteFile(rel, content)
		_, err := wt.Add(rel)
		require.NoError(r.t, err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		},
		AllowEmptyCommits: len(files) == 0,
	})
	require.NoError(r.t, err)
	return hash
}

// Checkout switches to branch, creating it from HEAD when create is set.
func (r *Repo) Checkout(branch string, create bool) {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)

	opts := &git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}
	if create {
		opts.Hash = r.Head()
	}
	require.NoError(r.t, wt.Checkout(opts))
}

// ReleaseBranch creates branch from DefaultBranch, commits the given files
// on it and switches back to DefaultBranch.
func (r *Repo) ReleaseBranch(branch string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	r.Checkout(DefaultBranch, false)
	r.Checkout(branch, true)
	hash := r.Head()
	if len(files) > 0 {
		hash = r.Commit("Prepare "+branch, files)
	}
	r.Checkout(DefaultBranch, false)
	return hash
}

// RemoteBranch creates refs/remotes/<remote>/<branch> pointing at hash.
func (r *Repo) RemoteBranch(remote, branch string, hash plumbing.Hash) {
	r.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)
	require.NoError(r.t, r.Git.Storer.SetReference(ref))
}

// DeleteBranch removes the local branch ref.
func (r *Repo) DeleteBranch(branch string) {
	r.t.Helper()

	require.NoError(r.t, r.Git.Storer.RemoveReference(plumbing.NewBranchReferenceName(branch)))
}

// Head returns the hash HEAD resolves to.
func (r *Repo) Head() plumbing.Hash {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)
	return head.Hash()
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repo) CurrentBranch() string {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)
	require.True(r.t, head.Name().IsBranch(), "HEAD is detached")
	return head.Name().Short()
}

// BranchHead returns the hash of a local branch.
func (r *Repo) BranchHead(branch string) plumbing.Hash {
	r.t.Helper()

	ref, err := r.Git.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(r.t, err)
	return ref.Hash()
}

// CommitCount returns the number of commits reachable from branch.
func (r *Repo) CommitCount(branch string) int {
	r.t.Helper()

	iter, err := r.Git.Log(&git.LogOptions{From: r.BranchHead(branch)})
	require.NoError(r.t, err)

	count := 0
	require.NoError(r.t, iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	}))
	return count
}
