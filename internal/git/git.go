// Package git provides the repository operations behind a release branch
// changelog bump: cloning or fetching the repository, listing and resolving
// release branches, checking out the target branch and creating signed
// commits. Everything runs in-process on top of the go-git library; no git
// CLI is required.
package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository rooted at path.
func openRepo(path string) (*git.Repository, error) {
	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// BranchInfo contains metadata about a git branch
type BranchInfo struct {
	Name     string
	IsRemote bool
	Remote   string // Remote name (e.g., "origin") if IsRemote is true
}

// Lister reads branch refs from a local workspace.
type Lister struct{}

// MergeTargetCandidateBranches lists local and remote-tracking branches of
// the repository at path and keeps the release branches among them.
func (Lister) MergeTargetCandidateBranches(ctx context.Context, path string) (MergeTargetCandidateBranches, error) {
	if err := ctx.Err(); err != nil {
		return MergeTargetCandidateBranches{}, err
	}

	branches, err := AllBranches(path)
	if err != nil {
		return MergeTargetCandidateBranches{}, err
	}

	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}

	candidates := CandidatesFromNames(names...)
	logDebug("[git] MergeTargetCandidateBranches: %d of %d branches are release branches", candidates.Len(), len(names))
	return candidates, nil
}

// AllBranches returns the local and remote branches of the repository at
// path, sorted by name. HEAD pointers are skipped and a branch present both
// locally and on a remote is reported once, as local.
func AllBranches(path string) ([]BranchInfo, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return allBranches(repo)
}

func allBranches(repo *git.Repository) ([]BranchInfo, error) {
	seen := make(map[string]bool)
	var branches []BranchInfo

	branches, err := collectLocalBranches(repo, branches, seen)
	if err != nil {
		return nil, err
	}

	branches, err = collectRemoteBranches(repo, branches, seen)
	if err != nil {
		return nil, err
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	logDebug("[git] AllBranches: found %d branches", len(branches))
	return branches, nil
}

// collectLocalBranches iterates local branches and adds them to the list.
func collectLocalBranches(repo *git.Repository, branches []BranchInfo, seen map[string]bool) ([]BranchInfo, error) {
	branchIter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing local branches: %w", err)
	}

	err = branchIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if strings.Contains(name, "HEAD") {
			return nil
		}
		branches = addBranchWithDedup(branches, BranchInfo{Name: name}, seen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating local branches: %w", err)
	}

	return branches, nil
}

// collectRemoteBranches iterates remote-tracking branches and adds them to the list.
func collectRemoteBranches(repo *git.Repository, branches []BranchInfo, seen map[string]bool) ([]BranchInfo, error) {
	refIter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}

		fullName := ref.Name().Short() // e.g., "origin/1.2.x"
		if strings.Contains(fullName, "HEAD") {
			return nil
		}

		parts := strings.SplitN(fullName, "/", 2)
		if len(parts) != 2 {
			return nil
		}

		info := BranchInfo{
			Name:     parts[1],
			IsRemote: true,
			Remote:   parts[0],
		}
		branches = addBranchWithDedup(branches, info, seen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating remote branches: %w", err)
	}

	return branches, nil
}

// addBranchWithDedup adds a branch, handling duplicates (prefer local over remote).
// If branch name already seen and new branch is local, replaces the existing
// remote branch in-place via linear scan. Otherwise appends if not seen.
func addBranchWithDedup(branches []BranchInfo, info BranchInfo, seen map[string]bool) []BranchInfo {
	key := info.Name

	if seen[key] && !info.IsRemote {
		for i, b := range branches {
			if b.Name == info.Name && b.IsRemote {
				branches[i] = info
				break
			}
		}
		return branches
	}

	if seen[key] {
		return branches
	}

	seen[key] = true
	return append(branches, info)
}
