package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultRemote is the remote name used for the fetched repository.
const DefaultRemote = "origin"

// Cloner brings a remote repository into a local workspace.
type Cloner struct {
	// RemoteName overrides DefaultRemote when set.
	RemoteName string
}

func (c Cloner) remote() string {
	if c.RemoteName != "" {
		return c.RemoteName
	}
	return DefaultRemote
}

// Fetch makes every branch of remoteURL available under path.
// An empty or missing path receives a full clone. When path already holds a
// repository, its remote is pointed at remoteURL and all branches are fetched
// into refs/remotes/<remote>/*. Credentials embedded in remoteURL are used
// for HTTP basic auth.
func (c Cloner) Fetch(ctx context.Context, remoteURL, path string) error {
	auth, err := authFromURL(remoteURL)
	if err != nil {
		return err
	}

	if isRepository(path) {
		return c.fetchExisting(ctx, remoteURL, path, auth)
	}
	return c.clone(ctx, remoteURL, path, auth)
}

func (c Cloner) clone(ctx context.Context, remoteURL, path string, auth transport.AuthMethod) error {
	logDebug("[git] cloning %s into %s", redact(remoteURL), path)

	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:        remoteURL,
		Auth:       auth,
		RemoteName: c.remote(),
		Tags:       git.NoTags,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", redact(remoteURL), err)
	}
	return nil
}

func (c Cloner) fetchExisting(ctx context.Context, remoteURL, path string, auth transport.AuthMethod) error {
	repo, err := openRepo(path)
	if err != nil {
		return err
	}

	if err := repo.DeleteRemote(c.remote()); err != nil && !errors.Is(err, git.ErrRemoteNotFound) {
		return fmt.Errorf("removing remote %s: %w", c.remote(), err)
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name:  c.remote(),
		URLs:  []string{remoteURL},
		Fetch: []config.RefSpec{remoteRefSpec(c.remote())},
	})
	if err != nil {
		return fmt.Errorf("creating remote %s: %w", c.remote(), err)
	}

	logDebug("[git] fetching %s into %s", redact(remoteURL), path)
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: c.remote(),
		Auth:       auth,
		Prune:      true,
		RefSpecs:   []config.RefSpec{remoteRefSpec(c.remote())},
	})

	// "already up-to-date" is not an error
	if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return fmt.Errorf("fetching %s: %w", redact(remoteURL), err)
}

func remoteRefSpec(remote string) config.RefSpec {
	return config.RefSpec("+refs/heads/*:refs/remotes/" + remote + "/*")
}

// isRepository reports whether path contains a .git directory.
func isRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// authFromURL turns user:password URL credentials into basic auth.
// Non-HTTP URLs (local paths, file://) need no auth.
func authFromURL(remoteURL string) (transport.AuthMethod, error) {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parsing remote URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, nil
	}
	if u.User == nil {
		return nil, nil
	}

	password, _ := u.User.Password()
	return &http.BasicAuth{
		Username: u.User.Username(),
		Password: password,
	}, nil
}

// redact strips credentials from a URL for logs and error messages.
func redact(remoteURL string) string {
	u, err := url.Parse(remoteURL)
	if err != nil || u.User == nil {
		return remoteURL
	}
	u.User = url.User("***")
	return u.String()
}
