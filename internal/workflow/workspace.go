package workflow

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// RepositoryURL returns the token-authenticated HTTPS clone URL of a GitHub
// repository: https://<token>:x-oauth-basic@github.com/<owner>/<repo>.git.
func RepositoryURL(token, owner, repo string) string {
	u := url.URL{
		Scheme: "https",
		Host:   "github.com",
		Path:   fmt.Sprintf("/%s/%s.git", owner, repo),
	}
	if token != "" {
		u.User = url.UserPassword(token, "x-oauth-basic")
	}
	return u.String()
}

// AcquireWorkspace returns the directory to fetch into and a func that
// releases it. An empty path gets a fresh temporary directory that release
// removes. A given path is created when missing and left in place.
func AcquireWorkspace(path string) (dir string, release func(), err error) {
	if path == "" {
		dir, err := os.MkdirTemp("", "autorelease-*")
		if err != nil {
			return "", nil, fmt.Errorf("creating temporary workspace: %w", err)
		}
		logDebug("[workflow] using temporary workspace %s", dir)
		return dir, func() {
			if err := os.RemoveAll(dir); err != nil {
				logDebug("[workflow] removing workspace %s: %v", dir, err)
			}
		}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolving workspace %s: %w", path, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating workspace %s: %w", abs, err)
	}
	return abs, func() {}, nil
}
