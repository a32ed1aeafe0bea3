package config

import "time"

// DefaultTimeout bounds a whole bump run: fetch, checkout and commit.
const DefaultTimeout = 10 * time.Minute

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file":   "CHANGELOG.md",
		"git_author_name":  "github-actions[bot]",
		"git_author_email": "41898282+github-actions[bot]@users.noreply.github.com",
		// timeout: 0 disables the deadline.
		"timeout": DefaultTimeout.String(),
		// Credentials and locations come from the environment only.
		"github_token":       "",
		"signing_secret_key": "",
		"workspace":          "",
		"event_path":         "",
	}
}
