package config

import (
	"time"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// Environment is the loaded, validated configuration of one run.
type Environment struct {
	cfg  Configuration
	path string
}

// NewEnvironment wraps an already built configuration.
func NewEnvironment(cfg Configuration) *Environment {
	return &Environment{cfg: cfg}
}

func (e *Environment) GitHubToken() string      { return e.cfg.GitHubToken }
func (e *Environment) SigningSecretKey() string { return e.cfg.SigningSecretKey }
func (e *Environment) WorkspacePath() string    { return e.cfg.Workspace }
func (e *Environment) EventPath() string        { return e.cfg.EventPath }
func (e *Environment) ChangelogFile() string    { return e.cfg.ChangelogFile }
func (e *Environment) AuthorName() string       { return e.cfg.GitAuthorName }
func (e *Environment) AuthorEmail() string      { return e.cfg.GitAuthorEmail }
func (e *Environment) Timeout() time.Duration   { return e.cfg.Timeout }

// ConfigFile returns the config file that was loaded, or "" when none was.
func (e *Environment) ConfigFile() string {
	return e.path
}

// Configuration returns a copy of the underlying settings.
func (e *Environment) Configuration() Configuration {
	return e.cfg
}

// RequireForBump checks the settings the bump command cannot run without.
func (e *Environment) RequireForBump() error {
	if e.cfg.GitHubToken == "" {
		return relerrors.MissingSetting("github_token", "GITHUB_TOKEN")
	}
	if e.cfg.SigningSecretKey == "" {
		return relerrors.MissingSetting("signing_secret_key", "SIGNING_SECRET_KEY")
	}
	return nil
}
