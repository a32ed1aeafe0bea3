// Package config loads autorelease settings using koanf.
// Configuration is loaded with priority: command-line overrides > environment
// variables > config file (.autorelease.yml) > defaults. The config file may
// be YAML or JSON, chosen by its extension.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// EnvPrefix prefixes environment variables that override any config key,
// e.g. AUTORELEASE_CHANGELOG_FILE.
const EnvPrefix = "AUTORELEASE_"

// wellKnownEnv maps the environment variables set by GitHub Actions and git
// to config keys.
var wellKnownEnv = map[string]string{
	"GITHUB_TOKEN":       "github_token",
	"SIGNING_SECRET_KEY": "signing_secret_key",
	"GITHUB_WORKSPACE":   "workspace",
	"GITHUB_EVENT_PATH":  "event_path",
	"GIT_AUTHOR_NAME":    "git_author_name",
	"GIT_AUTHOR_EMAIL":   "git_author_email",
}

// Configuration holds every autorelease setting.
type Configuration struct {
	// GitHubToken authenticates the fetch and API calls (GITHUB_TOKEN).
	GitHubToken string `koanf:"github_token"`
	// SigningSecretKey is the ASCII-armored OpenPGP secret key used to sign
	// the bump commit (SIGNING_SECRET_KEY).
	SigningSecretKey string `koanf:"signing_secret_key"`
	// Workspace is the directory the repository is fetched into
	// (GITHUB_WORKSPACE). Empty means a temporary directory.
	Workspace string `koanf:"workspace"`
	// EventPath is the webhook payload file (GITHUB_EVENT_PATH).
	EventPath string `koanf:"event_path"`

	ChangelogFile  string        `koanf:"changelog_file" validate:"required"`
	GitAuthorName  string        `koanf:"git_author_name" validate:"required"`
	GitAuthorEmail string        `koanf:"git_author_email" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist. When empty the
	// first of ProjectConfigCandidates that exists is used, if any.
	ConfigPath string
	// Overrides are applied last, typically from command-line flags. Empty
	// string values are ignored.
	Overrides map[string]interface{}
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Environment, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadConfigFile(k, path); err != nil {
			return nil, relerrors.ConfigParse(path, err)
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, relerrors.Wrap(err, relerrors.Configuration, "loading environment")
	}

	applyOverrides(k, opts.Overrides)

	cfg, err := finalizeConfig(k, path)
	if err != nil {
		return nil, err
	}
	return &Environment{cfg: *cfg, path: path}, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// resolveConfigPath returns the config file to load, or "" for none.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", relerrors.New(relerrors.Configuration,
				fmt.Sprintf("config file %s does not exist", explicit),
				"Check the --config path",
				"Omit --config to use .autorelease.yml when present",
			)
		}
		return explicit, nil
	}
	for _, candidate := range ProjectConfigCandidates() {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// loadConfigFile validates and loads a YAML or JSON config file
func loadConfigFile(k *koanf.Koanf, path string) error {
	if isJSONPath(path) {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads the well-known variables first so that
// AUTORELEASE_* overrides win. Empty variables are ignored.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue("", ".", wellKnownTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load %s environment config: %w", EnvPrefix, err)
	}
	return nil
}

// wellKnownTransform keeps only the variables listed in wellKnownEnv.
func wellKnownTransform(name, value string) (string, interface{}) {
	key, ok := wellKnownEnv[name]
	if !ok || value == "" {
		return "", nil
	}
	return key, value
}

// envTransform converts environment variable names to config keys
// Example: AUTORELEASE_CHANGELOG_FILE -> changelog_file
func envTransform(name, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), value
}

func applyOverrides(k *koanf.Koanf, overrides map[string]interface{}) {
	for key, value := range overrides {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		k.Set(key, value)
	}
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, relerrors.Wrap(err, relerrors.Configuration, "failed to unmarshal config")
	}

	source := path
	if source == "" {
		source = "config"
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, relerrors.Wrap(err, relerrors.Configuration, "config validation failed",
			"Fix the value in the config file or the matching environment variable",
		)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
