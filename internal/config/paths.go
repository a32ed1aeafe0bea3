package config

import (
	"path/filepath"
	"strings"
)

// ProjectConfigPath returns the path to the project-level config file.
// This is always .autorelease.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".autorelease.yml"
}

// ProjectConfigCandidates lists the project config files looked up when no
// path is given, in order of preference.
func ProjectConfigCandidates() []string {
	return []string{ProjectConfigPath(), ".autorelease.yaml", ".autorelease.json"}
}

// isJSONPath reports whether path should be parsed as JSON rather than YAML.
func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
