// Package event loads the "milestone closed" event that triggers a changelog
// bump, either from a GitHub Actions event payload on disk or from the GitHub
// REST API.
package event

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v52/github"

	"github.com/ariel-frischer/autorelease/internal/semver"
)

// ActionClosed is the webhook action of a closed milestone.
const ActionClosed = "closed"

// MilestoneClosedEvent identifies a closed milestone of a repository.
type MilestoneClosedEvent struct {
	owner  string
	name   string
	title  string
	number int
}

// NewMilestoneClosedEvent validates and builds an event.
func NewMilestoneClosedEvent(owner, name, title string, number int) (MilestoneClosedEvent, error) {
	switch {
	case strings.TrimSpace(owner) == "":
		return MilestoneClosedEvent{}, fmt.Errorf("repository owner is empty")
	case strings.TrimSpace(name) == "":
		return MilestoneClosedEvent{}, fmt.Errorf("repository name is empty")
	case strings.ContainsAny(owner+name, "/ "):
		return MilestoneClosedEvent{}, fmt.Errorf("invalid repository %q", owner+"/"+name)
	case number <= 0:
		return MilestoneClosedEvent{}, fmt.Errorf("milestone number must be positive, got %d", number)
	}
	return MilestoneClosedEvent{owner: owner, name: name, title: title, number: number}, nil
}

// FromEventJSON parses a GitHub "milestone" webhook payload. The payload
// action must be "closed".
func FromEventJSON(data []byte) (MilestoneClosedEvent, error) {
	var payload github.MilestoneEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return MilestoneClosedEvent{}, fmt.Errorf("decoding milestone event: %w", err)
	}

	if action := payload.GetAction(); action != ActionClosed {
		return MilestoneClosedEvent{}, fmt.Errorf("milestone event action is %q, expected %q", action, ActionClosed)
	}
	if payload.Milestone == nil {
		return MilestoneClosedEvent{}, fmt.Errorf("milestone event has no milestone")
	}
	if payload.Repo == nil {
		return MilestoneClosedEvent{}, fmt.Errorf("milestone event has no repository")
	}

	owner, name := repositoryOwnerAndName(payload.Repo)
	return NewMilestoneClosedEvent(owner, name, payload.Milestone.GetTitle(), payload.Milestone.GetNumber())
}

// repositoryOwnerAndName prefers the owner login and falls back to the full
// name when the payload omits the owner object.
func repositoryOwnerAndName(repo *github.Repository) (string, string) {
	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()
	if owner != "" && name != "" {
		return owner, name
	}
	if o, n, ok := strings.Cut(repo.GetFullName(), "/"); ok {
		return o, n
	}
	return owner, name
}

// ParseRepository splits "owner/name".
func ParseRepository(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", fullName)
	}
	return owner, name, nil
}

func (e MilestoneClosedEvent) RepositoryOwner() string { return e.owner }
func (e MilestoneClosedEvent) RepositoryName() string  { return e.name }
func (e MilestoneClosedEvent) MilestoneTitle() string  { return e.title }
func (e MilestoneClosedEvent) MilestoneNumber() int    { return e.number }

// FullName returns "owner/name".
func (e MilestoneClosedEvent) FullName() string {
	return e.owner + "/" + e.name
}

// Version parses the milestone title as a release version.
func (e MilestoneClosedEvent) Version() (semver.Version, error) {
	return semver.FromMilestoneTitle(e.title)
}

// IsZero reports whether e was never constructed.
func (e MilestoneClosedEvent) IsZero() bool {
	return e.number == 0
}
