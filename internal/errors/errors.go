// Package errors provides structured error handling for autorelease.
// Every fatal condition of the release pipeline is reported as a ReleaseError
// carrying a Kind and actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the class of failure that aborted the pipeline.
type Kind int

const (
	// Unknown is used for errors that did not originate in this module.
	Unknown Kind = iota
	// InvalidMilestoneVersion means the milestone title is not MAJOR.MINOR.PATCH.
	InvalidMilestoneVersion
	// NoMatchingBranch means no release branch shares the milestone's major.minor.
	NoMatchingBranch
	// FetchFailed means the repository could not be cloned or fetched.
	FetchFailed
	// ChangelogNotFound means the changelog file is missing from the branch.
	ChangelogNotFound
	// SigningKeyInvalid means the signing key could not be imported.
	SigningKeyInvalid
	// CommitFailed means checkout, staging or commit creation failed.
	CommitFailed
	// Configuration errors are caused by missing or invalid settings.
	Configuration
	// InvalidEvent means the triggering event payload is unusable.
	InvalidEvent
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case InvalidMilestoneVersion:
		return "Invalid Milestone Version"
	case NoMatchingBranch:
		return "No Matching Branch"
	case FetchFailed:
		return "Fetch Failed"
	case ChangelogNotFound:
		return "Changelog Not Found"
	case SigningKeyInvalid:
		return "Signing Key Invalid"
	case CommitFailed:
		return "Commit Failed"
	case Configuration:
		return "Configuration Error"
	case InvalidEvent:
		return "Invalid Event"
	default:
		return "Error"
	}
}

// ReleaseError is a structured error with a kind and remediation guidance.
type ReleaseError struct {
	// Kind is the class of failure.
	Kind Kind
	// Message is a human-readable description of what went wrong.
	Message string
	// Err is the underlying cause, if any.
	Err error
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
}

// Error implements the error interface.
func (e *ReleaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ReleaseError) Unwrap() error {
	return e.Err
}

// New creates a ReleaseError of the given kind.
func New(kind Kind, message string, remediation ...string) *ReleaseError {
	return &ReleaseError{
		Kind:        kind,
		Message:     message,
		Remediation: remediation,
	}
}

// Newf creates a ReleaseError with a formatted message.
func Newf(kind Kind, format string, args ...any) *ReleaseError {
	return &ReleaseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err as a ReleaseError of the given kind.
// Returns nil when err is nil.
func Wrap(err error, kind Kind, message string, remediation ...string) error {
	if err == nil {
		return nil
	}
	return &ReleaseError{
		Kind:        kind,
		Message:     message,
		Err:         err,
		Remediation: remediation,
	}
}

// WithRemediation returns a copy of e with the given remediation steps appended.
func (e *ReleaseError) WithRemediation(steps ...string) *ReleaseError {
	c := *e
	c.Remediation = append(append([]string(nil), e.Remediation...), steps...)
	return &c
}

// As returns the outermost ReleaseError in err's chain, or nil.
func As(err error) *ReleaseError {
	var re *ReleaseError
	if stderrors.As(err, &re) {
		return re
	}
	return nil
}

// KindOf returns the kind of the outermost ReleaseError in err's chain.
// Errors that are not ReleaseErrors report Unknown.
func KindOf(err error) Kind {
	if re := As(err); re != nil {
		return re.Kind
	}
	return Unknown
}

// Is reports whether any ReleaseError in err's chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var re *ReleaseError
		if !stderrors.As(err, &re) {
			return false
		}
		if re.Kind == kind {
			return true
		}
		err = re.Err
	}
	return false
}
