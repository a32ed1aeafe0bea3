package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the autorelease CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the release pipeline or the command line failed
	ExitFailure = 1
)

// ExitError carries a process exit code through cobra's error return.
// The failure has already been reported to the user when it is returned.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for
// an ExitError and ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
