package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg   = color.New(color.FgRed).SprintFunc()
	fixLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet     = color.New(color.FgGreen).SprintFunc()
	kindFmt    = color.New(color.FgYellow).SprintFunc()
)

// FormatError formats an error for display in the terminal.
// Plain errors are rendered with the Unknown kind.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return formatError(toReleaseError(err), true)
}

// FormatErrorPlain formats an error without colors.
func FormatErrorPlain(err error) string {
	if err == nil {
		return ""
	}
	return formatError(toReleaseError(err), false)
}

func toReleaseError(err error) *ReleaseError {
	if re := As(err); re != nil {
		return re
	}
	return &ReleaseError{Kind: Unknown, Message: err.Error()}
}

func formatError(err *ReleaseError, useColors bool) string {
	var sb strings.Builder

	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(kindFmt(err.Kind.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Error()))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Kind.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Error())
	}
	sb.WriteString("\n")

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  ")
				sb.WriteString(bullet("•"))
				sb.WriteString(" ")
			} else {
				sb.WriteString("  • ")
			}
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted error to the given writer.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
