// Package progress reports long-running pipeline stages on the terminal:
// a spinner while a stage runs on a TTY, plain status lines otherwise.
package progress

// TerminalCapabilities describes what the output stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols holds the symbols used for stage results and the
// spinner character set index (see spinner.CharSets).
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}
