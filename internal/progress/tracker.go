package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const spinnerInterval = 100 * time.Millisecond

// Tracker reports the result of each tracked stage on one line.
type Tracker struct {
	file    *os.File
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
}

// NewTracker returns a Tracker writing to f. The spinner is only shown
// when f is a terminal.
func NewTracker(f *os.File) *Tracker {
	caps := DetectTerminalCapabilities(f)
	var out io.Writer = io.Discard
	if f != nil {
		out = f
	}
	return &Tracker{file: f, out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// NewPlainTracker returns a Tracker that writes status lines to w without
// a spinner, colors or Unicode symbols.
func NewPlainTracker(w io.Writer) *Tracker {
	caps := TerminalCapabilities{}
	return &Tracker{out: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Capabilities returns the detected terminal capabilities.
func (t *Tracker) Capabilities() TerminalCapabilities {
	return t.caps
}

// Track runs fn while showing msg and prints a success or failure line
// afterwards. fn's error is returned unchanged.
func (t *Tracker) Track(msg string, fn func() error) error {
	var s *spinner.Spinner
	if t.caps.IsTTY && t.file != nil {
		s = spinner.New(spinner.CharSets[t.symbols.SpinnerSet], spinnerInterval,
			spinner.WithWriterFile(t.file),
			spinner.WithSuffix(" "+msg),
		)
		s.Start()
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Round(time.Millisecond)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		fmt.Fprintf(t.out, "%s %s\n", t.paint(t.symbols.Failure, color.FgRed), msg)
		return err
	}
	fmt.Fprintf(t.out, "%s %s (%s)\n", t.paint(t.symbols.Checkmark, color.FgGreen), msg, elapsed)
	return nil
}

func (t *Tracker) paint(symbol string, attr color.Attribute) string {
	if !t.caps.SupportsColor {
		return symbol
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(symbol)
}
