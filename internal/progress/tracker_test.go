package progress

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
		"not a terminal": {
			caps: TerminalCapabilities{},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilities_RegularFile(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, TerminalCapabilities{}, DetectTerminalCapabilities(f))
	assert.Equal(t, TerminalCapabilities{}, DetectTerminalCapabilities(nil))
}

func TestTracker_Success(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracker := NewPlainTracker(&buf)

	called := false
	err := tracker.Track("Fetching foo/bar", func() error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Regexp(t, `^\[OK\] Fetching foo/bar \(\d+(\.\d+)?[mµn]?s\)\n$`, buf.String())
}

func TestTracker_Failure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracker := NewPlainTracker(&buf)
	boom := errors.New("boom")

	err := tracker.Track("Fetching foo/bar", func() error { return boom })

	assert.Same(t, boom, err)
	assert.Equal(t, "[FAIL] Fetching foo/bar\n", buf.String())
}

func TestNewTracker_FileIsNotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)

	tracker := NewTracker(f)
	assert.False(t, tracker.Capabilities().IsTTY)
	require.NoError(t, tracker.Track("Listing branches", func() error { return nil }))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[OK] Listing branches")
}
