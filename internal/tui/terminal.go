package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal. The scan command
// uses it to choose between the interactive view and plain line output.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Terminal wraps stdin in raw mode and writes frames to out.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from stdin and writes to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		in:  os.Stdin,
		out: out,
	}
}

// EnterRaw puts stdin into raw mode so single key presses reach the reader.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the saved terminal state. It is a no-op outside raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsRaw returns true if the terminal is in raw mode.
func (t *Terminal) IsRaw() bool {
	return t.isRaw
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads raw key bytes from stdin.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// ANSI escape sequences
const (
	ClearScreen = "\033[2J"
	ClearLine   = "\033[K"
	CursorHome  = "\033[H"
	CursorHide  = "\033[?25l"
	CursorShow  = "\033[?25h"

	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"
	Reverse   = "\033[7m"

	FgBlack        = "\033[30m"
	FgRed          = "\033[31m"
	FgGreen        = "\033[32m"
	FgYellow       = "\033[33m"
	FgBlue         = "\033[34m"
	FgCyan         = "\033[36m"
	FgWhite        = "\033[37m"
	FgBrightBlack  = "\033[90m"
	FgBrightGreen  = "\033[92m"
	FgBrightYellow = "\033[93m"

	BgGreen  = "\033[42m"
	BgYellow = "\033[43m"
	BgBlue   = "\033[44m"

	Bell = "\a"
)

// CursorTo moves the cursor to (row, col). Both are 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// Clear clears the screen and homes the cursor.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// RingBell sounds the terminal bell.
func (t *Terminal) RingBell() {
	fmt.Fprint(t.out, Bell)
}

// Write writes s unchanged.
func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// WriteLine writes s and a line break. Raw mode disables output
// post-processing, so the carriage return is written explicitly.
func (t *Terminal) WriteLine(s string) {
	fmt.Fprint(t.out, s+"\r\n")
}

// MoveTo moves the cursor to the given position (1-indexed).
func (t *Terminal) MoveTo(row, col int) {
	fmt.Fprint(t.out, CursorTo(row, col))
}
