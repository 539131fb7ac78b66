package tui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANSIEscapeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
		want     string
	}{
		{"ClearScreen", ClearScreen, "\033[2J"},
		{"CursorHome", CursorHome, "\033[H"},
		{"CursorHide", CursorHide, "\033[?25l"},
		{"CursorShow", CursorShow, "\033[?25h"},
		{"Reset", Reset, "\033[0m"},
		{"Bold", Bold, "\033[1m"},
		{"BgBlue", BgBlue, "\033[44m"},
		{"BgYellow", BgYellow, "\033[43m"},
		{"BgGreen", BgGreen, "\033[42m"},
		{"Bell", Bell, "\a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.constant)
		})
	}
}

func TestCursorTo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\033[1;1H", CursorTo(1, 1))
	assert.Equal(t, "\033[5;10H", CursorTo(5, 10))
}

func TestTerminalWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Write("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestTerminalWriteLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.WriteLine("one")
	term.WriteLine("two")
	assert.Equal(t, "one\r\ntwo\r\n", buf.String())
}

func TestTerminalControlSequences(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Clear()
	term.HideCursor()
	term.MoveTo(2, 3)
	term.ShowCursor()
	term.RingBell()

	assert.Equal(t, ClearScreen+CursorHome+CursorHide+"\033[2;3H"+CursorShow+Bell, buf.String())
}

func TestTerminalExitRawWithoutEnter(t *testing.T) {
	t.Parallel()

	term := NewTerminal(&bytes.Buffer{})
	assert.False(t, term.IsRaw())
	assert.NoError(t, term.ExitRaw())
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if assert.NoError(t, err) {
		defer f.Close()
		assert.False(t, IsTerminal(f))
	}
}
