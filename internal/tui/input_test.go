package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyReader_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"letter c", []byte{'c'}, KeyEvent{Key: KeyRune, Rune: 'c'}},
		{"digit 5", []byte{'5'}, KeyEvent{Key: KeyRune, Rune: '5'}},
		{"minus", []byte{'-'}, KeyEvent{Key: KeyRune, Rune: '-'}},
		{"comma", []byte{','}, KeyEvent{Key: KeyRune, Rune: ','}},
		{"ctrl+c", []byte{0x03}, KeyEvent{Key: KeyCtrlC}},
		{"ctrl+d", []byte{0x04}, KeyEvent{Key: KeyCtrlD}},
		{"enter CR", []byte{0x0D}, KeyEvent{Key: KeyEnter}},
		{"enter LF", []byte{0x0A}, KeyEvent{Key: KeyEnter}},
		{"backspace DEL", []byte{0x7F}, KeyEvent{Key: KeyBackspace}},
		{"backspace BS", []byte{0x08}, KeyEvent{Key: KeyBackspace}},
		{"bare escape", []byte{0x1B}, KeyEvent{Key: KeyEscape}},
		{"up arrow", []byte{0x1B, '[', 'A'}, KeyEvent{Key: KeyUp}},
		{"left arrow SS3", []byte{0x1B, 'O', 'D'}, KeyEvent{Key: KeyLeft}},
		{"right arrow", []byte{0x1B, '[', 'C'}, KeyEvent{Key: KeyRight}},
		{"delete key", []byte{0x1B, '[', '3', '~'}, KeyEvent{Key: KeyUnknown}},
		{"euro sign", []byte{0xE2, 0x82, 0xAC}, KeyEvent{Key: KeyRune, Rune: '€'}},
		{"emoji", []byte{0xF0, 0x9F, 0x98, 0x80}, KeyEvent{Key: KeyRune, Rune: '\U0001F600'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_EscapeThenKey(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader([]byte{0x1B, 'q'}))

	ev, err := reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEscape, ev.Key)

	ev, err = reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'q'}, ev)

	_, err = reader.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeyReader_DrainsUnknownSequence(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader([]byte{0x1B, '[', '3', '~', 'r'}))

	ev, err := reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyUnknown, ev.Key)

	ev, err = reader.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'r'}, ev)
}

func TestParseShortcut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event KeyEvent
		want  Shortcut
	}{
		{"c key", KeyEvent{Key: KeyRune, Rune: 'c'}, ShortcutCancel},
		{"C key", KeyEvent{Key: KeyRune, Rune: 'C'}, ShortcutCancel},
		{"escape", KeyEvent{Key: KeyEscape}, ShortcutCancel},
		{"r key", KeyEvent{Key: KeyRune, Rune: 'r'}, ShortcutRestart},
		{"e key", KeyEvent{Key: KeyRune, Rune: 'e'}, ShortcutEdit},
		{"t key", KeyEvent{Key: KeyRune, Rune: 't'}, ShortcutLog},
		{"q key", KeyEvent{Key: KeyRune, Rune: 'q'}, ShortcutQuit},
		{"ctrl+c", KeyEvent{Key: KeyCtrlC}, ShortcutQuit},
		{"other key", KeyEvent{Key: KeyRune, Rune: 'x'}, ShortcutNone},
		{"enter", KeyEvent{Key: KeyEnter}, ShortcutNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseShortcut(tt.event))
		})
	}
}

func typeText(e *LineEditor, s string) {
	for _, r := range s {
		e.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}
}

func TestLineEditor_Typing(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	typeText(editor, "4,-1,2")

	assert.Equal(t, "4,-1,2", editor.Text())
	assert.Equal(t, 6, editor.Cursor())
	assert.Equal(t, 6, editor.Len())
	assert.True(t, editor.HandleKey(KeyEvent{Key: KeyEnter}))
}

func TestLineEditor_Backspace(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	editor.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "", editor.Text())

	typeText(editor, "hello")
	editor.HandleKey(KeyEvent{Key: KeyBackspace})
	editor.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "hel", editor.Text())
	assert.Equal(t, 3, editor.Cursor())
}

func TestLineEditor_ArrowsAndInsert(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	typeText(editor, "hlo")

	editor.HandleKey(KeyEvent{Key: KeyLeft})
	editor.HandleKey(KeyEvent{Key: KeyLeft})
	typeText(editor, "el")
	assert.Equal(t, "hello", editor.Text())
	assert.Equal(t, 3, editor.Cursor())

	for range 10 {
		editor.HandleKey(KeyEvent{Key: KeyRight})
	}
	assert.Equal(t, 5, editor.Cursor())

	for range 10 {
		editor.HandleKey(KeyEvent{Key: KeyLeft})
	}
	assert.Equal(t, 0, editor.Cursor())
}

func TestLineEditor_SetTextAndClear(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	editor.SetText("1, 2, 3")
	assert.Equal(t, "1, 2, 3", editor.Text())
	assert.Equal(t, 7, editor.Cursor())

	editor.Clear()
	assert.Equal(t, "", editor.Text())
	assert.Equal(t, 0, editor.Cursor())
	assert.Equal(t, 0, editor.Len())
}
