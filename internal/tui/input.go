package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key identifies a key press.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune
)

// KeyEvent is a single decoded key press. Rune is set only for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// KeyReader decodes key presses from raw terminal input.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader wraps r, which should be a terminal in raw mode.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{reader: bufio.NewReaderSize(r, 64)}
}

// ReadKey blocks until one key press has been read.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04:
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscape()
	}

	if b >= 0x20 && b < 0x7F {
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscape tells a bare Esc from an arrow key sequence. Terminals write a
// whole sequence at once, so an Esc with nothing buffered behind it is the
// Esc key itself.
func (k *KeyReader) readEscape() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err = k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}

	// Drain the rest of an unrecognised sequence such as "\x1b[3~".
	for k.reader.Buffered() > 0 && !isFinalByte(b) {
		b, _ = k.reader.ReadByte()
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func isFinalByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	buf := [4]byte{first}
	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Shortcut is a key binding of the scan and log views.
type Shortcut int

const (
	ShortcutNone    Shortcut = iota
	ShortcutCancel           // 'c' or esc
	ShortcutRestart          // 'r'
	ShortcutEdit             // 'e'
	ShortcutLog              // 't'
	ShortcutQuit             // 'q' or ctrl+c
)

// ParseShortcut maps a key press to its shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyEscape:
		return ShortcutCancel
	case KeyCtrlC:
		return ShortcutQuit
	case KeyRune:
		switch ev.Rune {
		case 'c', 'C':
			return ShortcutCancel
		case 'r', 'R':
			return ShortcutRestart
		case 'e', 'E':
			return ShortcutEdit
		case 't', 'T':
			return ShortcutLog
		case 'q', 'Q':
			return ShortcutQuit
		}
	}
	return ShortcutNone
}

// LineEditor is a single-line text buffer with a cursor.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor returns an empty editor.
func NewLineEditor() *LineEditor {
	return &LineEditor{buffer: make([]rune, 0, 64)}
}

// HandleKey applies ev to the buffer and reports whether Enter was pressed.
func (e *LineEditor) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyBackspace:
		if e.cursor > 0 {
			copy(e.buffer[e.cursor-1:], e.buffer[e.cursor:])
			e.buffer = e.buffer[:len(e.buffer)-1]
			e.cursor--
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case KeyRune:
		e.buffer = append(e.buffer, 0)
		copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
		e.buffer[e.cursor] = ev.Rune
		e.cursor++
	}
	return false
}

// SetText replaces the buffer and moves the cursor to the end.
func (e *LineEditor) SetText(s string) {
	e.buffer = append(e.buffer[:0], []rune(s)...)
	e.cursor = len(e.buffer)
}

// Text returns the buffer contents.
func (e *LineEditor) Text() string {
	return string(e.buffer)
}

// Clear empties the buffer.
func (e *LineEditor) Clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

// Cursor returns the cursor position in runes.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// Len returns the buffer length in runes.
func (e *LineEditor) Len() int {
	return len(e.buffer)
}
