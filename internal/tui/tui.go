package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// View identifies which screen the TUI is showing.
type View int

const (
	ViewScan View = iota
	ViewLog
	ViewInput
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewScan:
		return "scan"
	case ViewLog:
		return "log"
	case ViewInput:
		return "input"
	default:
		return "unknown"
	}
}

// Action is a request from the user to the run controller.
type Action int

const (
	ActionNone        Action = iota
	ActionCancel             // stop the current run
	ActionRestart            // start the current values again
	ActionQuit               // leave the program
	ActionSubmitInput        // restart with edited values
	ActionCancelInput        // edit abandoned
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCancel:
		return "cancel"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	case ActionSubmitInput:
		return "submit_input"
	case ActionCancelInput:
		return "cancel_input"
	default:
		return "unknown"
	}
}

// ActionEvent is sent on the Actions channel. Input is set only for
// ActionSubmitInput.
type ActionEvent struct {
	Action Action
	Input  string
}

// EditPrompt is shown above the values editor.
const EditPrompt = "Enter integers separated by commas or spaces"

// TUI owns the terminal while a scan is visualised. Frames are pushed with
// SetFrame or UpdateFrame from any goroutine; Run reads keys and reports
// actions.
type TUI struct {
	terminal  *Terminal
	keyReader *KeyReader
	mu        sync.Mutex
	frame     Frame
	view      View
	logView   *LogView
	inputView *InputView
	scanView  *ScanView
	prompt    string
	width     int
	height    int
	running   bool
	actionCh  chan ActionEvent
}

// NewTUI creates a TUI that draws to out.
func NewTUI(out io.Writer) *TUI {
	return &TUI{
		terminal:  NewTerminal(out),
		view:      ViewScan,
		logView:   NewLogView(1000),
		inputView: NewInputView(),
		scanView:  &ScanView{},
		width:     80,
		height:    24,
		actionCh:  make(chan ActionEvent, 10),
	}
}

// NewNopTUI creates a TUI that discards output. Its state can still be
// driven by key events, which is how it is tested.
func NewNopTUI() *TUI {
	return NewTUI(io.Discard)
}

// SetFrame replaces the frame and redraws.
func (t *TUI) SetFrame(f Frame) {
	t.mu.Lock()
	t.frame = f
	t.mu.Unlock()
	t.Update()
}

// UpdateFrame applies fn to the frame under the lock and redraws.
func (t *TUI) UpdateFrame(fn func(*Frame)) {
	t.mu.Lock()
	fn(&t.frame)
	t.mu.Unlock()
	t.Update()
}

// GetFrame returns the current frame.
func (t *TUI) GetFrame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// SetView switches to a different view.
func (t *TUI) SetView(v View) {
	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// AppendLog adds a line to the log view.
func (t *TUI) AppendLog(line string) {
	t.mu.Lock()
	t.logView.Append(line)
	showing := t.view == ViewLog
	t.mu.Unlock()

	if showing {
		t.Update()
	}
}

// LogLines returns a copy of the buffered log lines.
func (t *TUI) LogLines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.logView.Lines()...)
}

// LogWriter returns a writer whose lines land in the log view, so a logger
// can write there instead of over the frame.
func (t *TUI) LogWriter() io.Writer {
	return logWriter{t: t}
}

type logWriter struct {
	t *TUI
}

func (w logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.t.AppendLog(line)
	}
	return len(p), nil
}

// ShowInput opens the editor with prompt, pre-filled with initial.
func (t *TUI) ShowInput(prompt, initial string) {
	t.mu.Lock()
	t.prompt = prompt
	t.inputView.Editor().SetText(initial)
	t.view = ViewInput
	t.mu.Unlock()
}

// InputText returns the editor contents.
func (t *TUI) InputText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inputView.Editor().Text()
}

// Actions returns a channel that receives user actions.
func (t *TUI) Actions() <-chan ActionEvent {
	return t.actionCh
}

// Update redraws the current view. It does nothing unless Run is active.
func (t *TUI) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}

	t.terminal.Clear()
	t.terminal.HideCursor()

	var lines []string
	switch t.view {
	case ViewScan:
		lines = t.scanView.Render(t.frame, t.width)
	case ViewLog:
		lines = t.logView.Render(t.width, t.height-2)
	case ViewInput:
		lines = t.inputView.Render(t.prompt, t.width)
	}

	for _, line := range lines {
		t.terminal.WriteLine(line)
	}

	if t.view == ViewInput {
		t.terminal.ShowCursor()
	}
}

// Run puts the terminal in raw mode and dispatches key presses until the
// user quits or ctx is done. Quitting returns nil.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	defer t.terminal.ShowCursor()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer t.Stop()

	t.keyReader = NewKeyReader(t.terminal)
	t.Update()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := t.keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			if err == io.EOF {
				return nil
			}
			return err

		case ev := <-keyCh:
			action := t.handleKeyEvent(ev)
			if action.Action == ActionNone {
				continue
			}
			select {
			case t.actionCh <- action:
			default:
			}
			if action.Action == ActionQuit {
				return nil
			}
		}
	}
}

func (t *TUI) handleKeyEvent(ev KeyEvent) ActionEvent {
	if t.GetView() == ViewInput {
		return t.handleInputKey(ev)
	}

	switch ParseShortcut(ev) {
	case ShortcutLog:
		t.mu.Lock()
		if t.view == ViewLog {
			t.view = ViewScan
		} else {
			t.view = ViewLog
		}
		t.mu.Unlock()
		t.Update()

	case ShortcutEdit:
		t.ShowInput(EditPrompt, JoinValues(t.GetFrame().Values))
		t.Update()

	case ShortcutCancel:
		return ActionEvent{Action: ActionCancel}

	case ShortcutRestart:
		return ActionEvent{Action: ActionRestart}

	case ShortcutQuit:
		return ActionEvent{Action: ActionQuit}
	}

	return ActionEvent{Action: ActionNone}
}

func (t *TUI) handleInputKey(ev KeyEvent) ActionEvent {
	if ev.Key == KeyCtrlC {
		return ActionEvent{Action: ActionQuit}
	}

	action := ActionEvent{Action: ActionNone}

	t.mu.Lock()
	editor := t.inputView.Editor()
	switch {
	case ev.Key == KeyEscape:
		t.view = ViewScan
		editor.Clear()
		action = ActionEvent{Action: ActionCancelInput}
	case editor.HandleKey(ev):
		action = ActionEvent{Action: ActionSubmitInput, Input: editor.Text()}
		t.view = ViewScan
		editor.Clear()
	}
	t.mu.Unlock()

	t.Update()
	return action
}

// Stop marks the TUI as not running so later Updates draw nothing.
func (t *TUI) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// IsRunning reports whether Run is active.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Bell sounds the terminal bell while Run is active.
func (t *TUI) Bell() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.terminal.RingBell()
	}
}

// JoinValues formats values the way the editor accepts them back.
func JoinValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
