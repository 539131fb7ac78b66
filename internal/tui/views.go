package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thruflo/stepviz/internal/annotate"
	"github.com/thruflo/stepviz/internal/loop"
)

// Frame is everything the scan view draws for one moment of a run.
type Frame struct {
	Run        int
	Algorithm  string
	Values     []int
	Annotation annotate.Annotation
	Status     string
	Delay      time.Duration

	HasResult bool
	Result    int

	// Span is the inclusive index range behind Result, when the
	// algorithm reports one.
	HasSpan   bool
	SpanStart int
	SpanEnd   int

	Message string
}

// ScanView renders a run as a row of colored cells inside a box.
type ScanView struct{}

// Render draws f for a terminal of the given width.
func (v *ScanView) Render(f Frame, width int) []string {
	if width < 20 {
		width = 20
	}
	innerWidth := width - 4

	status := f.Status
	if status == "" {
		status = StatusIdle
	}
	completed, total := loop.CalculateProgress(f.Annotation)

	content := []string{
		fmt.Sprintf("stepviz: %s | run #%d | delay %s", f.Algorithm, f.Run, f.Delay),
		fmt.Sprintf("status: %s | step %d/%d", FormatStatus(status), completed, total),
		"",
	}

	cell := CellWidth(f.Values)
	content = append(content,
		FormatArray(f.Values, f.Annotation, true),
		Style(IndexRow(len(f.Values), cell), Dim),
	)
	if f.HasSpan {
		content = append(content, Style(SpanMarker(len(f.Values), cell, f.SpanStart, f.SpanEnd), FgGreen))
	}
	content = append(content, "")

	if bar := ProgressBar(completed, total, min(innerWidth, 40)); bar != "" {
		content = append(content, bar)
	}
	if f.HasResult {
		content = append(content, FormatResult(f))
	}
	if f.Message != "" {
		color := Dim
		if status == StatusError {
			color = FgRed
		}
		content = append(content, Style(Truncate(f.Message, innerWidth), color))
	}

	content = append(content, "", Style("[c]ancel [r]estart [e]dit values [t]log [q]uit", Dim))

	return BoxWithContent(width, content)
}

// FormatResult describes a finished run's value and span.
func FormatResult(f Frame) string {
	line := "result: " + strconv.Itoa(f.Result)
	if f.HasSpan {
		line += fmt.Sprintf(" (indices %d..%d)", f.SpanStart, f.SpanEnd)
	}
	return line
}

// LogView keeps the most recent log lines for display.
type LogView struct {
	lines    []string
	maxLines int
}

// NewLogView creates a LogView holding at most maxLines lines.
func NewLogView(maxLines int) *LogView {
	if maxLines < 1 {
		maxLines = 1000
	}
	return &LogView{
		lines:    make([]string, 0, min(maxLines, 64)),
		maxLines: maxLines,
	}
}

// Append adds a line, dropping the oldest once the buffer is full.
func (v *LogView) Append(line string) {
	v.lines = append(v.lines, line)
	if len(v.lines) > v.maxLines {
		v.lines = v.lines[len(v.lines)-v.maxLines:]
	}
}

// AppendLines adds several lines in order.
func (v *LogView) AppendLines(lines []string) {
	for _, line := range lines {
		v.Append(line)
	}
}

// Clear empties the buffer.
func (v *LogView) Clear() {
	v.lines = v.lines[:0]
}

// Lines returns the buffered lines.
func (v *LogView) Lines() []string {
	return v.lines
}

// Render draws the newest height lines between a header and a footer.
func (v *LogView) Render(width, height int) []string {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	result := make([]string, 0, height+2)
	result = append(result, Style("─── Log (press 't' to return) ", Dim)+strings.Repeat("─", max(0, width-30)))

	start := max(0, len(v.lines)-height)
	for _, line := range v.lines[start:] {
		result = append(result, Truncate(line, width))
	}
	for len(result) < height+1 {
		result = append(result, "")
	}

	result = append(result, Style(fmt.Sprintf("─── %d lines ", len(v.lines)), Dim)+strings.Repeat("─", max(0, width-15)))
	return result
}

// InputView renders a one-line editor under a prompt.
type InputView struct {
	editor *LineEditor
}

// NewInputView returns an InputView with an empty editor.
func NewInputView() *InputView {
	return &InputView{editor: NewLineEditor()}
}

// Editor returns the line editor that receives key events.
func (v *InputView) Editor() *LineEditor {
	return v.editor
}

// Reset clears the input buffer.
func (v *InputView) Reset() {
	v.editor.Clear()
}

// Render draws the prompt, the visible part of the input and a cursor
// marker.
func (v *InputView) Render(prompt string, width int) []string {
	if width < 20 {
		width = 20
	}
	innerWidth := width - 4

	const marker = "> "
	maxInput := innerWidth - len(marker)

	text := []rune(v.editor.Text())
	cursor := v.editor.Cursor()

	start := 0
	if len(text) > maxInput && cursor > maxInput-3 {
		start = cursor - maxInput + 3
	}
	end := min(start+maxInput, len(text))

	content := []string{
		Style("Edit values", Bold, FgYellow),
		"",
		Truncate(prompt, innerWidth),
		"",
		marker + string(text[start:end]),
		Style(strings.Repeat(" ", len(marker)+cursor-start)+"^", FgCyan),
		"",
		Style("Press Enter to restart with these values, Esc to cancel", Dim),
	}

	return BoxWithContent(width, content)
}

// HeapTree lays out heap levels as a centred tree, one line per level.
// Level k is split into 2^k equal slots.
func HeapTree(levels [][]int) []string {
	if len(levels) == 0 {
		return nil
	}

	cell := 1
	for _, level := range levels {
		cell = max(cell, CellWidth(level))
	}
	cell += 2
	total := cell << (len(levels) - 1)

	lines := make([]string, len(levels))
	for depth, level := range levels {
		slot := total >> depth
		var b strings.Builder
		for _, v := range level {
			b.WriteString(CenterText(strconv.Itoa(v), slot))
		}
		lines[depth] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
