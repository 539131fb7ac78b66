package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thruflo/stepviz/internal/annotate"
)

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// StripAnsi removes ANSI escape sequences from s.
func StripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// VisualWidth returns the number of runes s occupies on screen, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(StripAnsi(s))
}

// BoxWithContent draws a box around content. Each line is padded or
// truncated to the inner width.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4
	lines := make([]string, 0, len(content)+2)

	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTopRight)
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)

	return lines
}

// PadOrTruncate pads or truncates s to exactly width visible columns.
// Styled text that overflows loses its styling.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	w := VisualWidth(s)
	switch {
	case w == width:
		return s
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return Truncate(StripAnsi(s), width)
	}
}

// Truncate shortens s to width runes, ending in an ellipsis when there is
// room for one.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// CenterText centers s within width columns.
func CenterText(s string, width int) string {
	w := VisualWidth(s)
	if w >= width {
		return PadOrTruncate(s, width)
	}

	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// ProgressBar renders "[████░░░░]  50%" in width columns.
func ProgressBar(current, total, width int) string {
	if total == 0 || width < 10 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}

	barWidth := width - 7
	filled := int(pct * float64(barWidth))

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "] " +
		fmt.Sprintf("%3d%%", int(pct*100))
}

// Style wraps s in the given ANSI codes.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// Run statuses shown in the header.
const (
	StatusIdle      = "IDLE"
	StatusRunning   = "RUNNING"
	StatusDone      = "DONE"
	StatusCancelled = "CANCELLED"
	StatusError     = "ERROR"
)

// StatusColor returns the color code for a run status.
func StatusColor(status string) string {
	switch strings.ToUpper(status) {
	case StatusRunning:
		return FgYellow
	case StatusDone:
		return FgBrightGreen
	case StatusError:
		return FgRed
	case StatusCancelled, StatusIdle:
		return FgBrightBlack
	default:
		return ""
	}
}

// FormatStatus formats a status string with its color.
func FormatStatus(status string) string {
	color := StatusColor(status)
	if color == "" {
		return status
	}
	return Style(status, color, Bold)
}

// TagBackground returns the cell background for an annotation tag.
func TagBackground(tag annotate.Tag) string {
	switch tag {
	case annotate.TagActive:
		return BgYellow
	case annotate.TagDone:
		return BgGreen
	default:
		return BgBlue
	}
}

// CellWidth returns the digit width every cell of values is padded to.
func CellWidth(values []int) int {
	w := 1
	for _, v := range values {
		w = max(w, len(strconv.Itoa(v)))
	}
	return w
}

// FormatCell renders one array element. Colored cells use the tag's
// background. Plain cells mark the tag with brackets: " v " unvisited,
// "[v]" active, "(v)" done.
func FormatCell(value, width int, tag annotate.Tag, color bool) string {
	digits := fmt.Sprintf("%*d", width, value)
	if color {
		fg := FgWhite
		if tag == annotate.TagActive {
			fg = FgBlack
		}
		return Style(" "+digits+" ", Bold, fg, TagBackground(tag))
	}

	switch tag {
	case annotate.TagActive:
		return "[" + digits + "]"
	case annotate.TagDone:
		return "(" + digits + ")"
	default:
		return " " + digits + " "
	}
}

// FormatArray renders values as a row of cells styled by a. Values beyond
// the annotation's length are drawn unvisited.
func FormatArray(values []int, a annotate.Annotation, color bool) string {
	width := CellWidth(values)
	cells := make([]string, len(values))
	for i, v := range values {
		tag := annotate.TagUnvisited
		if i < len(a) {
			tag = a[i]
		}
		cells[i] = FormatCell(v, width, tag, color)
	}
	return strings.Join(cells, " ")
}

// IndexRow labels each cell of an n-element row drawn by FormatArray.
func IndexRow(n, width int) string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = CenterText(strconv.Itoa(i), width+2)
	}
	return strings.TrimRight(strings.Join(labels, " "), " ")
}

// SpanMarker underlines cells start..end of a row drawn by FormatArray.
func SpanMarker(n, width, start, end int) string {
	if start < 0 || end < start || end >= n {
		return ""
	}
	cell := width + 2
	pad := start * (cell + 1)
	length := (end-start+1)*cell + (end - start)
	return strings.Repeat(" ", pad) + strings.Repeat("^", length)
}
