package display

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/cwbudde/algo-ecg/internal/player"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	// title, two strip headers, status line
	chromeRows = 4
)

// Terminal draws frames as two stacked ASCII strip charts, contaminated
// input on top and filtered output below. It implements player.Sink.
type Terminal struct {
	w      io.Writer
	fd     int
	limits Limits
	title  string

	width, height int
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithLimits fixes the vertical range of both strips.
func WithLimits(l Limits) TerminalOption {
	return func(t *Terminal) { t.limits = l }
}

// WithSize overrides the detected terminal size.
func WithSize(width, height int) TerminalOption {
	return func(t *Terminal) {
		if width > 0 && height > 0 {
			t.width, t.height = width, height
		}
	}
}

// WithTitle sets the heading shown above the strips.
func WithTitle(title string) TerminalOption {
	return func(t *Terminal) { t.title = title }
}

// NewTerminal writes to w and sizes itself from the terminal behind fd.
// When fd is not a terminal the size falls back to 80x24.
func NewTerminal(w io.Writer, fd int, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		w:      w,
		fd:     fd,
		limits: DefaultLimits,
		title:  "ECG monitor",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *Terminal) size() (int, int) {
	if t.width > 0 && t.height > 0 {
		return t.width, t.height
	}
	if term.IsTerminal(t.fd) {
		if w, h, err := term.GetSize(t.fd); err == nil && w > 0 && h > chromeRows+1 {
			return w, h
		}
	}
	return fallbackWidth, fallbackHeight
}

// Render redraws the whole screen for f.
func (t *Terminal) Render(f player.Frame) error {
	width, height := t.size()
	rows := (height - chromeRows) / 2

	bw := bufio.NewWriter(t.w)
	// Home the cursor and clear; raw mode needs explicit carriage returns.
	fmt.Fprint(bw, "\x1b[H\x1b[2J")
	fmt.Fprintf(bw, "%s - record %s @ %.0f Hz\r\n", t.title, f.Record, f.SampleRate)

	fmt.Fprint(bw, "input with interference\r\n")
	writeGrid(bw, strip(f.Raw, rows, width, t.limits, '*'))
	fmt.Fprint(bw, "filtered\r\n")
	writeGrid(bw, strip(f.Filtered, rows, width, t.limits, '#'))

	fmt.Fprint(bw, Status(f))
	return bw.Flush()
}

func writeGrid(w io.Writer, grid [][]rune) {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\r\n")
	}
	io.WriteString(w, sb.String())
}

// Status returns the one-line status bar for f.
func Status(f player.Frame) string {
	mode := "LIVE"
	if f.Paused {
		mode = "PAUSED"
	}
	line := fmt.Sprintf("%s  t=%.2fs", mode, f.Seconds())
	if f.Wraps > 0 {
		line += fmt.Sprintf(" (loop %d)", f.Wraps+1)
	}
	if f.Message != "" {
		line += "  " + f.Message
	}
	return line + "  [space] pause  [s] save  [r] reset filter  [q] quit"
}
