package tui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	DefaultRows = 24
	DefaultCols = 80

	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Screen is a fixed-size character grid drawn by absolute position, in the
// manner of a curses window. Nothing reaches the terminal until Refresh.
type Screen struct {
	rows, cols int
	cells      [][]rune
	out        io.Writer
	pace       time.Duration
	sleep      func(time.Duration)
}

func NewScreen(out io.Writer, rows, cols int) *Screen {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
	}
	s := &Screen{
		rows:  rows,
		cols:  cols,
		cells: cells,
		out:   out,
		sleep: time.Sleep,
	}
	s.Erase()
	return s
}

func (s *Screen) Size() (rows, cols int) { return s.rows, s.cols }

// SetPace sets the pause taken by Pace after each frame.
func (s *Screen) SetPace(d time.Duration) { s.pace = d }

// SetSleeper replaces time.Sleep, so tests can run paced screens instantly.
func (s *Screen) SetSleeper(fn func(time.Duration)) { s.sleep = fn }

func (s *Screen) Erase() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

func (s *Screen) set(row, col int, c rune) {
	if row >= 0 && row < s.rows && col >= 0 && col < s.cols {
		s.cells[row][col] = c
	}
}

// Print writes text starting at (row, col). Characters falling outside the
// grid are dropped; a newline blanks the rest of the row.
func (s *Screen) Print(row, col int, text string) {
	x := col
	for _, c := range text {
		if c == '\n' {
			for ; x < s.cols; x++ {
				s.set(row, x, ' ')
			}
			return
		}
		s.set(row, x, c)
		x++
	}
}

func (s *Screen) Printf(row, col int, format string, args ...any) {
	s.Print(row, col, fmt.Sprintf(format, args...))
}

// String returns the grid one line per row with trailing blanks removed.
func (s *Screen) String() string {
	var b strings.Builder
	for _, row := range s.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Refresh writes the whole grid to the output as one frame.
func (s *Screen) Refresh() error {
	_, err := io.WriteString(s.out, clearScreen+s.String())
	return err
}

// Pace blocks for the configured interval.
func (s *Screen) Pace() {
	if s.pace > 0 {
		s.sleep(s.pace)
	}
}

func (s *Screen) Start() error {
	_, err := io.WriteString(s.out, hideCursor)
	return err
}

func (s *Screen) Stop() error {
	_, err := io.WriteString(s.out, showCursor)
	return err
}
