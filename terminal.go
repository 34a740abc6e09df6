package loadingbar

import (
	"os"

	"golang.org/x/term"
)

// WidthFunc reports the current terminal width in columns. ok is false
// when the width is unknown, which makes the bar assume DefaultWidth.
type WidthFunc func() (cols int, ok bool)

// TerminalWidth queries the terminal attached to stdout.
func TerminalWidth() (int, bool) {
	return FileWidth(os.Stdout)()
}

// FixedWidth returns a query that always reports cols.
func FixedWidth(cols int) WidthFunc {
	return func() (int, bool) {
		return cols, true
	}
}

// NoTerminal reports an unknown width.
func NoTerminal() (int, bool) {
	return 0, false
}

// FileWidth returns a query for the terminal behind f.
func FileWidth(f *os.File) WidthFunc {
	return func() (int, bool) {
		cols, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0, false
		}
		return cols, true
	}
}
