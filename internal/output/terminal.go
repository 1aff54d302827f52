package output

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// StdoutSupportsColor reports whether stdout is an interactive terminal
// that can display at least basic ANSI colors.
func StdoutSupportsColor() bool {
	return FileSupportsColor(os.Stdout)
}

// FileSupportsColor is StdoutSupportsColor for an arbitrary file.
func FileSupportsColor(f *os.File) bool {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}
