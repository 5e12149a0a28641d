package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	faint = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
	fgPink   = "\033[95m"
	fgCyan   = "\033[96m"
	fgGold   = "\033[93m"
)

// ColorMode decides when escape codes are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode accepts auto, always and never.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "auto", "":
		return ColorAuto, true
	case "always":
		return ColorAlways, true
	case "never":
		return ColorNever, true
	}
	return ColorAuto, false
}

var colorMode = ColorAuto

func SetColorMode(m ColorMode) { colorMode = m }

// colorFor reports whether output to w should be colored.
func colorFor(w io.Writer) bool {
	switch colorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// C wraps s in color when stdout is a colored terminal.
func C(color, s string) string {
	if color == "" || current.plain || !colorFor(os.Stdout) {
		return s
	}
	return color + s + reset
}

// Dim renders s faint.
func Dim(s string) string { return C(faint, s) }

// OK and Fail print a status line with the theme's glyphs.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, paint(w, current.Success, current.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, paint(w, current.Error, current.SymFail+" "+msg))
}

func paint(w io.Writer, color, s string) string {
	if color == "" || current.plain || !colorFor(w) {
		return s
	}
	return color + s + reset
}
