// Package output decides how text reaches a writer: which color profile it
// gets and whether it is an interactive terminal.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns the color profile for text written to w.
// NO_COLOR forces Ascii. Otherwise writers that are not terminals get Ascii
// too, unless CLICOLOR_FORCE asks for color anyway, so a piped stdout stays
// plain while stderr on a terminal keeps its colors.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// NewRenderer returns a lipgloss renderer for w using ColorProfile(w).
// A nil w means stderr.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	if w == nil {
		w = os.Stderr
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile(w))
	return r
}

// IsInteractive reports whether w is a terminal.
// Progress indicators are only drawn on interactive writers.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
