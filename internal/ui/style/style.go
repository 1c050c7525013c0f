// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Staleness thresholds for package update ages.
const (
	FreshWithin = 30 * 24 * time.Hour
	StaleAfter  = 180 * 24 * time.Hour
)

// AgeColor picks the color of a package that was last updated age ago.
func AgeColor(age time.Duration) lipgloss.Color {
	switch {
	case age < FreshWithin:
		return Green
	case age < StaleAfter:
		return Yellow
	default:
		return Red
	}
}

// AgeIcon picks the icon of a package that was last updated age ago.
func AgeIcon(age time.Duration) string {
	switch {
	case age < FreshWithin:
		return Check
	case age < StaleAfter:
		return Dot
	default:
		return Warning
	}
}

// AgeStyle is the text style of a package that was last updated age ago.
func AgeStyle(r *lipgloss.Renderer, age time.Duration) lipgloss.Style {
	return r.NewStyle().Foreground(AgeColor(age))
}

// Muted styles secondary text such as totals and hints.
func Muted(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Slate)
}

