// Package style provides the colors and icons shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Cached  = "~"
	Bullet  = "●"
)

// Header renders a table header.
var Header = lipgloss.NewStyle().Bold(true).Foreground(Accent)

// Dim renders secondary information.
var Dim = lipgloss.NewStyle().Foreground(Muted)
