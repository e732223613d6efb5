package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary = lipgloss.Color("#7C3AED")
	Green   = lipgloss.Color("#10B981")
	Red     = lipgloss.Color("#EF4444")
	Yellow  = lipgloss.Color("#F59E0B")
	Cyan    = lipgloss.Color("#06B6D4")
	Dim     = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#F9FAFB")
	Border  = lipgloss.Color("#374151")

	// Text styles
	Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Bold    = lipgloss.NewStyle().Bold(true).Foreground(White)
	DimText = lipgloss.NewStyle().Foreground(Dim)
	Warning = lipgloss.NewStyle().Foreground(Yellow)

	StatusOK      = lipgloss.NewStyle().Foreground(Green).Bold(true)
	StatusFailed  = lipgloss.NewStyle().Foreground(Red).Bold(true)
	StatusRunning = lipgloss.NewStyle().Foreground(Yellow).Bold(true)

	// Key-value
	Key = lipgloss.NewStyle().Foreground(Dim).Width(14)
	Val = lipgloss.NewStyle().Foreground(White)

	// Borders
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	LogStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Border).
			Foreground(White)

	ErrorLine = lipgloss.NewStyle().Foreground(Red)

	InputPrompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
)

// ReadonlyField renders one labeled value. An empty value still renders
// the label so the layout does not jump between executions.
func ReadonlyField(title, value string) string {
	return Key.Render(title) + Val.Render(value)
}

// LogBlock renders preformatted log text verbatim below a rule.
func LogBlock(text string, width int) string {
	s := LogStyle
	if width > 0 {
		s = s.Width(width)
	}
	return s.Render(strings.TrimRight(text, "\n"))
}

// StatusStyle picks a color for a rendered status line.
func StatusStyle(status string) lipgloss.Style {
	s := strings.ToLower(status)
	switch {
	case strings.HasPrefix(s, "running"):
		return StatusRunning
	case strings.HasSuffix(s, "(0)"):
		return StatusOK
	case s == "":
		return Val
	default:
		return StatusFailed
	}
}
