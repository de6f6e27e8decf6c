// Package styles provides Lipgloss styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary     = lipgloss.Color("#00BFFF") // Deep Sky Blue
	Secondary   = lipgloss.Color("#32CD32") // Lime Green
	Accent      = lipgloss.Color("#FFD700") // Gold
	Danger      = lipgloss.Color("#FF6347") // Tomato
	Muted       = lipgloss.Color("#808080") // Gray
	Success     = lipgloss.Color("#00FF7F") // Spring Green
	Warning     = lipgloss.Color("#FFA500") // Orange
	BorderColor = lipgloss.Color("#0f3460") // Border color

	// Box styles
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	// Table header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Footer style
	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1)

	// Help key style
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Badge style, colored per state by Badge
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	// Prompt box style
	PromptBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginTop(1)

	// Error box style
	ErrorBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Padding(0, 1).
			MarginTop(1)

	// Banner style
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Accent)
)

// KeyBinding is a key and what it does.
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderHelp renders a help line with key bindings, in order.
func RenderHelp(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, HelpKeyStyle.Render("["+b.Key+"]")+" "+HelpDescStyle.Render(b.Desc))
	}
	return strings.Join(parts, "  ")
}

// Badge renders label as an upper-case badge on the given background.
func Badge(label string, bg lipgloss.Color) string {
	return badgeStyle.Background(bg).Render(strings.ToUpper(label))
}

// MutedStyle returns a muted text style.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Muted)
}
