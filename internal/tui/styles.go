package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#2563EB") // blue
	okColor      = lipgloss.Color("#10B981") // green
	mutedColor   = lipgloss.Color("#6B7280") // gray
	dangerColor  = lipgloss.Color("#EF4444") // red
	warnColor    = lipgloss.Color("#F59E0B") // yellow

	// App frame
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)

	// Wizard step indicator
	activeStepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Underline(true)

	inactiveStepStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Field rendering
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(okColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Banners
	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	okStyle = lipgloss.NewStyle().
		Foreground(okColor)

	// Help bar
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 0, 0, 0)
)
