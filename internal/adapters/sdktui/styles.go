package sdktui

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().Foreground(colorSlate)

	channelStyle = lipgloss.NewStyle().Foreground(colorIris).Bold(true)
)
