package monitor

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor = lipgloss.Color("#7D56F4") // Purple
	okColor      = lipgloss.Color("#43BF6D") // Green
	errColor     = lipgloss.Color("#FF0000") // Red
	subtleColor  = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(okColor)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(errColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(primaryColor)
)
