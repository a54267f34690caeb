package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)

	// Error-flagged terminal output (stderr, pty failures)
	StderrStyle = lipgloss.NewStyle().Foreground(StatusError)

	// Search highlight: yellow background, black text for matches
	SearchHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("11")).
				Foreground(lipgloss.Color("0"))
	// Current match: bright orange background, black text
	CurrentMatchStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("208")).
				Foreground(lipgloss.Color("0"))

	SelectionStyle = lipgloss.NewStyle().Background(SelectionBg)
)

// ApplyTheme forces the light or dark variant of every adaptive color.
// "auto" (or anything unrecognized) keeps lipgloss's background detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.DefaultRenderer().SetHasDarkBackground(true)
	case "light":
		lipgloss.DefaultRenderer().SetHasDarkBackground(false)
	}
}
