package border

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

// Keybind is a single keybind hint for a panel's bottom border: [e]dit, [x] stop.
type Keybind struct {
	Key   string // The key character, e.g. "e"
	Label string // The label after the key, e.g. "dit"
}

// RenderKeybind renders [key]label with the key in KeybindKey color (bold)
// and the label in KeybindLabel.
func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// KeybindWidth returns the display width of a rendered keybind (without ANSI).
// Format is [key]label, so width = 2 + len(key) + len(label)
func KeybindWidth(kb Keybind) int {
	return 2 + len(kb.Key) + len(kb.Label)
}
