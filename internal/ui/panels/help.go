package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/ui/border"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 25,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	b.WriteString(kv("j/k", "Move / scroll") + "\n")
	b.WriteString(kv("G/gg", "Jump to bottom/top") + "\n")
	b.WriteString(kv("h/l", "Switch panels") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Scripts") + "\n")
	b.WriteString(kv("Enter", "Run selected script") + "\n")
	b.WriteString(kv("a", "Add script") + "\n")
	b.WriteString(kv("d", "Remove script") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Terminal") + "\n")
	b.WriteString(kv("/", "Search output (n/N: next/prev)") + "\n")
	b.WriteString(kv("y", "Copy mode (y: yank line)") + "\n")
	b.WriteString(kv("f", "Toggle follow") + "\n")
	b.WriteString(kv("c", "Clear output") + "\n")
	b.WriteString(kv("x", "Stop script") + "\n")
	b.WriteString(kv("i", "Send input line") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal / leave mode"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
