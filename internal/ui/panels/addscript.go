package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scriptdeck/scriptdeck/internal/ui/border"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

type AddScriptModal struct {
	pathInput textinput.Model
	width     int
	height    int
}

func NewAddScriptModal(screenW, screenH int) *AddScriptModal {
	ti := textinput.New()
	ti.Placeholder = "/path/to/script.py"
	ti.CharLimit = 0
	ti.Focus()

	m := &AddScriptModal{pathInput: ti}
	m.SetSize(screenW, screenH)
	return m
}

func (m *AddScriptModal) SetSize(screenW, screenH int) {
	m.width = screenW * 60 / 100
	if m.width < 44 {
		m.width = 44
	}
	if m.width > screenW-4 && screenW > 4 {
		m.width = screenW - 4
	}
	m.height = 5
	m.pathInput.Width = m.width - 4
}

func (m *AddScriptModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AddScriptModal) Update(msg tea.Msg) (*AddScriptModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}
			p := path
			return nil, func() tea.Msg {
				return AddScriptMsg{Path: p}
			}
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *AddScriptModal) View() string {
	var b strings.Builder
	b.WriteString(styles.TextSecondaryStyle.Render("Path to script"))
	b.WriteString("\n\n")
	b.WriteString(m.pathInput.View())

	bottomKb := []border.Keybind{
		{Key: "↵", Label: " add"},
		{Key: "Esc", Label: " cancel"},
	}
	return border.RenderPanel("Add Script", b.String(), bottomKb, m.width, m.height, true)
}

// PathValue returns the current text input value.
func (m *AddScriptModal) PathValue() string { return m.pathInput.Value() }
