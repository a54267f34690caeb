package panels

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scriptdeck/scriptdeck/internal/ui/border"
)

// InputBar is the one-line panel under the terminal that forwards
// typed lines to the running script's stdin.
type InputBar struct {
	input   textinput.Model
	width   int
	height  int
	focused bool
}

func NewInputBar() InputBar {
	ti := textinput.New()
	ti.Placeholder = "send to stdin..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	return InputBar{input: ti}
}

func (ib InputBar) Update(msg tea.Msg) (InputBar, tea.Cmd) {
	if !ib.focused {
		return ib, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			ib.input.Blur()
			ib.focused = false
			return ib, func() tea.Msg { return UnfocusInputMsg{} }
		case "enter":
			// Empty lines submit too; the session drops them downstream.
			line := ib.input.Value()
			ib.input.Reset()
			return ib, func() tea.Msg { return SubmitInputMsg{Line: line} }
		}
	}

	var cmd tea.Cmd
	ib.input, cmd = ib.input.Update(msg)
	return ib, cmd
}

func (ib InputBar) View() string {
	var kb []border.Keybind
	if ib.focused {
		kb = []border.Keybind{
			{Key: "↵", Label: " send"},
			{Key: "Esc", Label: " done"},
		}
	} else {
		kb = []border.Keybind{{Key: "i", Label: " input"}}
	}
	return border.RenderPanel("Input", ib.input.View(), kb, ib.width, ib.height, ib.focused)
}

func (ib *InputBar) SetSize(w, h int) {
	ib.width = w
	ib.height = h
	inner := w - 4
	if inner < 1 {
		inner = 1
	}
	ib.input.Width = inner
}

func (ib *InputBar) Focus() tea.Cmd {
	ib.focused = true
	return ib.input.Focus()
}

func (ib *InputBar) Blur() {
	ib.focused = false
	ib.input.Blur()
}

func (ib InputBar) Focused() bool { return ib.focused }

// ConsumesKeys reports whether the bar wants all key input routed to it.
func (ib InputBar) ConsumesKeys() bool { return ib.focused }

// Value returns the current input text.
func (ib InputBar) Value() string { return ib.input.Value() }
