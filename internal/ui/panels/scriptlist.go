package panels

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/launcher"
	"github.com/scriptdeck/scriptdeck/internal/script"
	"github.com/scriptdeck/scriptdeck/internal/ui/border"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
	"github.com/scriptdeck/scriptdeck/internal/ui/text"
)

// Column widths for script list layout.
const (
	colIconW = 2
	colNameW = 18
)

var listSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type ScriptList struct {
	registry *script.Registry
	runner   *launcher.Runner
	entries  []script.Entry
	selected int
	offset   int
	width    int
	height   int
	lastKeyG bool
	lastKeyT time.Time
	focused  bool
	tickStep int
}

func NewScriptList(registry *script.Registry, runner *launcher.Runner) ScriptList {
	sl := ScriptList{
		registry: registry,
		runner:   runner,
	}
	sl.refresh()
	return sl
}

func (s ScriptList) Update(msg tea.Msg) (ScriptList, tea.Cmd) {
	switch msg.(type) {
	case ScriptListUpdatedMsg:
		s.refresh()
		s.clampSelection()
		return s, nil
	case AnimTickMsg:
		s.tickStep++
		return s, nil
	}

	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch msg2.String() {
	case "j", "down":
		if s.selected < len(s.entries)-1 {
			s.selected++
			s.scrollToSelection()
		}
		s.lastKeyG = false
	case "k", "up":
		if s.selected > 0 {
			s.selected--
			s.scrollToSelection()
		}
		s.lastKeyG = false
	case "enter":
		if sel, ok := s.SelectedEntry(); ok {
			return s, func() tea.Msg { return RunScriptMsg{Entry: sel} }
		}
	case "d":
		if _, ok := s.SelectedEntry(); ok {
			idx := s.selected
			return s, func() tea.Msg { return RemoveScriptMsg{Index: idx} }
		}
	case "y":
		if sel, ok := s.SelectedEntry(); ok {
			return s, func() tea.Msg { return YankMsg{Text: sel.Path} }
		}
	case "G":
		s.selected = max(len(s.entries)-1, 0)
		s.scrollToSelection()
		s.lastKeyG = false
	case "g":
		if s.lastKeyG && time.Since(s.lastKeyT) < 500*time.Millisecond {
			s.selected = 0
			s.scrollToSelection()
			s.lastKeyG = false
		} else {
			s.lastKeyG = true
			s.lastKeyT = time.Now()
		}
	default:
		s.lastKeyG = false
	}
	return s, nil
}

func (s ScriptList) View() string {
	innerWidth := s.width - 2
	innerHeight := s.height - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	title := fmt.Sprintf("Scripts (%d)", len(s.entries))

	var keybinds []border.Keybind
	if s.focused {
		keybinds = []border.Keybind{
			{Key: "↵", Label: " run"},
			{Key: "a", Label: "dd"},
			{Key: "d", Label: "elete"},
			{Key: "y", Label: "ank path"},
		}
	}

	content := s.renderContent(innerWidth, innerHeight)
	return border.RenderPanel(title, content, keybinds, s.width, s.height, s.focused)
}

func (s ScriptList) renderContent(width, height int) string {
	if len(s.entries) == 0 {
		return "No scripts. Press a to add one."
	}

	var b strings.Builder

	availableRows := height

	// Column header
	header := fmt.Sprintf("%*s %-*s %s", colIconW, "", colNameW, "NAME", "PATH")
	b.WriteString(styles.TextSecondaryStyle.Render(text.Truncate(header, width)))
	b.WriteString("\n")
	availableRows--

	if s.offset > 0 {
		b.WriteString(styles.TextDimStyle.Render("  ▲"))
		b.WriteString("\n")
		availableRows--
	}

	end := s.offset + availableRows
	if end > len(s.entries) {
		end = len(s.entries)
	}
	// Reserve a row for bottom scroll indicator if needed
	if end < len(s.entries) && availableRows > 1 {
		end = s.offset + availableRows - 1
		if end > len(s.entries) {
			end = len(s.entries)
		}
	}

	runningPath := ""
	if cur, ok := s.runner.CurrentScript(); ok && s.runner.Running() {
		runningPath = cur.Path
	}

	for i := s.offset; i < end; i++ {
		e := s.entries[i]

		statusIcon := " "
		if e.Path == runningPath {
			statusIcon = listSpinnerFrames[s.tickStep%len(listSpinnerFrames)]
		}

		var line string
		if i == s.selected {
			// Plain text for selected row so background covers the entire line
			plainLine := fmt.Sprintf("%s %-*s %s",
				text.PadRight(statusIcon, colIconW),
				colNameW, text.Truncate(e.Name, colNameW),
				displayPath(e.Path),
			)
			plainLine = text.Truncate(plainLine, width)
			line = styles.SelectedRowStyle.Width(width).Render(plainLine)
		} else {
			icon := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(
				text.PadRight(statusIcon, colIconW),
			)
			line = fmt.Sprintf("%s %-*s %s",
				icon,
				colNameW, text.Truncate(e.Name, colNameW),
				styles.TextDimStyle.Render(displayPath(e.Path)),
			)
			line = text.Truncate(line, width)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(s.entries) {
		b.WriteString("\n")
		b.WriteString(styles.TextDimStyle.Render("  ▼"))
	}

	return b.String()
}

func (s *ScriptList) SetSize(w, h int) {
	s.width = w
	s.height = h
	s.clampSelection()
}

func (s *ScriptList) SetFocused(focused bool) {
	s.focused = focused
}

// SelectedEntry returns the highlighted script, if any.
func (s ScriptList) SelectedEntry() (script.Entry, bool) {
	if len(s.entries) == 0 || s.selected >= len(s.entries) {
		return script.Entry{}, false
	}
	return s.entries[s.selected], true
}

// SelectedIndex returns the highlighted registry index.
func (s ScriptList) SelectedIndex() int {
	return s.selected
}

func (s *ScriptList) refresh() {
	s.entries = s.registry.List()
}

func (s *ScriptList) clampSelection() {
	if len(s.entries) == 0 {
		s.selected = 0
		s.offset = 0
		return
	}
	if s.selected >= len(s.entries) {
		s.selected = len(s.entries) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	s.scrollToSelection()
}

func (s *ScriptList) scrollToSelection() {
	visible := s.visibleRows()
	if visible <= 0 {
		return
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	maxOffset := len(s.entries) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s ScriptList) visibleRows() int {
	rows := s.height - 2 // border top/bottom
	rows--               // column header
	if s.offset > 0 {
		rows--
	}
	if s.offset+rows < len(s.entries) {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// displayPath shortens a home-relative path to ~ form for display.
func displayPath(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(os.PathSeparator)) {
		return "~" + p[len(home):]
	}
	return p
}
