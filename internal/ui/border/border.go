package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

// Border characters
const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func borderStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// RenderBorderTop renders: ╭─ Title ────────────╮
// Title is bold TitleText (focused) or TextSecondary (unfocused).
func RenderBorderTop(title string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := borderStyle(focused)

	innerWidth := width - 2 // corners
	if title == "" {
		return bs.Render(cornerTL + strings.Repeat(horizBar, innerWidth) + cornerTR)
	}

	var ts lipgloss.Style
	if focused {
		ts = styles.TitleStyle
	} else {
		ts = styles.TextSecondaryStyle.Bold(true)
	}

	// "─ " before the title and " " after it, then fill with bars
	titleRendered := ts.Render(title)
	fillWidth := innerWidth - 3 - lipgloss.Width(titleRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return bs.Render(cornerTL+horizBar+" ") +
		titleRendered +
		bs.Render(" "+strings.Repeat(horizBar, fillWidth)+cornerTR)
}

// RenderBorderBottom renders the bottom border.
// If focused and keybinds provided: ╰─ [e]dit  [k]ill ──╯
// Otherwise: ╰────────────────────╯
func RenderBorderBottom(keybinds []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := borderStyle(focused)

	innerWidth := width - 2

	if !focused || len(keybinds) == 0 {
		return bs.Render(cornerBL + strings.Repeat(horizBar, innerWidth) + cornerBR)
	}

	// "─ " prefix (2) + keybinds + " " suffix pad (1) must fit within
	// innerWidth. Built incrementally so keybinds that would overflow the
	// panel are simply dropped.
	maxKbWidth := innerWidth - 3
	if maxKbWidth < 0 {
		maxKbWidth = 0
	}

	var kbParts []string
	usedWidth := 0
	for _, kb := range keybinds {
		rendered := RenderKeybind(kb)
		kbW := lipgloss.Width(rendered)
		sepW := 0
		if len(kbParts) > 0 {
			sepW = 2 // "  " separator
		}
		if usedWidth+sepW+kbW > maxKbWidth {
			break
		}
		kbParts = append(kbParts, rendered)
		usedWidth += sepW + kbW
	}

	fillWidth := maxKbWidth - usedWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return bs.Render(cornerBL+horizBar+" ") +
		strings.Join(kbParts, "  ") +
		bs.Render(" "+strings.Repeat(horizBar, fillWidth)+cornerBR)
}

// RenderBorderSides wraps content lines with │ on each side.
// Each line is truncated/padded to innerWidth (width - 2).
// Uses lipgloss.Width() for ANSI-aware width measurement so styled
// content is handled correctly.
func RenderBorderSides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	bs := borderStyle(focused)

	innerWidth := width - 2
	truncator := lipgloss.NewStyle().MaxWidth(innerWidth)

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > innerWidth {
			line = truncator.Render(line)
			w = lipgloss.Width(line)
		}
		if w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		result = append(result, bs.Render(vertBar)+line+bs.Render(vertBar))
	}
	return strings.Join(result, "\n")
}
