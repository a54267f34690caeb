package border

import (
	"strings"
)

// RenderPanel assembles a complete bordered panel:
//
//	top border (with title)
//	content lines (with side borders)
//	bottom border (with keybinds if focused)
//
// Content is padded/cropped to exactly fill height-2 rows x width-2 cols.
func RenderPanel(title string, content string, keybinds []Keybind,
	width, height int, focused bool) string {

	if height < 2 || width < 2 {
		return ""
	}

	innerHeight := height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	// Short content: blank rows below, padded to width by RenderBorderSides
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	top := RenderBorderTop(title, width, focused)
	middle := RenderBorderSides(strings.Join(lines, "\n"), width, focused)
	bottom := RenderBorderBottom(keybinds, width, focused)

	return top + "\n" + middle + "\n" + bottom
}
