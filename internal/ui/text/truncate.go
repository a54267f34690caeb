package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts s down to maxWidth columns, appending "…" when anything
// was dropped. Width is measured visually, so ANSI escape codes neither
// count nor get split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight extends s with spaces to exactly width columns, measured
// visually. Strings already at or past width come back unchanged.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
