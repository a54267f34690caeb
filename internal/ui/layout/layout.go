package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Left column
	ScriptListWidth  int
	ScriptListHeight int

	// Right column, terminal over the input bar
	TerminalWidth  int
	TerminalHeight int
	InputBarWidth  int
	InputBarHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	LeftColWeight  = 0.32
	RightColWeight = 0.68

	inputBarRows = 3
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 // status bar

	scriptListWidth := int(float64(termWidth) * LeftColWeight)
	terminalWidth := termWidth - scriptListWidth

	l.ScriptListWidth = scriptListWidth
	l.ScriptListHeight = usableHeight

	l.TerminalWidth = terminalWidth
	l.TerminalHeight = usableHeight - inputBarRows
	l.InputBarWidth = terminalWidth
	l.InputBarHeight = inputBarRows

	l.StatusBarWidth = termWidth

	return l
}
