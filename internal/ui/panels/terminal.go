package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/scriptdeck/scriptdeck/internal/launcher"
	"github.com/scriptdeck/scriptdeck/internal/ui/border"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when the gg double-tap window expires.
type GTimerExpiredMsg struct{}

// termLine is one display line of scrollback. Err lines come from the
// launcher itself (start failures, exit notices) rather than the child.
type termLine struct {
	text string
	err  bool
}

type Terminal struct {
	viewport    viewport.Model
	width       int
	height      int
	buffer      *launcher.Buffer
	lines       []termLine
	script      string
	active      bool
	follow      bool
	focused     bool
	gPending    bool
	scrollSpeed int

	// Search state
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
	matchIndices []int
	currentMatch int

	// Copy mode state
	copyMode   bool
	copyAnchor int // line index where selection started
	copyCursor int // line index of current cursor

	// Mouse selection state (character-level)
	mouseSelecting   bool
	mouseAnchorLine  int
	mouseAnchorCol   int
	mouseCurrentLine int
	mouseCurrentCol  int
}

func NewTerminal(buf *launcher.Buffer, follow bool) Terminal {
	vp := viewport.New(0, 0)
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	t := Terminal{viewport: vp, buffer: buf, follow: follow, searchInput: ti, scrollSpeed: 3}
	t.refreshLines()
	return t
}

func (t Terminal) Update(msg tea.Msg) (Terminal, tea.Cmd) {
	switch msg := msg.(type) {
	case OutputMsg:
		atBottom := t.viewport.AtBottom()
		t.refreshLines()
		if t.searchQuery != "" {
			t.recomputeMatches()
		}
		t.viewport.SetContent(t.renderContent())
		if atBottom || t.follow {
			t.viewport.GotoBottom()
		}
		return t, nil
	case SessionFinishedMsg:
		t.active = false
		t.refreshContent()
		return t, nil
	case GTimerExpiredMsg:
		t.gPending = false
		return t, nil
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp {
			t.follow = false
		}
	case tea.KeyMsg:
		// Route keys to the search input while typing a query
		if t.searching {
			return t.updateSearch(msg)
		}

		if t.copyMode {
			return t.updateCopyMode(msg)
		}

		// Search query active (not typing) — handle n/N navigation
		if t.searchQuery != "" {
			switch msg.String() {
			case "n":
				t.nextMatch()
				return t, nil
			case "N":
				t.prevMatch()
				return t, nil
			case "/":
				t.searching = true
				t.searchInput.SetValue(t.searchQuery)
				t.searchInput.Focus()
				t.resizeViewport()
				return t, textinput.Blink
			case "esc":
				t.searchQuery = ""
				t.matchIndices = nil
				t.currentMatch = 0
				t.resizeViewport()
				t.refreshContent()
				return t, nil
			}
		}

		switch msg.String() {
		case "G":
			t.follow = true
			t.viewport.GotoBottom()
			return t, nil
		case "g":
			if t.gPending {
				// Second g — jump to top
				t.gPending = false
				t.follow = false
				t.viewport.GotoTop()
				return t, nil
			}
			// First g — start timer
			t.gPending = true
			t.follow = false
			return t, tea.Tick(gTimeout, func(time.Time) tea.Msg {
				return GTimerExpiredMsg{}
			})
		case "/":
			t.searching = true
			t.follow = false
			t.searchInput.SetValue("")
			t.searchInput.Focus()
			t.resizeViewport()
			return t, textinput.Blink
		case "y":
			t.enterCopyMode()
			return t, nil
		case "f":
			t.follow = !t.follow
			if t.follow {
				t.viewport.GotoBottom()
			}
			return t, nil
		case "c":
			return t, func() tea.Msg { return ClearScrollbackMsg{} }
		case "x":
			if t.active {
				return t, func() tea.Msg { return StopScriptMsg{} }
			}
			return t, nil
		case "j", "down":
			t.follow = false
			step := t.scrollSpeed
			if step <= 0 {
				step = 1
			}
			t.viewport.SetYOffset(t.viewport.YOffset + step)
			return t, nil
		case "k", "up":
			t.follow = false
			step := t.scrollSpeed
			if step <= 0 {
				step = 1
			}
			offset := t.viewport.YOffset - step
			if offset < 0 {
				offset = 0
			}
			t.viewport.SetYOffset(offset)
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

func (t *Terminal) updateSearch(msg tea.KeyMsg) (Terminal, tea.Cmd) {
	switch msg.String() {
	case "esc":
		t.searching = false
		t.searchQuery = ""
		t.matchIndices = nil
		t.currentMatch = 0
		t.searchInput.Blur()
		t.resizeViewport()
		t.refreshContent()
		return *t, nil
	case "enter":
		t.searching = false
		t.searchQuery = t.searchInput.Value()
		t.searchInput.Blur()
		t.resizeViewport()
		t.recomputeMatches()
		if len(t.matchIndices) > 0 {
			t.currentMatch = 0
			t.jumpToMatch()
		}
		t.refreshContent()
		return *t, nil
	}

	var cmd tea.Cmd
	t.searchInput, cmd = t.searchInput.Update(msg)
	// Live-update matches as the user types
	t.searchQuery = t.searchInput.Value()
	t.recomputeMatches()
	t.refreshContent()
	return *t, cmd
}

func (t Terminal) View() string {
	title := "Terminal"
	if t.script != "" {
		title = "Terminal: " + t.script
	}

	var keybinds []border.Keybind
	if t.focused {
		if t.copyMode {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank"},
				{Key: "j", Label: "/k select"},
				{Key: "Esc", Label: " cancel"},
			}
		} else {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank/copy"},
				{Key: "G", Label: "bottom"},
				{Key: "g", Label: "g top"},
				{Key: "/", Label: "search"},
			}
			if t.active {
				keybinds = append(keybinds, border.Keybind{Key: "x", Label: " stop"})
			}
			if !t.viewport.AtBottom() && !t.follow {
				keybinds = append(keybinds, border.Keybind{Key: "↓", Label: " new output"})
			}
		}
	}

	content := t.viewport.View()

	// Append copy mode status, search bar, or match status below the viewport
	if t.copyMode {
		selStart, selEnd := t.copySelectionRange()
		count := selEnd - selStart + 1
		status := styles.TextSecondaryStyle.Render(
			fmt.Sprintf("  VISUAL: %d line(s) selected", count),
		) + styles.TextDimStyle.Render(" (y yank, Esc cancel)")
		content += "\n" + status
	} else if t.searching {
		content += "\n" + t.searchInput.View()
	} else if t.searchQuery != "" {
		total := len(t.matchIndices)
		var status string
		if total == 0 {
			status = styles.TextDimStyle.Render("  No matches")
		} else {
			status = styles.TextSecondaryStyle.Render(
				fmt.Sprintf("  Match %d/%d", t.currentMatch+1, total),
			) + styles.TextDimStyle.Render(" (n/N navigate, / edit, Esc clear)")
		}
		content += "\n" + status
	}

	return border.RenderPanel(title, content, keybinds, t.width, t.height, t.focused)
}

func (t *Terminal) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.resizeViewport()
	t.refreshContent()
}

func (t *Terminal) SetFocused(focused bool) {
	t.focused = focused
}

func (t *Terminal) SetScrollSpeed(speed int) {
	if speed > 0 {
		t.scrollSpeed = speed
	}
}

// ConsumesKeys reports whether the terminal is in a mode that should
// consume all key events (search input, match navigation, or copy mode).
func (t Terminal) ConsumesKeys() bool {
	return t.searching || t.searchQuery != "" || t.copyMode
}

// SetScript resets the panel for a fresh launch. Search and copy state
// are dropped since the scrollback they referenced is gone.
func (t *Terminal) SetScript(name string) {
	t.script = name
	t.active = true
	t.follow = true
	t.searchQuery = ""
	t.matchIndices = nil
	t.currentMatch = 0
	t.searching = false
	t.searchInput.Blur()
	t.copyMode = false
	t.mouseSelecting = false
	t.resizeViewport()
	t.refreshLines()
	t.refreshContent()
}

// Active reports whether the displayed session is still running.
func (t Terminal) Active() bool { return t.active }

// resizeViewport recalculates the viewport inner dimensions, accounting
// for the search bar / status row when one is visible.
func (t *Terminal) resizeViewport() {
	innerW := t.width - 2
	innerH := t.height - 2
	if t.searching || t.searchQuery != "" || t.copyMode {
		innerH-- // Reserve 1 row for search bar / status / copy mode
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	t.viewport.Width = innerW
	t.viewport.Height = innerH
}

// refreshLines rebuilds the line cache from the scrollback buffer.
func (t *Terminal) refreshLines() {
	t.lines = splitChunks(t.buffer.Chunks())
}

// refreshContent re-sets the viewport content from the line cache.
func (t *Terminal) refreshContent() {
	t.viewport.SetContent(t.renderContent())
	if t.follow {
		t.viewport.GotoBottom()
	}
}

// splitChunks converts raw output spans into display lines, carrying the
// error flag onto every line a flagged chunk contributes to.
func splitChunks(chunks []launcher.Chunk) []termLine {
	var lines []termLine
	var cur termLine
	open := false
	for _, c := range chunks {
		parts := strings.Split(c.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, cur)
				cur = termLine{}
				open = false
			}
			if p != "" {
				cur.text += p
				cur.err = cur.err || c.Err
				open = true
			}
		}
	}
	if open {
		lines = append(lines, cur)
	}
	return lines
}

// renderContentBase builds the styled output without selection highlighting.
func (t *Terminal) renderContentBase() string {
	if len(t.lines) == 0 {
		if t.script == "" {
			return "No script running"
		}
		return "Waiting for output..."
	}
	return formatOutput(t.lines, t.active, t.searchQuery, t.matchIndices, t.currentMatch)
}

// renderContent builds the styled output, including search and selection
// highlights.
func (t *Terminal) renderContent() string {
	content := t.renderContentBase()

	if t.copyMode {
		selStart, selEnd := t.copySelectionRange()
		content = applySelectionHighlight(content, selStart, selEnd)
	} else if t.mouseSelecting {
		sl, sc, el, ec := t.normalizedMouseSelection()
		content = applyCharSelectionHighlight(content, sl, sc, el, ec)
	}

	return content
}

func (t *Terminal) recomputeMatches() {
	t.matchIndices = nil
	t.currentMatch = 0
	if t.searchQuery == "" {
		return
	}
	query := strings.ToLower(t.searchQuery)
	for i, line := range t.lines {
		if strings.Contains(strings.ToLower(ansi.Strip(line.text)), query) {
			t.matchIndices = append(t.matchIndices, i)
		}
	}
}

func (t *Terminal) nextMatch() {
	if len(t.matchIndices) == 0 {
		return
	}
	t.currentMatch = (t.currentMatch + 1) % len(t.matchIndices)
	t.jumpToMatch()
}

func (t *Terminal) prevMatch() {
	if len(t.matchIndices) == 0 {
		return
	}
	t.currentMatch = (t.currentMatch - 1 + len(t.matchIndices)) % len(t.matchIndices)
	t.jumpToMatch()
}

func (t *Terminal) jumpToMatch() {
	if len(t.matchIndices) == 0 {
		return
	}
	lineIdx := t.matchIndices[t.currentMatch]
	t.follow = false
	t.viewport.SetYOffset(lineIdx)
	t.refreshContent()
}

func (t *Terminal) enterCopyMode() {
	if len(t.lines) == 0 {
		return
	}
	// Anchor at the center of the visible viewport
	centerLine := t.viewport.YOffset + t.viewport.Height/2
	if centerLine >= len(t.lines) {
		centerLine = len(t.lines) - 1
	}
	if centerLine < 0 {
		centerLine = 0
	}
	t.copyMode = true
	t.mouseSelecting = false
	t.copyAnchor = centerLine
	t.copyCursor = centerLine
	t.follow = false
	t.resizeViewport()
	t.refreshContent()
}

func (t *Terminal) updateCopyMode(msg tea.KeyMsg) (Terminal, tea.Cmd) {
	lineCount := len(t.lines)

	switch msg.String() {
	case "esc":
		t.copyMode = false
		t.resizeViewport()
		t.refreshContent()
		return *t, nil
	case "y":
		// Yank the selected lines
		text := t.yankSelection()
		t.copyMode = false
		t.resizeViewport()
		t.refreshContent()
		if text != "" {
			return *t, func() tea.Msg { return YankMsg{Text: text} }
		}
		return *t, nil
	case "j", "down":
		if t.copyCursor < lineCount-1 {
			t.copyCursor++
			// Scroll viewport to keep cursor visible
			if t.copyCursor >= t.viewport.YOffset+t.viewport.Height {
				t.viewport.SetYOffset(t.copyCursor - t.viewport.Height + 1)
			}
			t.refreshContent()
		}
		return *t, nil
	case "k", "up":
		if t.copyCursor > 0 {
			t.copyCursor--
			// Scroll viewport to keep cursor visible
			if t.copyCursor < t.viewport.YOffset {
				t.viewport.SetYOffset(t.copyCursor)
			}
			t.refreshContent()
		}
		return *t, nil
	case "G":
		t.copyCursor = lineCount - 1
		t.viewport.GotoBottom()
		t.refreshContent()
		return *t, nil
	case "g":
		if t.gPending {
			t.gPending = false
			t.copyCursor = 0
			t.viewport.GotoTop()
			t.refreshContent()
			return *t, nil
		}
		t.gPending = true
		return *t, tea.Tick(gTimeout, func(time.Time) tea.Msg {
			return GTimerExpiredMsg{}
		})
	}
	return *t, nil
}

func (t *Terminal) yankSelection() string {
	if len(t.lines) == 0 {
		return ""
	}
	start := t.copyAnchor
	end := t.copyCursor
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end >= len(t.lines) {
		end = len(t.lines) - 1
	}
	out := make([]string, 0, end-start+1)
	for _, line := range t.lines[start : end+1] {
		out = append(out, ansi.Strip(line.text))
	}
	return strings.Join(out, "\n")
}

func (t *Terminal) copySelectionRange() (int, int) {
	start := t.copyAnchor
	end := t.copyCursor
	if start > end {
		start, end = end, start
	}
	return start, end
}

// StartMouseSelection begins a mouse drag selection at the given
// panel-relative coordinates.
func (t *Terminal) StartMouseSelection(relX, relY int) {
	t.copyMode = false
	bufLine := t.viewport.YOffset + (relY - 1)
	if bufLine < 0 {
		bufLine = 0
	}
	col := relX - 1 // account for left border
	if col < 0 {
		col = 0
	}
	t.mouseSelecting = true
	t.mouseAnchorLine = bufLine
	t.mouseAnchorCol = col
	t.mouseCurrentLine = bufLine
	t.mouseCurrentCol = col
	t.follow = false
	t.refreshContent()
}

// ExtendMouseSelection updates the cursor position during a mouse drag.
func (t *Terminal) ExtendMouseSelection(relX, relY int) {
	if !t.mouseSelecting {
		return
	}
	bufLine := t.viewport.YOffset + (relY - 1)
	if bufLine < 0 {
		bufLine = 0
	}
	col := relX - 1
	if col < 0 {
		col = 0
	}
	t.mouseCurrentLine = bufLine
	t.mouseCurrentCol = col
	t.refreshContent()
}

// FinalizeMouseSelection ends the mouse drag and returns the selected
// text. Returns empty string for single-click (no drag).
func (t *Terminal) FinalizeMouseSelection(relX, relY int) string {
	if !t.mouseSelecting {
		return ""
	}
	t.mouseSelecting = false
	bufLine := t.viewport.YOffset + (relY - 1)
	if bufLine < 0 {
		bufLine = 0
	}
	col := relX - 1
	if col < 0 {
		col = 0
	}
	t.mouseCurrentLine = bufLine
	t.mouseCurrentCol = col

	// Single click (same position) — no copy
	if t.mouseAnchorLine == t.mouseCurrentLine && t.mouseAnchorCol == t.mouseCurrentCol {
		t.refreshContent()
		return ""
	}

	content := t.renderContentBase()
	sl, sc, el, ec := t.normalizedMouseSelection()
	text := extractCharSelection(content, sl, sc, el, ec)
	t.refreshContent()
	return text
}

// CancelMouseSelection clears mouse selection state without copying.
func (t *Terminal) CancelMouseSelection() {
	t.mouseSelecting = false
	t.refreshContent()
}

// normalizedMouseSelection returns the mouse selection with start before end.
func (t *Terminal) normalizedMouseSelection() (startLine, startCol, endLine, endCol int) {
	startLine, startCol = t.mouseAnchorLine, t.mouseAnchorCol
	endLine, endCol = t.mouseCurrentLine, t.mouseCurrentCol
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startLine, startCol, endLine, endCol = endLine, endCol, startLine, startCol
	}
	return
}

// formatOutput styles scrollback lines. Child output passes through
// untouched to preserve its own ANSI sequences; launcher error lines are
// drawn in the error color. Matched lines get search highlighting, which
// wins over the error color.
func formatOutput(lines []termLine, active bool, searchQuery string, matchIndices []int, currentMatch int) string {
	matchSet := make(map[int]bool, len(matchIndices))
	for _, idx := range matchIndices {
		matchSet[idx] = true
	}
	currentMatchLine := -1
	if len(matchIndices) > 0 && currentMatch >= 0 && currentMatch < len(matchIndices) {
		currentMatchLine = matchIndices[currentMatch]
	}

	styled := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case searchQuery != "" && matchSet[i]:
			isCurrent := i == currentMatchLine
			styled = append(styled, highlightMatches(ansi.Strip(line.text), searchQuery, isCurrent))
		case line.err:
			styled = append(styled, styles.StderrStyle.Render(line.text))
		default:
			styled = append(styled, line.text)
		}
	}

	result := strings.Join(styled, "\n")

	if active {
		result += " ▍"
	}

	return result
}

// applySelectionHighlight wraps lines within the selection range with
// SelectionStyle.
func applySelectionHighlight(content string, selStart, selEnd int) string {
	lines := strings.Split(content, "\n")
	for i := selStart; i <= selEnd && i < len(lines); i++ {
		if i >= 0 {
			lines[i] = styles.SelectionStyle.Render(ansi.Strip(lines[i]))
		}
	}
	return strings.Join(lines, "\n")
}

// applyCharSelectionHighlight applies character-level selection
// highlighting. Uses ANSI-aware cutting so styled content is handled
// correctly.
func applyCharSelectionHighlight(content string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		if i < startLine || i > endLine {
			continue
		}
		lineWidth := ansi.StringWidth(lines[i])
		if lineWidth == 0 {
			continue
		}

		var sc, ec int
		if i == startLine && i == endLine {
			sc = startCol
			ec = endCol + 1
		} else if i == startLine {
			sc = startCol
			ec = lineWidth
		} else if i == endLine {
			sc = 0
			ec = endCol + 1
		} else {
			sc = 0
			ec = lineWidth
		}

		if sc > lineWidth {
			sc = lineWidth
		}
		if ec > lineWidth {
			ec = lineWidth
		}
		if sc >= ec {
			continue
		}

		before := ansi.Cut(lines[i], 0, sc)
		selected := ansi.Cut(lines[i], sc, ec)
		after := ansi.Cut(lines[i], ec, lineWidth)
		lines[i] = before + styles.SelectionStyle.Render(ansi.Strip(selected)) + after
	}
	return strings.Join(lines, "\n")
}

// extractCharSelection extracts plain text from a character-level
// selection on styled content.
func extractCharSelection(styledContent string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(styledContent, "\n")
	var result []string

	for i := startLine; i <= endLine && i < len(lines); i++ {
		if i < 0 {
			continue
		}
		lineWidth := ansi.StringWidth(lines[i])

		var sc, ec int
		if i == startLine && i == endLine {
			sc = startCol
			ec = endCol + 1
		} else if i == startLine {
			sc = startCol
			ec = lineWidth
		} else if i == endLine {
			sc = 0
			ec = endCol + 1
		} else {
			sc = 0
			ec = lineWidth
		}

		if sc > lineWidth {
			sc = lineWidth
		}
		if ec > lineWidth {
			ec = lineWidth
		}
		if sc >= ec {
			result = append(result, "")
			continue
		}

		extracted := ansi.Cut(lines[i], sc, ec)
		result = append(result, ansi.Strip(extracted))
	}

	return strings.Join(result, "\n")
}

// highlightMatches wraps occurrences of query in line with highlight
// styling. Case-insensitive literal matching.
func highlightMatches(line, query string, isCurrent bool) string {
	if query == "" {
		return line
	}
	lower := strings.ToLower(line)
	lowerQ := strings.ToLower(query)

	style := styles.SearchHighlightStyle
	if isCurrent {
		style = styles.CurrentMatchStyle
	}

	var b strings.Builder
	start := 0
	qLen := len(lowerQ)
	for {
		idx := strings.Index(lower[start:], lowerQ)
		if idx < 0 {
			b.WriteString(line[start:])
			break
		}
		b.WriteString(line[start : start+idx])
		b.WriteString(style.Render(line[start+idx : start+idx+qLen]))
		start += idx + qLen
	}
	return b.String()
}
