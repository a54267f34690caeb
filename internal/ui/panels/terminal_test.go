package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scriptdeck/scriptdeck/internal/launcher"
)

func testBuffer(lines ...string) *launcher.Buffer {
	buf := launcher.NewBuffer(0)
	for _, l := range lines {
		buf.Append(l+"\n", false)
	}
	return buf
}

func TestTerminalTitle(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(60, 20)
	term.SetScript("deploy.sh")

	view := term.View()
	if !strings.Contains(view, "Terminal: deploy.sh") {
		t.Error("expected title to name the running script")
	}
}

func TestTerminalDefaultContent(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 30)

	view := term.View()
	if !strings.Contains(view, "No script running") {
		t.Error("expected empty state message before any launch")
	}
}

func TestTerminalWaitingContent(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 30)
	term.SetScript("slow.py")

	view := term.View()
	if !strings.Contains(view, "Waiting for output...") {
		t.Error("expected waiting message for a launched script with no output")
	}
}

func TestTerminalFollowDefault(t *testing.T) {
	if term := NewTerminal(testBuffer(), true); !term.follow {
		t.Error("expected follow on when configured on")
	}
	if term := NewTerminal(testBuffer(), false); term.follow {
		t.Error("expected follow off when configured off")
	}
}

func TestTerminalBorderPresent(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(40, 10)
	view := term.View()

	if !strings.Contains(view, "╭") || !strings.Contains(view, "╰") {
		t.Error("expected border characters in terminal view")
	}
}

func TestTerminalStreamingCursor(t *testing.T) {
	lines := []termLine{{text: "line one"}, {text: "line two"}}
	if content := formatOutput(lines, true, "", nil, 0); !strings.Contains(content, "▍") {
		t.Error("expected streaming cursor ▍ while active")
	}
	if content := formatOutput(lines, false, "", nil, 0); strings.Contains(content, "▍") {
		t.Error("expected no streaming cursor when inactive")
	}
}

func TestTerminalANSIPassThrough(t *testing.T) {
	// Child output keeps its own escape sequences
	lines := []termLine{{text: "\033[31mred error text\033[0m"}}
	content := formatOutput(lines, false, "", nil, 0)
	if !strings.Contains(content, "\033[31m") {
		t.Error("expected ANSI escape sequence preserved in child output")
	}
}

func TestTerminalErrLineTextPreserved(t *testing.T) {
	lines := []termLine{{text: "Error starting process: exec: not found", err: true}}
	content := formatOutput(lines, false, "", nil, 0)
	if !strings.Contains(content, "Error starting process") {
		t.Error("expected launcher error text preserved")
	}
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name   string
		chunks []launcher.Chunk
		want   []termLine
	}{
		{
			name:   "single unterminated line",
			chunks: []launcher.Chunk{{Text: "partial"}},
			want:   []termLine{{text: "partial"}},
		},
		{
			name:   "terminated lines",
			chunks: []launcher.Chunk{{Text: "one\ntwo\n"}},
			want:   []termLine{{text: "one"}, {text: "two"}},
		},
		{
			name:   "blank line preserved",
			chunks: []launcher.Chunk{{Text: "one\n\ntwo"}},
			want:   []termLine{{text: "one"}, {}, {text: "two"}},
		},
		{
			name:   "line spanning chunks",
			chunks: []launcher.Chunk{{Text: "ab"}, {Text: "cd\n"}},
			want:   []termLine{{text: "abcd"}},
		},
		{
			name:   "error flag carried",
			chunks: []launcher.Chunk{{Text: "ok\n"}, {Text: "boom\n", Err: true}},
			want:   []termLine{{text: "ok"}, {text: "boom", err: true}},
		},
		{
			name:   "mixed flags on one line",
			chunks: []launcher.Chunk{{Text: "out"}, {Text: " fail\n", Err: true}},
			want:   []termLine{{text: "out fail", err: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitChunks(tt.chunks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// --- gg state machine tests ---

func TestTerminalGGJumpsToTop(t *testing.T) {
	buf := launcher.NewBuffer(0)
	for i := 0; i < 50; i++ {
		buf.Append("line of script output\n", false)
	}
	term := NewTerminal(buf, true)
	term.SetSize(80, 10)

	// Viewport is at the bottom (follow mode). First g press:
	var cmd tea.Cmd
	term, cmd = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if !term.gPending {
		t.Fatal("expected gPending to be true after first g")
	}
	if cmd == nil {
		t.Fatal("expected timer cmd after first g")
	}
	// Second g press before timer:
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if term.gPending {
		t.Error("expected gPending to be false after gg")
	}
	if term.follow {
		t.Error("expected follow to be disabled after gg")
	}
	if term.viewport.YOffset != 0 {
		t.Errorf("expected viewport at top (offset 0), got %d", term.viewport.YOffset)
	}
}

func TestTerminalGTimerExpiry(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if !term.gPending {
		t.Fatal("expected gPending after first g")
	}
	term, _ = term.Update(GTimerExpiredMsg{})
	if term.gPending {
		t.Error("expected gPending to be cleared after timer expiry")
	}
}

func TestTerminalGCapitalFollows(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 10)
	term.follow = false
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if !term.follow {
		t.Error("expected G to re-enable follow")
	}
}

func TestTerminalFollowToggle(t *testing.T) {
	term := NewTerminal(testBuffer("one", "two"), true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if term.follow {
		t.Error("expected f to disable follow")
	}
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if !term.follow {
		t.Error("expected f to re-enable follow")
	}
}

func TestTerminalScrollDisablesFollow(t *testing.T) {
	buf := launcher.NewBuffer(0)
	for i := 0; i < 50; i++ {
		buf.Append("line\n", false)
	}
	term := NewTerminal(buf, true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if term.follow {
		t.Error("expected scroll up to disable follow")
	}
}

// --- Search tests ---

func TestTerminalSearchActivation(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 20)
	term.SetFocused(true)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !term.searching {
		t.Error("expected searching to be true after /")
	}
}

func TestTerminalSearchEscClears(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 20)
	term.SetFocused(true)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !term.searching {
		t.Fatal("expected searching to be true")
	}
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if term.searching {
		t.Error("expected searching to be false after Esc")
	}
	if term.searchQuery != "" {
		t.Error("expected searchQuery to be cleared after Esc")
	}
}

func TestTerminalSearchEscClearsConfirmedQuery(t *testing.T) {
	term := NewTerminal(testBuffer("alpha line", "beta line"), true)
	term.SetSize(80, 20)
	term.SetFocused(true)

	term.searchQuery = "alpha"
	term.recomputeMatches()
	if !term.ConsumesKeys() {
		t.Fatal("expected active query to consume keys")
	}

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if term.searchQuery != "" {
		t.Error("expected confirmed query to be cleared after Esc")
	}
	if term.ConsumesKeys() {
		t.Error("expected ConsumesKeys false once the query is cleared")
	}
}

func TestTerminalSearchNavigation(t *testing.T) {
	term := NewTerminal(testBuffer(
		"first error line",
		"second ok line",
		"third error line",
	), false)
	term.SetSize(80, 20)

	term.searchQuery = "error"
	term.recomputeMatches()

	if len(term.matchIndices) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(term.matchIndices))
	}
	if term.matchIndices[0] != 0 || term.matchIndices[1] != 2 {
		t.Errorf("expected matches at lines 0 and 2, got %v", term.matchIndices)
	}

	term.currentMatch = 0
	term.nextMatch()
	if term.currentMatch != 1 {
		t.Errorf("expected currentMatch=1 after next, got %d", term.currentMatch)
	}

	term.nextMatch()
	if term.currentMatch != 0 {
		t.Errorf("expected currentMatch=0 after wrap, got %d", term.currentMatch)
	}

	term.prevMatch()
	if term.currentMatch != 1 {
		t.Errorf("expected currentMatch=1 after prev wrap, got %d", term.currentMatch)
	}
}

func TestTerminalSearchCaseInsensitive(t *testing.T) {
	term := NewTerminal(testBuffer("ERROR: something failed", "all good here"), false)
	term.searchQuery = "error"
	term.recomputeMatches()

	if len(term.matchIndices) != 1 {
		t.Fatalf("expected 1 case-insensitive match, got %d", len(term.matchIndices))
	}
	if term.matchIndices[0] != 0 {
		t.Errorf("expected match at line 0, got %d", term.matchIndices[0])
	}
}

func TestTerminalSearchIgnoresAnsi(t *testing.T) {
	term := NewTerminal(testBuffer("\033[31mError:\033[0m bad input"), false)
	term.searchQuery = "error"
	term.recomputeMatches()

	if len(term.matchIndices) != 1 {
		t.Fatalf("expected match through ANSI styling, got %d", len(term.matchIndices))
	}
}

func TestTerminalSearchNoMatches(t *testing.T) {
	term := NewTerminal(testBuffer("line one", "line two"), false)
	term.searchQuery = "nonexistent"
	term.recomputeMatches()

	if len(term.matchIndices) != 0 {
		t.Errorf("expected 0 matches, got %d", len(term.matchIndices))
	}
}

func TestTerminalConsumesKeys(t *testing.T) {
	term := NewTerminal(testBuffer("one", "two"), true)
	term.SetSize(80, 20)

	if term.ConsumesKeys() {
		t.Error("expected ConsumesKeys false at rest")
	}
	term.searching = true
	if !term.ConsumesKeys() {
		t.Error("expected ConsumesKeys true while typing a query")
	}
	term.searching = false
	term.searchQuery = "x"
	if !term.ConsumesKeys() {
		t.Error("expected ConsumesKeys true with an active query")
	}
	term.searchQuery = ""
	term.copyMode = true
	if !term.ConsumesKeys() {
		t.Error("expected ConsumesKeys true in copy mode")
	}
}

func TestHighlightMatchesBasic(t *testing.T) {
	result := highlightMatches("hello world hello", "hello", false)
	if strings.Count(result, "hello") < 2 {
		t.Error("expected both occurrences of 'hello' to be present")
	}
	if !strings.Contains(result, "world") {
		t.Error("expected 'world' to be preserved between matches")
	}
}

func TestHighlightMatchesCaseInsensitive(t *testing.T) {
	result := highlightMatches("Hello HELLO hello", "hello", false)
	if !strings.Contains(result, "Hello") {
		t.Error("expected original-case 'Hello' preserved")
	}
	if !strings.Contains(result, "HELLO") {
		t.Error("expected original-case 'HELLO' preserved")
	}
}

func TestHighlightMatchesEmptyQuery(t *testing.T) {
	if result := highlightMatches("hello world", "", false); result != "hello world" {
		t.Error("expected empty query to return line unchanged")
	}
}

// --- Copy mode tests ---

func TestTerminalCopyModeYank(t *testing.T) {
	term := NewTerminal(testBuffer(
		"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golf", "hotel", "india", "juliet",
	), true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if !term.copyMode {
		t.Fatal("expected copy mode after y")
	}
	anchor := term.copyAnchor

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if term.copyCursor != anchor+1 {
		t.Errorf("expected cursor %d after j, got %d", anchor+1, term.copyCursor)
	}

	term, cmd := term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if term.copyMode {
		t.Error("expected copy mode to end after yank")
	}
	if cmd == nil {
		t.Fatal("expected a yank command")
	}
	yank, ok := cmd().(YankMsg)
	if !ok {
		t.Fatalf("expected YankMsg, got %T", cmd())
	}
	if !strings.Contains(yank.Text, "\n") {
		t.Errorf("expected two yanked lines, got %q", yank.Text)
	}
}

func TestTerminalCopyModeEsc(t *testing.T) {
	term := NewTerminal(testBuffer("alpha", "bravo"), true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if !term.copyMode {
		t.Fatal("expected copy mode after y")
	}
	term, cmd := term.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if term.copyMode {
		t.Error("expected copy mode cancelled on Esc")
	}
	if cmd != nil {
		t.Error("expected no command on cancel")
	}
}

func TestTerminalCopyModeEmptyBuffer(t *testing.T) {
	term := NewTerminal(testBuffer(), true)
	term.SetSize(80, 10)

	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if term.copyMode {
		t.Error("expected no copy mode with empty scrollback")
	}
}

// --- Action key tests ---

func TestTerminalStopKey(t *testing.T) {
	term := NewTerminal(testBuffer("running..."), true)
	term.SetSize(80, 10)
	term.SetScript("deploy.sh")

	term, cmd := term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("expected stop command while active")
	}
	if _, ok := cmd().(StopScriptMsg); !ok {
		t.Fatalf("expected StopScriptMsg, got %T", cmd())
	}

	term, _ = term.Update(SessionFinishedMsg{})
	_, cmd = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("expected no stop command when idle")
	}
}

func TestTerminalClearKey(t *testing.T) {
	term := NewTerminal(testBuffer("old output"), true)
	term.SetSize(80, 10)

	_, cmd := term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if cmd == nil {
		t.Fatal("expected clear command")
	}
	if _, ok := cmd().(ClearScrollbackMsg); !ok {
		t.Fatalf("expected ClearScrollbackMsg, got %T", cmd())
	}
}

// --- Output / lifecycle tests ---

func TestTerminalOutputFollows(t *testing.T) {
	buf := testBuffer("one")
	term := NewTerminal(buf, true)
	term.SetSize(80, 10)

	for i := 0; i < 50; i++ {
		buf.Append("more output\n", false)
	}
	term, _ = term.Update(OutputMsg{})
	if !term.viewport.AtBottom() {
		t.Error("expected viewport at bottom while following")
	}
}

func TestTerminalOutputKeepsPositionWhenNotFollowing(t *testing.T) {
	buf := launcher.NewBuffer(0)
	for i := 0; i < 50; i++ {
		buf.Append("line\n", false)
	}
	term := NewTerminal(buf, true)
	term.SetSize(80, 10)

	// gg to the top, then more output arrives
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	term, _ = term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	buf.Append("new line\n", false)
	term, _ = term.Update(OutputMsg{})
	if term.viewport.YOffset != 0 {
		t.Errorf("expected viewport to stay at top, got offset %d", term.viewport.YOffset)
	}
}

func TestTerminalSetScriptClearsSearch(t *testing.T) {
	term := NewTerminal(testBuffer("one"), true)
	term.SetSize(80, 20)
	term.searchQuery = "test"
	term.matchIndices = []int{0}
	term.searching = true
	term.copyMode = true

	term.SetScript("deploy.sh")

	if term.searchQuery != "" {
		t.Error("expected searchQuery cleared on launch")
	}
	if term.searching {
		t.Error("expected searching cleared on launch")
	}
	if term.matchIndices != nil {
		t.Error("expected matchIndices cleared on launch")
	}
	if term.copyMode {
		t.Error("expected copy mode cleared on launch")
	}
	if !term.Active() {
		t.Error("expected terminal active after launch")
	}
	if !term.follow {
		t.Error("expected follow re-enabled on launch")
	}
}

func TestTerminalSessionFinishedKeepsSearch(t *testing.T) {
	term := NewTerminal(testBuffer("some error output"), true)
	term.SetSize(80, 20)
	term.SetScript("deploy.sh")
	term.searchQuery = "error"
	term.recomputeMatches()

	term, _ = term.Update(SessionFinishedMsg{})
	if term.Active() {
		t.Error("expected terminal inactive after session end")
	}
	if term.searchQuery != "error" {
		t.Error("expected search query to survive session end")
	}
}

// --- Mouse selection tests ---

func TestTerminalMouseSelection(t *testing.T) {
	term := NewTerminal(testBuffer("alpha bravo", "charlie delta"), false)
	term.SetSize(80, 10)

	term.StartMouseSelection(1, 1)
	if !term.mouseSelecting {
		t.Fatal("expected mouse selection to start")
	}
	term.ExtendMouseSelection(5, 1)
	text := term.FinalizeMouseSelection(5, 1)
	if text != "alpha" {
		t.Errorf("selected text = %q, want %q", text, "alpha")
	}
	if term.mouseSelecting {
		t.Error("expected selection to end after release")
	}
}

func TestTerminalMouseSingleClickNoCopy(t *testing.T) {
	term := NewTerminal(testBuffer("alpha bravo"), false)
	term.SetSize(80, 10)

	term.StartMouseSelection(3, 1)
	text := term.FinalizeMouseSelection(3, 1)
	if text != "" {
		t.Errorf("expected no text for single click, got %q", text)
	}
}

func TestExtractCharSelectionMultiline(t *testing.T) {
	got := extractCharSelection("alpha\nbravo", 0, 3, 1, 2)
	if got != "ha\nbra" {
		t.Errorf("extracted = %q, want %q", got, "ha\nbra")
	}
}
