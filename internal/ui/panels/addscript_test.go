package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// containsPlain reports whether s contains sub after ANSI styling is
// stripped.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}

func typeString(t *testing.T, m *AddScriptModal, s string) *AddScriptModal {
	t.Helper()
	for _, ch := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}})
		if m == nil {
			t.Fatal("modal dismissed during typing")
		}
	}
	return m
}

func TestAddScriptModalTyping(t *testing.T) {
	m := NewAddScriptModal(120, 40)
	m = typeString(t, m, "/opt/scripts/deploy.sh")

	if m.PathValue() != "/opt/scripts/deploy.sh" {
		t.Errorf("path value = %q, want %q", m.PathValue(), "/opt/scripts/deploy.sh")
	}
}

func TestAddScriptModalSubmit(t *testing.T) {
	m := NewAddScriptModal(120, 40)
	m = typeString(t, m, "/opt/scripts/deploy.sh")

	result, cmd := m.Update(keyMsg("enter"))
	if result != nil {
		t.Error("modal should be nil after submit")
	}
	if cmd == nil {
		t.Fatal("expected a command from submit")
	}

	msg := cmd()
	add, ok := msg.(AddScriptMsg)
	if !ok {
		t.Fatalf("expected AddScriptMsg, got %T", msg)
	}
	if add.Path != "/opt/scripts/deploy.sh" {
		t.Errorf("path = %q, want %q", add.Path, "/opt/scripts/deploy.sh")
	}
}

func TestAddScriptModalTrimsWhitespace(t *testing.T) {
	m := NewAddScriptModal(120, 40)
	m = typeString(t, m, "  /opt/scripts/backup.py ")

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a command from submit")
	}
	add, ok := cmd().(AddScriptMsg)
	if !ok {
		t.Fatal("expected AddScriptMsg")
	}
	if add.Path != "/opt/scripts/backup.py" {
		t.Errorf("path = %q, want trimmed", add.Path)
	}
}

func TestAddScriptModalEmptySubmit(t *testing.T) {
	m := NewAddScriptModal(120, 40)

	result, cmd := m.Update(keyMsg("enter"))
	if result == nil {
		t.Error("modal should stay open on empty submit")
	}
	if cmd != nil {
		t.Error("should not produce a command on empty submit")
	}
}

func TestAddScriptModalCancel(t *testing.T) {
	m := NewAddScriptModal(120, 40)

	result, cmd := m.Update(keyMsg("esc"))
	if result != nil {
		t.Error("modal should be nil after cancel")
	}
	if cmd == nil {
		t.Fatal("expected a command from cancel")
	}
	if _, ok := cmd().(CloseModalMsg); !ok {
		t.Error("expected CloseModalMsg on cancel")
	}
}

func TestAddScriptModalView(t *testing.T) {
	m := NewAddScriptModal(120, 40)
	view := m.View()

	checks := []string{"Add Script", "Path to script", "add", "Esc"}
	for _, s := range checks {
		if !containsPlain(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}
