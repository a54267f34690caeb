package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/scriptdeck/scriptdeck/internal/config"
)

const waitDuration = 3 * time.Second

// appAdapter wraps the App (value receiver model) into a model that
// suppresses Init() side effects so the teatest program doesn't block
// forever on the runner's notification channels.
type appAdapter struct {
	app App
}

func newTestAppAdapter(tb testing.TB) *appAdapter {
	tb.Helper()
	cfg := config.DefaultConfig()
	cfg.Scripts.File = filepath.Join(tb.TempDir(), "scripts.json")
	return &appAdapter{app: NewApp(&cfg)}
}

func (a *appAdapter) Init() tea.Cmd {
	// Skip the real Init() which blocks on the runner's channels.
	return nil
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

// seedScript creates a runnable script file in dir and registers it.
func seedScript(tb testing.TB, a *App, dir, name string) {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho ok\n"), 0o755); err != nil {
		tb.Fatal(err)
	}
	if _, err := a.registry.Add(path); err != nil {
		tb.Fatal(err)
	}
	a.scriptList, _ = a.scriptList.Update(ScriptListUpdatedMsg{})
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
