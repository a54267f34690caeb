package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/launcher"
	"github.com/scriptdeck/scriptdeck/internal/script"
	"github.com/scriptdeck/scriptdeck/internal/ui/clipboard"
	"github.com/scriptdeck/scriptdeck/internal/ui/layout"
	"github.com/scriptdeck/scriptdeck/internal/ui/panels"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

const (
	panelScriptList = 0
	panelTerminal   = 1
	numPanels       = 2
)

// animInterval drives the spinner and elapsed-time refresh while a
// script is running.
const animInterval = 150 * time.Millisecond

type App struct {
	config       *config.Config
	registry     *script.Registry
	runner       *launcher.Runner
	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	scriptList   panels.ScriptList
	terminal     panels.Terminal
	inputBar     panels.InputBar
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	addModal     *panels.AddScriptModal
	keys         KeyMap
	ready        bool
	ticking      bool
}

func NewApp(cfg *config.Config) App {
	file := cfg.Scripts.File
	if file == "" {
		var err error
		file, err = script.DefaultPath()
		if err != nil {
			log.Printf("warning: script registry path: %v", err)
			file = "scripts.json"
		}
	}
	registry := script.NewRegistry(file)
	if err := registry.Load(); err != nil {
		log.Printf("warning: script registry load: %v", err)
	}

	runner := launcher.NewRunner(cfg)

	sl := panels.NewScriptList(registry, runner)
	sl.SetFocused(true)

	follow := cfg.UI.FollowOutput == nil || *cfg.UI.FollowOutput
	term := panels.NewTerminal(runner.Buffer(), follow)

	return App{
		config:     cfg,
		registry:   registry,
		runner:     runner,
		scriptList: sl,
		terminal:   term,
		inputBar:   panels.NewInputBar(),
		statusBar:  panels.NewStatusBar(registry, runner),
		keys:       DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForOutput(a.runner.Output()),
		listenForFinished(a.runner.Finished()),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		a.addModal = nil
		return a, nil

	case OutputMsg:
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(msg)
		cmds := []tea.Cmd{cmd, listenForOutput(a.runner.Output())}
		return a, tea.Batch(cmds...)

	case SessionFinishedMsg:
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(msg)
		cmds := []tea.Cmd{
			cmd,
			listenForFinished(a.runner.Finished()),
			a.flash("Process finished", panels.FlashInfo),
		}
		return a, tea.Batch(cmds...)

	case ScriptListUpdatedMsg:
		var cmd tea.Cmd
		a.scriptList, cmd = a.scriptList.Update(msg)
		return a, cmd

	case panels.AnimTickMsg:
		a.scriptList, _ = a.scriptList.Update(msg)
		a.statusBar.Tick()
		if a.runner.Running() {
			return a, animTick()
		}
		a.ticking = false
		return a, nil

	case panels.GTimerExpiredMsg:
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(msg)
		return a, cmd

	case panels.RunScriptMsg:
		return a.startScript(msg.Entry)

	case panels.StopScriptMsg:
		// The finished notification takes it from here.
		a.runner.Stop()
		return a, nil

	case panels.AddScriptMsg:
		entry, err := a.registry.Add(msg.Path)
		if err != nil {
			return a, a.flash(err.Error(), panels.FlashError)
		}
		a.scriptList, _ = a.scriptList.Update(ScriptListUpdatedMsg{})
		return a, a.flash(fmt.Sprintf("Added script: %s", entry.Name), panels.FlashSuccess)

	case panels.RemoveScriptMsg:
		entry, err := a.registry.Remove(msg.Index)
		if err != nil {
			return a, a.flash(err.Error(), panels.FlashError)
		}
		a.scriptList, _ = a.scriptList.Update(ScriptListUpdatedMsg{})
		return a, a.flash(fmt.Sprintf("Removed script: %s", entry.Name), panels.FlashSuccess)

	case panels.SubmitInputMsg:
		if !a.runner.Running() {
			return a, a.flash("no script running", panels.FlashWarning)
		}
		if err := a.runner.SendInput(msg.Line); err != nil {
			return a, a.flash(err.Error(), panels.FlashError)
		}
		return a, nil

	case panels.UnfocusInputMsg:
		a.focusedPanel = panelTerminal
		a.updateFocusState()
		return a, nil

	case panels.ClearScrollbackMsg:
		a.runner.Clear()
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(OutputMsg{})
		return a, cmd

	case panels.YankMsg:
		return a, a.yank(msg.Text)

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.addModal != nil {
		var cmd tea.Cmd
		a.addModal, cmd = a.addModal.Update(msg)
		return a, cmd
	}
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if msg.String() == "ctrl+c" {
		a.runner.Stop()
		return a, tea.Quit
	}

	// The input bar and the terminal's search/copy modes swallow
	// everything, including the global bindings below.
	if a.inputBar.ConsumesKeys() {
		var cmd tea.Cmd
		a.inputBar, cmd = a.inputBar.Update(msg)
		return a, cmd
	}
	if a.focusedPanel == panelTerminal && a.terminal.ConsumesKeys() {
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.runner.Stop()
		return a, tea.Quit
	case key.Matches(msg, a.keys.FocusNext):
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Left):
		if a.focusedPanel == panelTerminal {
			a.focusedPanel = panelScriptList
			a.updateFocusState()
		}
		return a, nil
	case key.Matches(msg, a.keys.Right):
		if a.focusedPanel == panelScriptList {
			a.focusedPanel = panelTerminal
			a.updateFocusState()
		}
		return a, nil
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	case key.Matches(msg, a.keys.AddScript):
		a.addModal = panels.NewAddScriptModal(a.width, a.height)
		return a, a.addModal.Init()
	case key.Matches(msg, a.keys.Input):
		return a, a.inputBar.Focus()
	}

	return a.routeKey(msg)
}

func (a App) startScript(entry script.Entry) (tea.Model, tea.Cmd) {
	if err := a.runner.Run(entry); err != nil {
		return a, a.flash(err.Error(), panels.FlashError)
	}
	a.terminal.SetScript(entry.Name)
	if !a.ticking {
		a.ticking = true
		return a, animTick()
	}
	return a, nil
}

// handleMouse routes mouse events into the terminal panel. Drag
// selections copy to the clipboard on release.
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.addModal != nil || a.helpOverlay != nil {
		return a, nil
	}

	inTerminal := msg.X >= a.layout.ScriptListWidth &&
		msg.Y < a.layout.TerminalHeight

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if inTerminal {
			var cmd tea.Cmd
			a.terminal, cmd = a.terminal.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	relX := msg.X - a.layout.ScriptListWidth
	relY := msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inTerminal {
			a.terminal.CancelMouseSelection()
			return a, nil
		}
		a.terminal.StartMouseSelection(relX, relY)
		return a, nil
	case tea.MouseActionMotion:
		if inTerminal {
			a.terminal.ExtendMouseSelection(relX, relY)
		}
		return a, nil
	case tea.MouseActionRelease:
		text := a.terminal.FinalizeMouseSelection(relX, relY)
		if text != "" {
			return a, a.yank(text)
		}
		return a, nil
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	scriptListView := a.scriptList.View()
	terminalView := a.terminal.View()
	inputBarView := a.inputBar.View()
	statusBarView := a.statusBar.View()

	// Assemble: left column (scripts), right column (terminal over
	// input bar), status bar across the bottom.
	rightCol := lipgloss.JoinVertical(lipgloss.Left, terminalView, inputBarView)
	mainRow := lipgloss.JoinHorizontal(lipgloss.Top, scriptListView, rightCol)
	fullLayout := lipgloss.JoinVertical(lipgloss.Left, mainRow, statusBarView)

	var modalView string
	switch {
	case a.addModal != nil:
		modalView = a.addModal.View()
	case a.helpOverlay != nil:
		modalView = a.helpOverlay.View()
	}
	if modalView != "" {
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modalView,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

func (a App) Runner() *launcher.Runner {
	return a.runner
}

func (a App) Registry() *script.Registry {
	return a.registry
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focusedPanel {
	case panelScriptList:
		var cmd tea.Cmd
		a.scriptList, cmd = a.scriptList.Update(msg)
		return a, cmd
	case panelTerminal:
		var cmd tea.Cmd
		a.terminal, cmd = a.terminal.Update(msg)
		return a, cmd
	}
	return a, nil
}

// yank writes text to the clipboard and flashes the result.
func (a *App) yank(text string) tea.Cmd {
	if err := clipboard.Write(text); err != nil {
		return a.flash(fmt.Sprintf("copy failed: %v", err), panels.FlashError)
	}
	return a.flash("copied to clipboard", panels.FlashSuccess)
}

func (a *App) flash(msg string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(msg, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func (a *App) propagateSizes() {
	l := a.layout
	a.scriptList.SetSize(l.ScriptListWidth, l.ScriptListHeight)
	a.terminal.SetSize(l.TerminalWidth, l.TerminalHeight)
	a.inputBar.SetSize(l.InputBarWidth, l.InputBarHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
	if a.addModal != nil {
		a.addModal.SetSize(a.width, a.height)
	}
}

func (a *App) updateFocusState() {
	a.scriptList.SetFocused(a.focusedPanel == panelScriptList)
	a.terminal.SetFocused(a.focusedPanel == panelTerminal)
}

func animTick() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return panels.AnimTickMsg{}
	})
}

func listenForOutput(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return OutputMsg{}
	}
}

func listenForFinished(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return SessionFinishedMsg{}
	}
}
