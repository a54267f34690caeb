package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/scriptdeck/scriptdeck/internal/launcher"
	"github.com/scriptdeck/scriptdeck/internal/script"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
	"github.com/scriptdeck/scriptdeck/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	registry   *script.Registry
	runner     *launcher.Runner
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(registry *script.Registry, runner *launcher.Runner) StatusBar {
	return StatusBar{registry: registry, runner: runner}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")
	running := s.runner.Running()

	// Build sections
	appName := "scriptdeck " + Version
	if running {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		appName = spinner + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	n := s.registry.Len()
	noun := "scripts"
	if n == 1 {
		noun = "script"
	}
	counts := styles.TextSecondaryStyle.Render(fmt.Sprintf("%d %s", n, noun))

	var state string
	if running {
		name := "?"
		if cur, ok := s.runner.CurrentScript(); ok {
			name = cur.Name
		}
		elapsed := text.FormatElapsed(time.Since(s.runner.StartedAt()))
		state = lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(
			fmt.Sprintf("Running: %s %s", name, elapsed),
		)
	} else {
		state = lipgloss.NewStyle().Foreground(styles.StatusIdle).Render("Ready")
	}

	helpHint := styles.TextSecondaryStyle.Render("?:help")

	left := " " + version + sep + counts + sep + state

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := helpHint + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
