package panels

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestStatusBarRenderFlow(t *testing.T) {
	sb := NewStatusBar(testRegistry(t, "build.sh"), testRunner())
	sb.SetSize(120)

	tm := teatest.NewTestModel(t, wrapStatusBar(&sb), teatest.WithInitialTermSize(120, 1))
	waitForContains(t, tm, "scriptdeck")
	waitForContains(t, tm, "1 script")
	waitForContains(t, tm, "Ready")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestStatusBarFlashFlow(t *testing.T) {
	sb := NewStatusBar(testRegistry(t), testRunner())
	sb.SetSize(120)
	sb.SetFlashWithLevel("Added script: build.sh", FlashSuccess)

	tm := teatest.NewTestModel(t, wrapStatusBar(&sb), teatest.WithInitialTermSize(120, 1))
	waitForContains(t, tm, "Added script: build.sh")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
