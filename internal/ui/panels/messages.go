package panels

import "github.com/scriptdeck/scriptdeck/internal/script"

// ScriptListUpdatedMsg is sent when the script registry changes.
type ScriptListUpdatedMsg struct{}

// OutputMsg is sent when the running session produced new output.
type OutputMsg struct{}

// SessionFinishedMsg is sent when the running session exited.
type SessionFinishedMsg struct{}

// RunScriptMsg asks the app to launch the given script.
type RunScriptMsg struct {
	Entry script.Entry
}

// StopScriptMsg asks the app to stop the running script.
type StopScriptMsg struct{}

// AddScriptMsg asks the app to register a new script path.
type AddScriptMsg struct {
	Path string
}

// RemoveScriptMsg asks the app to remove the script at Index.
type RemoveScriptMsg struct {
	Index int
}

// SubmitInputMsg carries a line typed into the input bar, to be
// written to the running script's stdin.
type SubmitInputMsg struct {
	Line string
}

// UnfocusInputMsg signals that the input bar gave up focus.
type UnfocusInputMsg struct{}

// ClearScrollbackMsg asks the app to discard captured output.
type ClearScrollbackMsg struct{}

// YankMsg carries text destined for the system clipboard.
type YankMsg struct {
	Text string
}

// AnimTickMsg drives spinner animation while a script runs.
type AnimTickMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}
