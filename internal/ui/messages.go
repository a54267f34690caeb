package ui

import "github.com/scriptdeck/scriptdeck/internal/ui/panels"

// Type aliases to panels message types so the app can handle them
// unqualified. The panels package stays the single source of truth.
type (
	ScriptListUpdatedMsg = panels.ScriptListUpdatedMsg
	OutputMsg            = panels.OutputMsg
	SessionFinishedMsg   = panels.SessionFinishedMsg
	CloseModalMsg        = panels.CloseModalMsg
	ClearFlashMsg        = panels.ClearFlashMsg
)
