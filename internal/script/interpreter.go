package script

import (
	"path/filepath"
	"strings"
)

// InterpreterFor picks the interpreter used to launch path: a per-extension
// override when one matches, otherwise the configured default.
func InterpreterFor(path, fallback string, overrides map[string]string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if interp, ok := overrides[ext]; ok && interp != "" {
			return interp
		}
	}
	return fallback
}
