package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run — errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Terminal.PollIntervalMs < 10 || cfg.Terminal.PollIntervalMs > 1000 {
		errs = append(errs, fmt.Sprintf("terminal.poll_interval_ms %d must be between 10 and 1000", cfg.Terminal.PollIntervalMs))
	}
	if cfg.Terminal.ReadChunkBytes < 64 || cfg.Terminal.ReadChunkBytes > 65536 {
		errs = append(errs, fmt.Sprintf("terminal.read_chunk_bytes %d must be between 64 and 65536", cfg.Terminal.ReadChunkBytes))
	}
	if cfg.Terminal.ScrollbackBytes < 4096 {
		errs = append(errs, fmt.Sprintf("terminal.scrollback_bytes %d must be at least 4096", cfg.Terminal.ScrollbackBytes))
	}

	if strings.TrimSpace(cfg.Runner.Interpreter) == "" {
		errs = append(errs, "runner.interpreter must not be empty")
	}
	for ext := range cfg.Runner.Interpreters {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("runner.interpreters key %q must start with a dot", ext))
		}
	}

	switch cfg.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"auto\", \"dark\", or \"light\"", cfg.UI.Theme))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
