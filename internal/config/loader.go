package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the starting point for
// file discovery. This is the testable entry point — Load() calls it with
// os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first
// config file that exists. Returns empty string if none found (defaults-only
// mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./scriptdeck.yaml (relative to the working dir)
	local := filepath.Join(dir, "scriptdeck.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/scriptdeck/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "scriptdeck", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when
// non-zero. Maps merge at the key level. Pointer-to-bool fields override
// when non-nil.
func merge(base *Config, override *Config) {
	// Terminal
	if override.Terminal.PollIntervalMs != 0 {
		base.Terminal.PollIntervalMs = override.Terminal.PollIntervalMs
	}
	if override.Terminal.ReadChunkBytes != 0 {
		base.Terminal.ReadChunkBytes = override.Terminal.ReadChunkBytes
	}
	if override.Terminal.ScrollbackBytes != 0 {
		base.Terminal.ScrollbackBytes = override.Terminal.ScrollbackBytes
	}

	// Runner — interpreter map merges at key level
	if override.Runner.Interpreter != "" {
		base.Runner.Interpreter = override.Runner.Interpreter
	}
	if override.Runner.Interpreters != nil {
		if base.Runner.Interpreters == nil {
			base.Runner.Interpreters = make(map[string]string)
		}
		for k, v := range override.Runner.Interpreters {
			base.Runner.Interpreters[k] = v
		}
	}

	// Scripts
	if override.Scripts.File != "" {
		base.Scripts.File = override.Scripts.File
	}

	// UI — *bool overrides when non-nil
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.FollowOutput != nil {
		base.UI.FollowOutput = override.UI.FollowOutput
	}
}

// applyEnvOverrides applies SCRIPTDECK_* environment variables on top of the
// config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCRIPTDECK_INTERPRETER"); v != "" {
		cfg.Runner.Interpreter = v
	}
	if v := os.Getenv("SCRIPTDECK_SCRIPTS_FILE"); v != "" {
		cfg.Scripts.File = v
	}
	if v := os.Getenv("SCRIPTDECK_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("SCRIPTDECK_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Terminal.PollIntervalMs = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: SCRIPTDECK_POLL_INTERVAL_MS=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("SCRIPTDECK_SCROLLBACK_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Terminal.ScrollbackBytes = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: SCRIPTDECK_SCROLLBACK_BYTES=%q is not a valid integer, ignoring\n", v)
		}
	}
}
