package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Terminal: TerminalConfig{
			PollIntervalMs:  50,
			ReadChunkBytes:  1024,
			ScrollbackBytes: 256 * 1024,
		},
		Runner: RunnerConfig{
			Interpreter: "python3",
			Interpreters: map[string]string{
				".sh": "bash",
			},
		},
		Scripts: ScriptsConfig{
			File: "",
		},
		UI: UIConfig{
			Theme:        "auto",
			FollowOutput: boolPtr(true),
		},
	}
}
