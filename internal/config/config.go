package config

type Config struct {
	Terminal TerminalConfig `yaml:"terminal"`
	Runner   RunnerConfig   `yaml:"runner"`
	Scripts  ScriptsConfig  `yaml:"scripts"`
	UI       UIConfig       `yaml:"ui"`
}

type TerminalConfig struct {
	PollIntervalMs  int `yaml:"poll_interval_ms"`
	ReadChunkBytes  int `yaml:"read_chunk_bytes"`
	ScrollbackBytes int `yaml:"scrollback_bytes"`
}

type RunnerConfig struct {
	Interpreter  string            `yaml:"interpreter"`
	Interpreters map[string]string `yaml:"interpreters"`
}

type ScriptsConfig struct {
	File string `yaml:"file"`
}

type UIConfig struct {
	Theme        string `yaml:"theme"`
	FollowOutput *bool  `yaml:"follow_output"`
}
