package main

import (
	"fmt"
	"os"
)

const starterConfig = `# scriptdeck configuration
terminal:
  poll_interval_ms: 50     # output pump cadence
  read_chunk_bytes: 1024   # bytes read per tick
  scrollback_bytes: 262144 # terminal buffer bound
runner:
  interpreter: python3     # default interpreter
  interpreters:            # per-extension overrides
    .sh: bash
scripts:
  file: ""                 # registry path; empty = ~/.config/scriptdeck/scripts.json
ui:
  theme: auto              # auto | dark | light
  follow_output: true
`

func runInit() error {
	if _, err := os.Stat("scriptdeck.yaml"); err == nil {
		return fmt.Errorf("scriptdeck.yaml already exists, refusing to overwrite")
	}

	if err := os.WriteFile("scriptdeck.yaml", []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write scriptdeck.yaml: %w", err)
	}
	fmt.Println("  created scriptdeck.yaml")

	fmt.Println("\nscriptdeck init complete.")
	return nil
}
