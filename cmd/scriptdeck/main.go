package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/ui"
	"github.com/scriptdeck/scriptdeck/internal/ui/styles"
)

// releaseRepo is the GitHub slug used for version checks and self-update.
const releaseRepo = "scriptdeck/scriptdeck"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			runVersion(releaseRepo)
			return
		case "update":
			if err := runUpdate(releaseRepo); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "init":
			if err := runInit(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			usage()
			os.Exit(2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if os.Getenv("SCRIPTDECK_DEBUG") != "" {
		f, err := tea.LogToFile("scriptdeck.log", "scriptdeck")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		// Stray log writes would land in the alt screen otherwise.
		log.SetOutput(io.Discard)
	}

	styles.ApplyTheme(cfg.UI.Theme)

	app := ui.NewApp(cfg)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if a, ok := finalModel.(ui.App); ok {
		// Idempotent; covers exits that bypassed the quit keys.
		a.Runner().Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`scriptdeck runs your scripts from a terminal dashboard.

Usage:
  scriptdeck            launch the TUI
  scriptdeck init       write a starter scriptdeck.yaml
  scriptdeck version    print the version and check for updates
  scriptdeck update     self-update to the latest release
`)
}
