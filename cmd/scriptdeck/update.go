package main

import (
	"fmt"

	"github.com/scriptdeck/scriptdeck/internal/ui/panels"
	"github.com/scriptdeck/scriptdeck/internal/update"
)

func runUpdate(repo string) error {
	fmt.Printf("scriptdeck version %s\n", panels.Version)
	fmt.Println("Checking for updates...")

	rel, err := update.Apply(panels.Version, repo)
	if err != nil {
		return err
	}

	fmt.Printf("Updated to v%s.\n", rel.Version)
	if rel.ReleaseNotes != "" {
		fmt.Printf("\nRelease notes:\n%s\n", rel.ReleaseNotes)
	}
	return nil
}
