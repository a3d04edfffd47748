package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the stages that would be played",
	Long: `Shows the stages in play order, read from --stages or the built-in set.

Files that fail to parse are skipped with a warning in the log.`,
	RunE: runStages,
}

func runStages(_ *cobra.Command, _ []string) error {
	stages, err := shmup.LoadStages(shmup.StagesDir(), logger)
	if err != nil {
		return err
	}

	fmt.Println("Stages:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, st := range stages {
		maxIDLen = max(maxIDLen, len(st.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-20s  %6s  %6s\n", "#", maxIDLen, "ID", "Name", "Tiles", "Events")
	fmt.Printf("  %-3s  %-*s  %-20s  %6s  %6s\n", "-", maxIDLen, "--", "----", "-----", "------")

	for i, st := range stages {
		size := fmt.Sprintf("%dx%d", st.Cols, st.Rows)
		fmt.Printf("  %-3d  %-*s  %-20s  %6s  %6d\n", i+1, maxIDLen, st.ID, st.Name, size, st.EventCount())
	}

	fmt.Println()
	fmt.Println("Run 'shmup play --stage <#>' to start from a stage.")
	return nil
}
