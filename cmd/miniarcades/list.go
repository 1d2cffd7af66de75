package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numbers21py/miniarcades/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "ID", "Title", "Multiplayer")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, g := range games {
		mp := ""
		if g.TwoPlayer {
			mp = "yes"
		}
		fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, g.ID, g.Title, mp)
	}

	fmt.Println()
	fmt.Println("Run 'miniarcades play <id>' to play a game.")
}
