package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/numbers21py/miniarcades/internal/registry"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show the leaderboard for a game",
	Long: `Display the top players for the specified game, plus your own rank.

Examples:
  miniarcades scores snake
  miniarcades scores reaction`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'miniarcades list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("Error creating game: %v", err)
	}

	a, err := openApp()
	if err != nil {
		fail("Error: %v", err)
	}
	defer a.Close()

	entries, err := a.board.Top(gameID, 10)
	if err != nil {
		fail("Error retrieving leaderboard: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", game.Title())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'miniarcades play %s' to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-20s  %-10s  %-6s  %s\n", "Rank", "Player", "Score", "Games", "Last played")
	fmt.Printf("  %-4s  %-20s  %-10s  %-6s  %s\n", "----", "------", "-----", "-----", "-----------")

	for i, e := range entries {
		name := e.PlayerName
		if e.PlayerID == a.self.ID {
			name += " (you)"
		}
		fmt.Printf("  %-4d  %-20s  %-10d  %-6d  %s\n",
			i+1, name, e.HighScore, e.GamesPlayed, e.LastPlayed.Format("2006-01-02 15:04"))
	}

	rank, err := a.board.Rank(gameID)
	if err == nil && rank > 0 {
		fmt.Println()
		fmt.Printf("Your rank: #%d\n", rank)
	}
}
