package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetStats bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your play statistics",
	Long: `Display per-game statistics: wins, losses, streaks, best times
and high scores.

Examples:
  miniarcades stats
  miniarcades stats --reset`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagResetStats, "reset", false, "Clear all statistics")
}

func runStats(_ *cobra.Command, _ []string) {
	a, err := openApp()
	if err != nil {
		fail("Error: %v", err)
	}
	defer a.Close()

	if flagResetStats {
		if err := a.tracker.Reset(); err != nil {
			fail("Error resetting stats: %v", err)
		}
		fmt.Println("Statistics cleared.")
		return
	}

	sum, err := a.tracker.Summarize()
	if err != nil {
		fail("Error loading stats: %v", err)
	}

	fmt.Println("Your statistics")
	fmt.Println()
	fmt.Printf("  Games played: %d\n", sum.TotalGames)
	fmt.Printf("  Games won:    %d\n", sum.TotalWins)
	if sum.BestReaction > 0 {
		fmt.Printf("  Best reaction: %dms\n", sum.BestReaction)
	}
	fmt.Println()

	dice, err := a.tracker.Dice()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if dice.Total > 0 {
		fmt.Printf("  Dice:        %d-%d (best streak %d)\n", dice.Wins, dice.Losses, dice.BestStreak)
	}

	rps, err := a.tracker.RPS()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if rps.Total > 0 {
		fmt.Printf("  RPS:         %d-%d (best streak %d)\n", rps.Wins, rps.Losses, rps.BestStreak)
	}

	reaction, err := a.tracker.Reaction()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if reaction.Total > 0 {
		fmt.Printf("  Reaction:    best %dms, average %.0fms over %d attempts\n",
			reaction.BestTime, reaction.AverageTime, reaction.Attempts)
	}

	memory, err := a.tracker.Memory()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if memory.Total > 0 {
		fmt.Printf("  Memory:      %d wins, best %d moves\n", memory.Wins, memory.BestScore)
	}

	snakeStats, err := a.tracker.Snake()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if snakeStats.Total > 0 {
		fmt.Printf("  Snake:       high score %d, best length %d\n", snakeStats.HighScore, snakeStats.BestLength)
	}

	ttt, err := a.tracker.TicTacToe()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if ttt.Total > 0 {
		fmt.Printf("  Tic-tac-toe: %d-%d-%d (W-L-D)\n", ttt.Wins, ttt.Losses, ttt.Draws)
	}

	slotsStats, err := a.tracker.Slots()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if slotsStats.Total > 0 {
		fmt.Printf("  Slots:       %d spins, best win %d\n", slotsStats.Total, slotsStats.BestWin)
	}

	cm, err := a.tracker.ColorMatch()
	if err != nil {
		fail("Error loading stats: %v", err)
	}
	if cm.Total > 0 {
		fmt.Printf("  Color match: high score %d over %d runs\n", cm.HighScore, cm.Total)
	}

	if sum.TotalGames == 0 {
		fmt.Println("  Nothing recorded yet. Go play something!")
	}
}
