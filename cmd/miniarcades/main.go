// miniarcades is a terminal arcade of quick games with shared-storage
// multiplayer rooms.
//
// Usage:
//
//	miniarcades list               - List available games
//	miniarcades play <game>        - Play a game
//	miniarcades play <game> --host - Host a multiplayer room
//	miniarcades menu               - Interactive game picker
//	miniarcades scores <game>      - Show the leaderboard for a game
//	miniarcades stats              - Show your play statistics
//	miniarcades rooms <game>       - List open multiplayer rooms
//	miniarcades serve              - Start the SSH server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/numbers21py/miniarcades/internal/games/colormatch"
	_ "github.com/numbers21py/miniarcades/internal/games/dice"
	_ "github.com/numbers21py/miniarcades/internal/games/memory"
	_ "github.com/numbers21py/miniarcades/internal/games/reaction"
	_ "github.com/numbers21py/miniarcades/internal/games/rps"
	_ "github.com/numbers21py/miniarcades/internal/games/slots"
	_ "github.com/numbers21py/miniarcades/internal/games/snake"
	_ "github.com/numbers21py/miniarcades/internal/games/tictactoe"
)

var (
	// Global flags
	flagConfigPath string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "miniarcades",
	Short: "Mini Arcades - quick games for your terminal",
	Long: `Mini Arcades is a terminal gaming platform: eight quick games,
local stats and leaderboards, and code-based multiplayer rooms.

Available commands:
  list     - Show all available games
  play     - Play a game (solo, or --host/--join for multiplayer)
  menu     - Interactive game picker
  scores   - View a game's leaderboard
  stats    - View your play statistics
  rooms    - List open multiplayer rooms
  serve    - Start SSH server for remote play

Examples:
  miniarcades list
  miniarcades play snake
  miniarcades play dice --host
  miniarcades play rps --join A7K2P
  miniarcades menu
  miniarcades serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(serveCmd)
}
