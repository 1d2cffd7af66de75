package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/numbers21py/miniarcades/internal/platform/tui"
	"github.com/numbers21py/miniarcades/internal/registry"
	"github.com/numbers21py/miniarcades/internal/room"
	"github.com/numbers21py/miniarcades/internal/share"
)

var (
	flagHost bool
	flagJoin string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  W/A/S/D, arrows - Move / choose
  Enter/Space     - Confirm (roll, spin, flip, press)
  P               - Pause
  R               - Restart (after game over)
  B/Esc           - Back
  Q/Ctrl+C        - Quit

Multiplayer (dice, rps):
  --host       - Create a room and wait for an opponent
  --join CODE  - Join an existing room by its 5-character code

Examples:
  miniarcades play snake
  miniarcades play reaction --seed 42
  miniarcades play dice --host
  miniarcades play rps --join A7K2P`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagHost, "host", false, "Host a multiplayer room")
	playCmd.Flags().StringVar(&flagJoin, "join", "", "Join a multiplayer room by code")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'miniarcades list' to see available games.")
		os.Exit(1)
	}

	a, err := openApp()
	if err != nil {
		fail("Error: %v", err)
	}
	defer a.Close()

	if flagHost || flagJoin != "" {
		runMultiplayer(a, gameID)
		return
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("Error creating game: %v", err)
	}

	if err := tui.Run(game, a.board, a.tracker, runtimeConfig()); err != nil {
		fail("Error running game: %v", err)
	}
}

// runMultiplayer drives the host/join flow for room-capable games.
func runMultiplayer(a *app, gameID string) {
	if !registry.SupportsTwoPlayer(gameID) {
		fail("Error: %q does not support multiplayer. Try dice or rps.", gameID)
	}

	ctx := context.Background()
	store := a.roomStore(ctx)

	session := room.NewSession(store,
		room.Participant{ID: a.self.ID, Name: a.self.Name},
		room.WithShare(share.FuncFor(a.cfg.Share.BotName)),
	)
	defer session.Dispose()

	cfg := runtimeConfig()
	onlineCfg := tui.OnlineConfig{
		GameID: gameID,
		Host:   flagHost,
		Code:   flagJoin,
	}

	if err := tui.RunOnline(session, a.tracker, onlineCfg, cfg.ScreenW, cfg.ScreenH); err != nil {
		fail("Error running match: %v", err)
	}
}
