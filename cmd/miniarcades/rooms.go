package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/numbers21py/miniarcades/internal/registry"
	"github.com/numbers21py/miniarcades/internal/room"
)

var flagWatchRooms bool

var roomsCmd = &cobra.Command{
	Use:   "rooms <game>",
	Short: "List open multiplayer rooms",
	Long: `Show joinable rooms for a multiplayer game, newest first.

With --watch the listing refreshes every couple of seconds until
interrupted.

Examples:
  miniarcades rooms dice
  miniarcades rooms rps --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runRooms,
}

func init() {
	roomsCmd.Flags().BoolVar(&flagWatchRooms, "watch", false, "Keep refreshing the listing")
}

func runRooms(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}
	if !registry.SupportsTwoPlayer(gameID) {
		fail("Error: %q does not support multiplayer rooms.", gameID)
	}

	a, err := openApp()
	if err != nil {
		fail("Error: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	store := a.roomStore(ctx)

	if flagWatchRooms {
		watchRooms(ctx, store, gameID)
		return
	}

	rooms, err := store.ListByGameType(ctx, gameID)
	if err != nil {
		fail("Error listing rooms: %v", err)
	}
	fmt.Print(roomListing(gameID, rooms, time.Now()))
}

// watchRooms refreshes the listing at the browsing cadence until the
// user interrupts.
func watchRooms(ctx context.Context, store room.Store, gameID string) {
	poller := room.NewLobbyPoller(store, nil, log.Default())
	defer poller.Stop()

	poller.Start(ctx, gameID, room.SlowPoll, func(rooms []*room.Room) {
		// Redraw in place so the terminal reads like a live view.
		fmt.Print("\033[H\033[2J")
		fmt.Print(roomListing(gameID, rooms, time.Now()))
		fmt.Println("Refreshing... press Ctrl+C to stop.")
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done
}

// roomListing formats the open-room table shown by the rooms command.
func roomListing(gameID string, rooms []*room.Room, now time.Time) string {
	var b strings.Builder

	if len(rooms) == 0 {
		fmt.Fprintf(&b, "No open %s rooms right now.\n", gameID)
		fmt.Fprintf(&b, "Host one with 'miniarcades play %s --host'.\n", gameID)
		return b.String()
	}

	fmt.Fprintf(&b, "Open %s rooms:\n\n", gameID)
	fmt.Fprintf(&b, "  %-6s  %-20s  %s\n", "Code", "Host", "Created")
	fmt.Fprintf(&b, "  %-6s  %-20s  %s\n", "----", "----", "-------")

	for _, r := range rooms {
		fmt.Fprintf(&b, "  %-6s  %-20s  %s\n", r.ID, r.HostName, timeAgo(now, r.Created))
	}

	fmt.Fprintf(&b, "\nJoin with 'miniarcades play %s --join CODE'.\n", gameID)
	return b.String()
}

// timeAgo formats a unix-millisecond timestamp relative to now.
func timeAgo(now time.Time, unixMilli int64) string {
	seconds := int(now.Sub(time.UnixMilli(unixMilli)).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
