package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/term"

	"github.com/numbers21py/miniarcades/internal/config"
	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/leaderboard"
	"github.com/numbers21py/miniarcades/internal/room"
	"github.com/numbers21py/miniarcades/internal/stats"
	"github.com/numbers21py/miniarcades/internal/storage"
)

// app bundles the wiring shared by every command: config, database,
// identity, leaderboard, and stats.
type app struct {
	cfg     config.Config
	db      *storage.Store
	self    leaderboard.Identity
	board   *leaderboard.Board
	tracker *stats.Tracker
}

// openApp loads configuration and opens the local database.
func openApp() (*app, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.Database.Path
	if flagDBPath != "" {
		dbPath = flagDBPath
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	self, err := leaderboard.ResolveIdentity(config.Dir(), cfg.Player.Name)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		db:      db,
		self:    self,
		board:   leaderboard.New(db, self),
		tracker: stats.NewTracker(db),
	}, nil
}

// Close releases the database.
func (a *app) Close() {
	a.db.Close()
}

// roomStore picks the room backend: Redis with local fallback when
// configured and reachable, local otherwise.
func (a *app) roomStore(ctx context.Context) room.Store {
	local := room.NewLocalStore(a.db)

	var client *redis.Client
	if a.cfg.Redis.Addr != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
	}

	return room.Select(ctx, client, local, log.Default())
}

// runtimeConfig builds the game runtime config from the terminal size
// and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
