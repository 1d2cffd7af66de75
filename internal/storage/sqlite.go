// Package storage provides SQLite-based persistence for leaderboard
// scores, per-game statistics, and locally stored multiplayer rooms.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LeaderboardEntry is one player's record on a game's leaderboard.
type LeaderboardEntry struct {
	GameID      string
	PlayerID    string
	PlayerName  string
	HighScore   int
	GamesPlayed int
	LastPlayed  time.Time
}

// RoomRecord is the flat row shape for a locally stored multiplayer room.
// Field meanings follow the room wire contract; GameState is kept as an
// opaque serialized blob.
type RoomRecord struct {
	ID         string
	GameType   string
	Host       string
	HostName   string
	Guest      string
	GuestName  string
	State      string
	GameState  []byte
	Created    int64 // Unix milliseconds
	LastUpdate int64 // Unix milliseconds
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			high_score INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			last_played INTEGER NOT NULL DEFAULT 0,
			UNIQUE(game_id, player_id)
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(game_id, high_score DESC);

		CREATE TABLE IF NOT EXISTS stats (
			game_id TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			game_type TEXT NOT NULL,
			host TEXT NOT NULL,
			host_name TEXT NOT NULL,
			guest TEXT NOT NULL DEFAULT '',
			guest_name TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL,
			game_state BLOB,
			created INTEGER NOT NULL,
			last_update INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rooms_browse ON rooms(game_type, state, created DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// --- Leaderboard ---

// UpsertScore records a played game for the player, keeping the highest
// score seen so far and refreshing the display name.
func (s *Store) UpsertScore(e LeaderboardEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO leaderboard (game_id, player_id, player_name, high_score, games_played, last_played)
		 VALUES (?, ?, ?, ?, 1, ?)
		 ON CONFLICT(game_id, player_id) DO UPDATE SET
			high_score = MAX(high_score, excluded.high_score),
			player_name = excluded.player_name,
			games_played = games_played + 1,
			last_played = excluded.last_played`,
		e.GameID, e.PlayerID, e.PlayerName, e.HighScore, e.LastPlayed.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert score: %w", err)
	}
	return nil
}

// TopPlayers retrieves the top N leaderboard entries for the given game,
// ordered by high score descending.
func (s *Store) TopPlayers(gameID string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT game_id, player_id, player_name, high_score, games_played, last_played
		 FROM leaderboard
		 WHERE game_id = ?
		 ORDER BY high_score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var lastPlayed int64
		if err := rows.Scan(&e.GameID, &e.PlayerID, &e.PlayerName, &e.HighScore, &e.GamesPlayed, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.LastPlayed = time.UnixMilli(lastPlayed)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerRank returns the 1-based rank of the player on the game's
// leaderboard, or 0 if the player has no entry.
func (s *Store) PlayerRank(gameID, playerID string) (int, error) {
	var own sql.NullInt64
	err := s.db.QueryRow(
		`SELECT high_score FROM leaderboard WHERE game_id = ? AND player_id = ?`,
		gameID, playerID,
	).Scan(&own)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}

	var ahead int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM leaderboard WHERE game_id = ? AND high_score > ?`,
		gameID, own.Int64,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}

	return ahead + 1, nil
}

// --- Stats ---

// StatsDoc returns the stored statistics document for the game, or nil
// if none has been saved yet.
func (s *Store) StatsDoc(gameID string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRow(
		`SELECT doc FROM stats WHERE game_id = ?`, gameID,
	).Scan(&doc)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return doc, nil
}

// PutStatsDoc stores the statistics document for the game, replacing any
// previous one.
func (s *Store) PutStatsDoc(gameID string, doc []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO stats (game_id, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		gameID, doc, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// ResetStats deletes all statistics documents.
func (s *Store) ResetStats() error {
	if _, err := s.db.Exec(`DELETE FROM stats`); err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	return nil
}

// --- Rooms ---

// SaveRoom upserts a room record by id.
func (s *Store) SaveRoom(r RoomRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO rooms (id, game_type, host, host_name, guest, guest_name, state, game_state, created, last_update)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			game_type = excluded.game_type,
			host = excluded.host,
			host_name = excluded.host_name,
			guest = excluded.guest,
			guest_name = excluded.guest_name,
			state = excluded.state,
			game_state = excluded.game_state,
			created = excluded.created,
			last_update = excluded.last_update`,
		r.ID, r.GameType, r.Host, r.HostName, r.Guest, r.GuestName, r.State, r.GameState, r.Created, r.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save room: %w", err)
	}
	return nil
}

// LoadRoom returns the room record with the given id, or nil if absent.
func (s *Store) LoadRoom(id string) (*RoomRecord, error) {
	var r RoomRecord
	err := s.db.QueryRow(
		`SELECT id, game_type, host, host_name, guest, guest_name, state, game_state, created, last_update
		 FROM rooms WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameType, &r.Host, &r.HostName, &r.Guest, &r.GuestName, &r.State, &r.GameState, &r.Created, &r.LastUpdate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load room: %w", err)
	}
	return &r, nil
}

// DeleteRoom removes the room record; deleting an absent room is not an
// error.
func (s *Store) DeleteRoom(id string) error {
	if _, err := s.db.Exec(`DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage: cannot delete room: %w", err)
	}
	return nil
}

// ListRoomsByGameType returns rooms for the game type in the given state
// with last_update at or after the cutoff, newest first.
func (s *Store) ListRoomsByGameType(gameType, state string, updatedAfter int64) ([]RoomRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, game_type, host, host_name, guest, guest_name, state, game_state, created, last_update
		 FROM rooms
		 WHERE game_type = ? AND state = ? AND last_update >= ?
		 ORDER BY created DESC`,
		gameType, state, updatedAfter,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rooms: %w", err)
	}
	defer rows.Close()

	var records []RoomRecord
	for rows.Next() {
		var r RoomRecord
		if err := rows.Scan(&r.ID, &r.GameType, &r.Host, &r.HostName, &r.Guest, &r.GuestName, &r.State, &r.GameState, &r.Created, &r.LastUpdate); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PruneRooms deletes rooms whose last_update is older than the cutoff.
// Returns the number of rooms removed.
func (s *Store) PruneRooms(updatedBefore int64) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM rooms WHERE last_update < ?`, updatedBefore)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune rooms: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
