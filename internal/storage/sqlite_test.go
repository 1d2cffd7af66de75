package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestUpsertScoreKeepsHighestAndCountsGames(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	entry := LeaderboardEntry{
		GameID:     "snake",
		PlayerID:   "p1",
		PlayerName: "Alice",
		HighScore:  10,
		LastPlayed: now,
	}
	require.NoError(t, s.UpsertScore(entry))

	entry.HighScore = 5 // lower score must not regress the record
	require.NoError(t, s.UpsertScore(entry))

	entry.HighScore = 20
	entry.PlayerName = "Alice2"
	require.NoError(t, s.UpsertScore(entry))

	top, err := s.TopPlayers("snake", 10)
	require.NoError(t, err)
	require.Len(t, top, 1)

	assert.Equal(t, 20, top[0].HighScore)
	assert.Equal(t, 3, top[0].GamesPlayed)
	assert.Equal(t, "Alice2", top[0].PlayerName)
}

func TestTopPlayersOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	for i, score := range []int{30, 10, 50, 20} {
		require.NoError(t, s.UpsertScore(LeaderboardEntry{
			GameID:     "snake",
			PlayerID:   string(rune('a' + i)),
			PlayerName: "Player",
			HighScore:  score,
			LastPlayed: now,
		}))
	}

	top, err := s.TopPlayers("snake", 3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, 50, top[0].HighScore)
	assert.Equal(t, 30, top[1].HighScore)
	assert.Equal(t, 20, top[2].HighScore)
}

func TestPlayerRank(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	scores := map[string]int{"p1": 10, "p2": 30, "p3": 20}
	for id, score := range scores {
		require.NoError(t, s.UpsertScore(LeaderboardEntry{
			GameID:     "dice",
			PlayerID:   id,
			PlayerName: id,
			HighScore:  score,
			LastPlayed: now,
		}))
	}

	rank, err := s.PlayerRank("dice", "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = s.PlayerRank("dice", "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	rank, err = s.PlayerRank("dice", "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
}

func TestStatsDocRoundTripAndReset(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.StatsDoc("dice")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, s.PutStatsDoc("dice", []byte(`{"wins":1}`)))
	require.NoError(t, s.PutStatsDoc("dice", []byte(`{"wins":2}`)))

	doc, err = s.StatsDoc("dice")
	require.NoError(t, err)
	assert.JSONEq(t, `{"wins":2}`, string(doc))

	require.NoError(t, s.ResetStats())

	doc, err = s.StatsDoc("dice")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestRoomSaveLoadDelete(t *testing.T) {
	s := newTestStore(t)

	rec := RoomRecord{
		ID:         "A7K2P",
		GameType:   "dice",
		Host:       "host-1",
		HostName:   "Alice",
		State:      "waiting",
		GameState:  []byte(`{"round":0}`),
		Created:    1000,
		LastUpdate: 1000,
	}
	require.NoError(t, s.SaveRoom(rec))

	loaded, err := s.LoadRoom("A7K2P")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Alice", loaded.HostName)
	assert.JSONEq(t, `{"round":0}`, string(loaded.GameState))

	rec.Guest = "guest-1"
	rec.GuestName = "Bob"
	rec.State = "playing"
	rec.LastUpdate = 2000
	require.NoError(t, s.SaveRoom(rec))

	loaded, err = s.LoadRoom("A7K2P")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "playing", loaded.State)
	assert.Equal(t, "Bob", loaded.GuestName)

	require.NoError(t, s.DeleteRoom("A7K2P"))
	require.NoError(t, s.DeleteRoom("A7K2P")) // absent delete is fine

	loaded, err = s.LoadRoom("A7K2P")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestListRoomsByGameTypeFilters(t *testing.T) {
	s := newTestStore(t)

	rooms := []RoomRecord{
		{ID: "AAAAA", GameType: "dice", Host: "h", HostName: "H", State: "waiting", Created: 100, LastUpdate: 100},
		{ID: "BBBBB", GameType: "dice", Host: "h", HostName: "H", State: "waiting", Created: 300, LastUpdate: 300},
		{ID: "CCCCC", GameType: "dice", Host: "h", HostName: "H", State: "playing", Created: 200, LastUpdate: 200},
		{ID: "DDDDD", GameType: "rps", Host: "h", HostName: "H", State: "waiting", Created: 400, LastUpdate: 400},
	}
	for _, r := range rooms {
		require.NoError(t, s.SaveRoom(r))
	}

	records, err := s.ListRoomsByGameType("dice", "waiting", 150)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BBBBB", records[0].ID)

	records, err = s.ListRoomsByGameType("dice", "waiting", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first
	assert.Equal(t, "BBBBB", records[0].ID)
	assert.Equal(t, "AAAAA", records[1].ID)
}

func TestPruneRooms(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRoom(RoomRecord{ID: "OLDER", GameType: "dice", Host: "h", HostName: "H", State: "waiting", Created: 100, LastUpdate: 100}))
	require.NoError(t, s.SaveRoom(RoomRecord{ID: "FRESH", GameType: "dice", Host: "h", HostName: "H", State: "waiting", Created: 900, LastUpdate: 900}))

	n, err := s.PruneRooms(500)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	gone, err := s.LoadRoom("OLDER")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := s.LoadRoom("FRESH")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
