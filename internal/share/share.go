// Package share composes Telegram share links for rooms and scores.
// The room layer stays transport-agnostic; it receives the composed
// capability as a room.ShareFunc.
package share

import (
	"fmt"
	"net/url"

	"github.com/numbers21py/miniarcades/internal/room"
)

// RoomLink builds a Telegram share link inviting someone into a room.
func RoomLink(botName, roomID, gameType string) string {
	bot := "https://t.me/" + botName
	text := fmt.Sprintf("Join my %s room on MiniArcades! Code: %s", gameType, roomID)
	return "https://t.me/share/url?url=" + url.QueryEscape(bot) + "&text=" + url.QueryEscape(text)
}

// ScoreLink builds a Telegram share link bragging about a score.
func ScoreLink(botName, gameType string, score int) string {
	bot := "https://t.me/" + botName
	text := fmt.Sprintf("I scored %d in %s on MiniArcades! Can you beat me?\n\nPlay at: %s", score, gameType, bot)
	return "https://t.me/share/url?url=" + url.QueryEscape(bot) + "&text=" + url.QueryEscape(text)
}

// FuncFor returns a room.ShareFunc bound to the configured bot, or nil
// when no bot is configured.
func FuncFor(botName string) room.ShareFunc {
	if botName == "" {
		return nil
	}
	return func(roomID, gameType string) string {
		return RoomLink(botName, roomID, gameType)
	}
}
