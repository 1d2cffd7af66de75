package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/numbers21py/miniarcades/internal/room"
)

// Poll handlers run on the poller goroutine, and Poller.Stop waits for
// that goroutine. Both handlers must return even when the event channel
// is full, or quitting the match would hang.
func TestPollHandlersNeverBlockOnFullChannel(t *testing.T) {
	m := OnlineModel{events: make(chan tea.Msg, 2)}
	m.events <- roomEventMsg{}
	m.events <- roomEventMsg{}

	h := m.pollHandlers()

	returned := make(chan struct{})
	go func() {
		h.OnUpdate(&room.Room{ID: "AAAAA"})
		h.OnClosed()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("poll handlers blocked on a full event channel")
	}
}

func TestPollHandlersDeliverWhenChannelHasRoom(t *testing.T) {
	m := OnlineModel{events: make(chan tea.Msg, 2)}
	h := m.pollHandlers()

	h.OnUpdate(&room.Room{ID: "BBBBB", State: room.StatePlaying})
	h.OnClosed()

	if msg, ok := (<-m.events).(roomEventMsg); !ok || msg.r.ID != "BBBBB" {
		t.Fatalf("expected room event for BBBBB, got %#v", msg)
	}
	if _, ok := (<-m.events).(roomClosedMsg); !ok {
		t.Fatal("expected room closed message")
	}
}
