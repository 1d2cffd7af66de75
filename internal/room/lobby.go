package room

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// LobbyHandler receives the current open-room listing on every poll
// tick. It runs on the poller goroutine and must not call Stop.
type LobbyHandler func([]*Room)

// LobbyPoller re-reads the joinable rooms for one game type on a fixed
// interval. Browsing tolerates more lag than an active match, so lobby
// views run it at SlowPoll rather than FastPoll. At most one
// subscription is active at a time, with the same Start/Stop semantics
// as Poller.
type LobbyPoller struct {
	store  Store
	clock  clockwork.Clock
	logger *log.Logger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewLobbyPoller creates a lobby poller over the given store.
func NewLobbyPoller(store Store, clock clockwork.Clock, logger *log.Logger) *LobbyPoller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &LobbyPoller{store: store, clock: clock, logger: logger}
}

// Start begins polling the listing. The handler fires once immediately
// with the current listing, then again on every interval tick. Any
// previous subscription is cancelled before the new timer is installed.
func (p *LobbyPoller) Start(ctx context.Context, gameType string, interval time.Duration, h LobbyHandler) {
	p.Stop()

	p.mu.Lock()
	stop := make(chan struct{})
	p.stop = stop
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx, gameType, interval, h, stop)
}

// Stop cancels the active subscription, if any. It blocks until the
// polling goroutine has exited, so no pending callback fires after Stop
// returns. Idempotent.
func (p *LobbyPoller) Stop() {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Active reports whether a subscription is currently polling.
func (p *LobbyPoller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *LobbyPoller) run(ctx context.Context, gameType string, interval time.Duration, h LobbyHandler, stop chan struct{}) {
	defer p.wg.Done()

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	p.list(ctx, gameType, h)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.clearStop(stop)
			return
		case <-ticker.Chan():
		}

		p.list(ctx, gameType, h)
	}
}

func (p *LobbyPoller) list(ctx context.Context, gameType string, h LobbyHandler) {
	rooms, err := p.store.ListByGameType(ctx, gameType)
	if err != nil {
		// Transient read failure: keep polling, the next tick retries.
		p.logger.Debug("lobby poll failed", "gameType", gameType, "err", err)
		return
	}
	if h != nil {
		h(rooms)
	}
}

// clearStop marks the subscription idle when the goroutine exits on its
// own, so a later Start does not try to cancel a dead channel.
func (p *LobbyPoller) clearStop(stop chan struct{}) {
	p.mu.Lock()
	if p.stop == stop {
		p.stop = nil
	}
	p.mu.Unlock()
}
