package room

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// PollHandlers are the callbacks invoked by the poller. OnUpdate fires
// with a clone of the record whenever it changed since the last poll;
// OnClosed fires once when the room disappears or goes stale. Handlers
// run on the poller goroutine and must not call Stop.
type PollHandlers struct {
	OnUpdate func(*Room)
	OnClosed func()
}

// Poller simulates real-time updates by re-reading a room on a fixed
// interval. At most one subscription is active at a time: starting a
// new one cancels the previous timer first, and Stop is synchronous —
// no callback fires after it returns.
type Poller struct {
	store  Store
	clock  clockwork.Clock
	logger *log.Logger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewPoller creates a poller over the given store.
func NewPoller(store Store, clock clockwork.Clock, logger *log.Logger) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{store: store, clock: clock, logger: logger}
}

// Start begins polling the room. Any previous subscription is cancelled
// before the new timer is installed, so callbacks from a prior
// subscription never fire after Start returns. since is the lastUpdate
// of the record the caller already holds; pass 0 to receive the current
// record on the first tick.
func (p *Poller) Start(ctx context.Context, roomID string, interval time.Duration, since int64, h PollHandlers) {
	p.Stop()

	p.mu.Lock()
	stop := make(chan struct{})
	p.stop = stop
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx, roomID, interval, since, h, stop)
}

// Stop cancels the active subscription, if any. It blocks until the
// polling goroutine has exited, so no pending callback fires after Stop
// returns. Idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Active reports whether a subscription is currently polling.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *Poller) run(ctx context.Context, roomID string, interval time.Duration, since int64, h PollHandlers, stop chan struct{}) {
	defer p.wg.Done()

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	lastSeen := since // lastUpdate of the most recent record observed

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.clearStop(stop)
			return
		case <-ticker.Chan():
		}

		r, err := p.store.Get(ctx, roomID)
		if err != nil {
			// Transient read failure: keep polling, the next tick retries.
			p.logger.Debug("room poll failed", "room", roomID, "err", err)
			continue
		}

		if r == nil || r.StaleAt(p.clock.Now()) {
			p.clearStop(stop)
			if h.OnClosed != nil {
				h.OnClosed()
			}
			return
		}

		if r.LastUpdate != lastSeen {
			lastSeen = r.LastUpdate
			if h.OnUpdate != nil {
				h.OnUpdate(r.Clone())
			}
		}
	}
}

// clearStop marks the subscription idle when the goroutine exits on its
// own, so a later Start does not try to cancel a dead channel.
func (p *Poller) clearStop(stop chan struct{}) {
	p.mu.Lock()
	if p.stop == stop {
		p.stop = nil
	}
	p.mu.Unlock()
}
