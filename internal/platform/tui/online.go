package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/numbers21py/miniarcades/internal/games/dice"
	"github.com/numbers21py/miniarcades/internal/games/rps"
	"github.com/numbers21py/miniarcades/internal/room"
	"github.com/numbers21py/miniarcades/internal/stats"
)

// revealDuration is how long a resolved round stays on screen before
// the host starts the next one.
const revealDuration = 2 * time.Second

// OnlineState tracks where we are in the multiplayer flow.
type OnlineState int

const (
	OnlineStateCreating     OnlineState = iota // host: creating a room
	OnlineStateHostWaiting                     // host: waiting for a guest
	OnlineStateEnterCode                       // guest: typing the room code
	OnlineStateJoining                         // guest: join in flight
	OnlineStateInMatch                         // both: picking a move
	OnlineStateReveal                          // both: round resolved, showing result
	OnlineStateOpponentLeft                    // other side left the room
	OnlineStateError                           // unrecoverable store error
)

// OnlineConfig describes how to enter the multiplayer flow.
type OnlineConfig struct {
	GameID string
	Host   bool   // create a room instead of joining
	Code   string // join code; empty prompts for one
}

type hostedMsg struct {
	code string
	err  error
}

type joinedMsg struct {
	r   *room.Room
	err error
}

type roomEventMsg struct{ r *room.Room }

type roomClosedMsg struct{}

type revealDoneMsg struct{}

// OnlineModel drives a two-player match over a shared room record. Move
// exchange goes through the room's gameState payload; updates arrive
// via the session's poller.
type OnlineModel struct {
	session *room.Session
	tracker *stats.Tracker
	cfg     OnlineConfig
	ctx     context.Context
	rng     *rand.Rand
	events  chan tea.Msg

	state     OnlineState
	codeInput textinput.Model
	errText   string
	width     int
	height    int

	dicePayload dice.Payload
	rpsPayload  rps.Payload
	cursor      int
	committed   bool
	ownRoll     int
	ownChoice   rps.Choice
	lastRound   int
	recorded    int // last round recorded to stats
	outcome     string

	quitting bool
	done     bool
}

// NewOnlineModel creates the multiplayer flow model.
func NewOnlineModel(session *room.Session, tracker *stats.Tracker, cfg OnlineConfig, width, height int) OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "ABC12"
	ti.CharLimit = room.CodeLength
	ti.Width = room.CodeLength + 2
	ti.Focus()

	state := OnlineStateCreating
	if !cfg.Host {
		state = OnlineStateEnterCode
		if cfg.Code != "" {
			state = OnlineStateJoining
		}
	}

	return OnlineModel{
		session:   session,
		tracker:   tracker,
		cfg:       cfg,
		ctx:       context.Background(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		events:    make(chan tea.Msg, 16),
		state:     state,
		codeInput: ti,
		lastRound: -1,
		recorded:  -1,
		width:     width,
		height:    height,
	}
}

// Init kicks off the host or join flow.
func (m OnlineModel) Init() tea.Cmd {
	switch m.state {
	case OnlineStateCreating:
		return m.createCmd()
	case OnlineStateJoining:
		return m.joinCmd(m.cfg.Code)
	case OnlineStateEnterCode:
		return textinput.Blink
	}
	return nil
}

func (m OnlineModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		code, err := m.session.Create(m.ctx, m.cfg.GameID)
		return hostedMsg{code: code, err: err}
	}
}

func (m OnlineModel) joinCmd(code string) tea.Cmd {
	return func() tea.Msg {
		r, err := m.session.Join(m.ctx, code)
		return joinedMsg{r: r, err: err}
	}
}

// waitForEvent relays poller callbacks into the program.
func (m OnlineModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// startWatch subscribes to room changes at the fast cadence.
func (m OnlineModel) startWatch() {
	m.session.Watch(m.ctx, room.FastPoll, m.pollHandlers())
}

// pollHandlers bridges poller callbacks into the event channel. They
// run on the poller goroutine and must never block: Poller.Stop waits
// for that goroutine, so a blocking send here would deadlock teardown.
func (m OnlineModel) pollHandlers() room.PollHandlers {
	events := m.events
	return room.PollHandlers{
		OnUpdate: func(r *room.Room) {
			select {
			case events <- roomEventMsg{r: r}:
			default: // next poll will carry the newer record
			}
		},
		OnClosed: func() {
			select {
			case events <- roomClosedMsg{}:
			default: // channel this backed up means the model is tearing down
			}
		},
	}
}

// leave tears the session down. Best effort: the room may already be
// gone.
func (m *OnlineModel) leave() {
	_ = m.session.Leave(m.ctx)
	m.session.Dispose()
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case hostedMsg:
		if msg.err != nil {
			m.state = OnlineStateError
			m.errText = msg.err.Error()
			return m, nil
		}
		m.state = OnlineStateHostWaiting
		m.startWatch()
		return m, m.waitForEvent()

	case joinedMsg:
		if msg.err != nil {
			m.state = OnlineStateEnterCode
			m.errText = joinErrorText(msg.err)
			m.codeInput.SetValue("")
			return m, textinput.Blink
		}
		m.state = OnlineStateInMatch
		m.resetRound(msg.r)
		m.startWatch()
		return m, m.waitForEvent()

	case roomEventMsg:
		return m.handleRoomEvent(msg.r)

	case roomClosedMsg:
		m.state = OnlineStateOpponentLeft
		return m, nil

	case revealDoneMsg:
		return m.advanceRound()
	}

	return m, nil
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || (key == "q" && m.state != OnlineStateEnterCode) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	if key == "esc" {
		m.leave()
		m.done = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateEnterCode:
		return m.handleCodeKey(msg)
	case OnlineStateInMatch:
		return m.handleMatchKey(msg)
	case OnlineStateOpponentLeft, OnlineStateError:
		if key == "enter" || key == "b" {
			m.leave()
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m OnlineModel) handleCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		code := strings.TrimSpace(m.codeInput.Value())
		if len(code) == room.CodeLength {
			m.state = OnlineStateJoining
			m.errText = ""
			return m, m.joinCmd(code)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	return m, cmd
}

func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.committed {
		return m, nil
	}

	switch m.cfg.GameID {
	case "dice":
		if msg.String() == "enter" || msg.String() == " " {
			return m.commitDiceRoll()
		}

	case "rps":
		switch msg.String() {
		case "a", "left":
			if m.cursor > 0 {
				m.cursor--
			}
		case "d", "right":
			if m.cursor < len(rps.Choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.commitRPSChoice(rps.Choices[m.cursor])
		}
	}

	return m, nil
}

// commitDiceRoll rolls locally and publishes the result into the shared
// payload.
func (m OnlineModel) commitDiceRoll() (tea.Model, tea.Cmd) {
	m.ownRoll = m.rng.Intn(6) + 1
	m.committed = true

	p := m.dicePayload
	if m.session.IsHost() {
		p.HostRoll = m.ownRoll
	} else {
		p.GuestRoll = m.ownRoll
	}
	m.dicePayload = p
	m.publishDice(p)

	if p.Complete() {
		return m.enterReveal()
	}
	return m, nil
}

func (m OnlineModel) commitRPSChoice(c rps.Choice) (tea.Model, tea.Cmd) {
	m.ownChoice = c
	m.committed = true

	p := m.rpsPayload
	if m.session.IsHost() {
		p.HostMove = c
	} else {
		p.GuestMove = c
	}
	m.rpsPayload = p
	m.publishRPS(p)

	if p.Complete() {
		return m.enterReveal()
	}
	return m, nil
}

func (m *OnlineModel) publishDice(p dice.Payload) {
	if raw, err := p.Encode(); err == nil {
		m.session.UpdatePayload(m.ctx, raw)
	}
}

func (m *OnlineModel) publishRPS(p rps.Payload) {
	if raw, err := p.Encode(); err == nil {
		m.session.UpdatePayload(m.ctx, raw)
	}
}

// handleRoomEvent folds a polled room record into the match state.
func (m OnlineModel) handleRoomEvent(r *room.Room) (tea.Model, tea.Cmd) {
	// Guest slot emptied: the opponent bailed and the room went back to
	// waiting.
	if m.session.IsHost() && m.state != OnlineStateHostWaiting && !r.HasGuest() {
		m.state = OnlineStateHostWaiting
		m.resetRound(r)
		return m, m.waitForEvent()
	}

	if m.state == OnlineStateHostWaiting && r.HasGuest() && r.State == room.StatePlaying {
		m.state = OnlineStateInMatch
		m.resetRound(r)
		return m, m.waitForEvent()
	}

	if m.state != OnlineStateInMatch && m.state != OnlineStateReveal {
		return m, m.waitForEvent()
	}

	switch m.cfg.GameID {
	case "dice":
		p, err := dice.DecodePayload(r.GameState)
		if err != nil {
			return m, m.waitForEvent()
		}
		// Last write wins on the record, so restore our roll if the
		// opponent's write raced ours.
		if m.committed && p.Round == m.dicePayload.Round {
			if m.session.IsHost() && p.HostRoll == 0 {
				p.HostRoll = m.ownRoll
				m.publishDice(p)
			} else if !m.session.IsHost() && p.GuestRoll == 0 {
				p.GuestRoll = m.ownRoll
				m.publishDice(p)
			}
		}
		m.dicePayload = p
		if p.Round != m.lastRound && !p.Complete() {
			m.beginRound(p.Round)
		}
		if p.Complete() && m.state == OnlineStateInMatch {
			return m.enterReveal()
		}

	case "rps":
		p, err := rps.DecodePayload(r.GameState)
		if err != nil {
			return m, m.waitForEvent()
		}
		if m.committed && p.Round == m.rpsPayload.Round {
			if m.session.IsHost() && p.HostMove == "" {
				p.HostMove = m.ownChoice
				m.publishRPS(p)
			} else if !m.session.IsHost() && p.GuestMove == "" {
				p.GuestMove = m.ownChoice
				m.publishRPS(p)
			}
		}
		m.rpsPayload = p
		if p.Round != m.lastRound && !p.Complete() {
			m.beginRound(p.Round)
		}
		if p.Complete() && m.state == OnlineStateInMatch {
			return m.enterReveal()
		}
	}

	return m, m.waitForEvent()
}

// enterReveal shows the resolved round and records it. The host drives
// round advancement; the guest waits for the next-round payload.
func (m OnlineModel) enterReveal() (tea.Model, tea.Cmd) {
	m.state = OnlineStateReveal
	m.outcome = m.roundOutcome()
	m.recordRound()

	cmds := []tea.Cmd{m.waitForEvent()}
	if m.session.IsHost() {
		cmds = append(cmds, tea.Tick(revealDuration, func(time.Time) tea.Msg {
			return revealDoneMsg{}
		}))
	}
	return m, tea.Batch(cmds...)
}

// advanceRound starts the next round. Host only.
func (m OnlineModel) advanceRound() (tea.Model, tea.Cmd) {
	if m.state != OnlineStateReveal {
		return m, nil
	}

	switch m.cfg.GameID {
	case "dice":
		p := m.dicePayload.NextRound()
		m.dicePayload = p
		m.publishDice(p)
		m.beginRound(p.Round)
	case "rps":
		p := m.rpsPayload.NextRound()
		m.rpsPayload = p
		m.publishRPS(p)
		m.beginRound(p.Round)
	}

	m.state = OnlineStateInMatch
	return m, nil
}

func (m *OnlineModel) beginRound(round int) {
	m.lastRound = round
	m.committed = false
	m.ownRoll = 0
	m.ownChoice = ""
	m.outcome = ""
	if m.state == OnlineStateReveal {
		m.state = OnlineStateInMatch
	}
}

// resetRound clears match state from a fresh room record.
func (m *OnlineModel) resetRound(r *room.Room) {
	m.dicePayload = dice.Payload{}
	m.rpsPayload = rps.Payload{}
	m.committed = false
	m.ownRoll = 0
	m.ownChoice = ""
	m.lastRound = -1
	m.recorded = -1
	m.outcome = ""

	if r == nil {
		return
	}
	switch m.cfg.GameID {
	case "dice":
		if p, err := dice.DecodePayload(r.GameState); err == nil {
			m.dicePayload = p
			m.lastRound = p.Round
		}
	case "rps":
		if p, err := rps.DecodePayload(r.GameState); err == nil {
			m.rpsPayload = p
			m.lastRound = p.Round
		}
	}
}

// roundOutcome classifies the completed round from our perspective.
func (m OnlineModel) roundOutcome() string {
	isHost := m.session.IsHost()
	switch m.cfg.GameID {
	case "dice":
		own, other := m.dicePayload.HostRoll, m.dicePayload.GuestRoll
		if !isHost {
			own, other = other, own
		}
		return string(dice.Resolve(own, other))
	case "rps":
		own, other := m.rpsPayload.HostMove, m.rpsPayload.GuestMove
		if !isHost {
			own, other = other, own
		}
		return string(rps.Resolve(own, other))
	}
	return ""
}

// recordRound writes the round result to stats, once per round number.
func (m *OnlineModel) recordRound() {
	if m.tracker == nil {
		return
	}

	var round int
	switch m.cfg.GameID {
	case "dice":
		round = m.dicePayload.Round
	case "rps":
		round = m.rpsPayload.Round
	}
	if round == m.recorded {
		return
	}
	m.recorded = round

	outcome := stats.Outcome(m.outcome)
	switch m.cfg.GameID {
	case "dice":
		_ = m.tracker.RecordDice(outcome)
	case "rps":
		_ = m.tracker.RecordRPS(outcome)
	}
}

// ownScore and oppScore read the running tally from our side.
func (m OnlineModel) ownScore() (own, opp int) {
	isHost := m.session.IsHost()
	switch m.cfg.GameID {
	case "dice":
		own, opp = m.dicePayload.HostScore, m.dicePayload.GuestScore
	case "rps":
		own, opp = m.rpsPayload.HostScore, m.rpsPayload.GuestScore
	}
	if !isHost {
		own, opp = opp, own
	}
	return own, opp
}

// View renders the current state.
func (m OnlineModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	switch m.state {
	case OnlineStateCreating:
		b.WriteString(centerText("Creating room...", m.width))

	case OnlineStateHostWaiting:
		b.WriteString(centerText("HOSTING "+strings.ToUpper(m.cfg.GameID), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Share this code with your opponent:", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(fmt.Sprintf("[ %s ]", m.session.RoomID()), m.width))
		if link := m.session.ShareLink(); link != "" {
			b.WriteString("\n\n")
			b.WriteString(centerText(link, m.width))
		}
		b.WriteString("\n\n")
		b.WriteString(centerText("Waiting for a player to join...", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Esc: Cancel  |  Q: Quit", m.width))

	case OnlineStateEnterCode:
		b.WriteString(centerText("JOIN "+strings.ToUpper(m.cfg.GameID), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter the room code:", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.codeInput.View(), m.width))
		if m.errText != "" {
			b.WriteString("\n\n")
			b.WriteString(centerText(m.errText, m.width))
		}
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Connect  |  Esc: Back", m.width))

	case OnlineStateJoining:
		b.WriteString(centerText("Joining room...", m.width))

	case OnlineStateInMatch:
		b.WriteString(m.viewMatch())

	case OnlineStateReveal:
		b.WriteString(m.viewReveal())

	case OnlineStateOpponentLeft:
		b.WriteString(centerText("Your opponent left the room.", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Back  |  Q: Quit", m.width))

	case OnlineStateError:
		b.WriteString(centerText("Something went wrong:", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.errText, m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Back  |  Q: Quit", m.width))
	}

	return b.String()
}

func (m OnlineModel) viewMatch() string {
	var b strings.Builder

	opponent := m.session.OpponentName()
	if opponent == "" {
		opponent = "Opponent"
	}
	own, opp := m.ownScore()

	b.WriteString(centerText(fmt.Sprintf("You %d : %d %s", own, opp, opponent), m.width))
	b.WriteString("\n\n")

	switch m.cfg.GameID {
	case "dice":
		if m.committed {
			b.WriteString(centerText(fmt.Sprintf("You rolled %d", m.ownRoll), m.width))
			b.WriteString("\n\n")
			b.WriteString(centerText("Waiting for opponent...", m.width))
		} else {
			b.WriteString(centerText("Press Enter to roll", m.width))
		}

	case "rps":
		if m.committed {
			b.WriteString(centerText(fmt.Sprintf("You chose %s", m.ownChoice), m.width))
			b.WriteString("\n\n")
			b.WriteString(centerText("Waiting for opponent...", m.width))
		} else {
			parts := make([]string, len(rps.Choices))
			for i, c := range rps.Choices {
				if i == m.cursor {
					parts[i] = fmt.Sprintf("[ %s ]", c)
				} else {
					parts[i] = fmt.Sprintf("  %s  ", c)
				}
			}
			b.WriteString(centerText(strings.Join(parts, " "), m.width))
			b.WriteString("\n\n")
			b.WriteString(centerText("A/D: Choose  |  Enter: Throw", m.width))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Leave  |  Q: Quit", m.width))
	return b.String()
}

func (m OnlineModel) viewReveal() string {
	var b strings.Builder

	opponent := m.session.OpponentName()
	if opponent == "" {
		opponent = "Opponent"
	}
	own, opp := m.ownScore()
	isHost := m.session.IsHost()

	var ownMove, oppMove string
	switch m.cfg.GameID {
	case "dice":
		ownMove = fmt.Sprintf("%d", m.dicePayload.HostRoll)
		oppMove = fmt.Sprintf("%d", m.dicePayload.GuestRoll)
	case "rps":
		ownMove = string(m.rpsPayload.HostMove)
		oppMove = string(m.rpsPayload.GuestMove)
	}
	if !isHost {
		ownMove, oppMove = oppMove, ownMove
	}

	b.WriteString(centerText(fmt.Sprintf("You %d : %d %s", own, opp, opponent), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("You: %s   %s: %s", ownMove, opponent, oppMove), m.width))
	b.WriteString("\n\n")

	switch m.outcome {
	case "win":
		b.WriteString(centerText("You win the round!", m.width))
	case "loss":
		b.WriteString(centerText("You lose the round.", m.width))
	default:
		b.WriteString(centerText("It's a tie.", m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText("Next round starting...", m.width))
	return b.String()
}

// joinErrorText maps store errors to user-facing text.
func joinErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, room.ErrRoomNotFound):
		return "No room with that code."
	case errors.Is(err, room.ErrRoomFull):
		return "That room is already full."
	case errors.Is(err, room.ErrRoomNotAvailable):
		return "That game has already started."
	default:
		return err.Error()
	}
}

// IsQuitting reports whether the user quit the program.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// RunOnline runs the multiplayer flow until the match ends or the user
// leaves.
func RunOnline(session *room.Session, tracker *stats.Tracker, cfg OnlineConfig, width, height int) error {
	p := tea.NewProgram(
		NewOnlineModel(session, tracker, cfg, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
