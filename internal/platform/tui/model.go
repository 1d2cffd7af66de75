package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/numbers21py/miniarcades/internal/core"
	"github.com/numbers21py/miniarcades/internal/games/colormatch"
	"github.com/numbers21py/miniarcades/internal/games/dice"
	"github.com/numbers21py/miniarcades/internal/games/memory"
	"github.com/numbers21py/miniarcades/internal/games/reaction"
	"github.com/numbers21py/miniarcades/internal/games/rps"
	"github.com/numbers21py/miniarcades/internal/games/slots"
	"github.com/numbers21py/miniarcades/internal/games/snake"
	"github.com/numbers21py/miniarcades/internal/games/tictactoe"
	"github.com/numbers21py/miniarcades/internal/leaderboard"
	"github.com/numbers21py/miniarcades/internal/registry"
	"github.com/numbers21py/miniarcades/internal/stats"
)

// GameModel drives one solo game: fixed-tick simulation, input mapping,
// screen rendering, and score/stats recording when a run ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	board      *leaderboard.Board
	tracker    *stats.Tracker
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool
	endSaved   bool
}

// NewGameModel creates a model for the given game. board and tracker
// may be nil; recording is then skipped.
func NewGameModel(game registry.Game, board *leaderboard.Board, tracker *stats.Tracker, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		board:      board,
		tracker:    tracker,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the simulation loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize adapts the screen buffer to the new terminal size. A
// running game restarts since its layout depends on the dimensions.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick advances the simulation by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.endSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.recordStats()

	if m.gameState.GameOver && !m.scoreSaved {
		if m.board != nil && m.gameState.Score > 0 {
			if err := m.board.Submit(m.game.ID(), m.gameState.Score); err != nil {
				log.Warn("score submit failed", "game", m.game.ID(), "err", err)
			}
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordStats drains per-round results from the running game into the
// tracker. Round-based games expose one-shot accessors, so each result
// is recorded exactly once; run-based games record when the run ends.
func (m *GameModel) recordStats() {
	if m.tracker == nil {
		return
	}

	var err error
	switch g := m.game.(type) {
	case *dice.Game:
		if o := g.TakeOutcome(); o != dice.OutcomeNone {
			err = m.tracker.RecordDice(stats.Outcome(o))
		}
	case *rps.Game:
		if o := g.TakeOutcome(); o != rps.OutcomeNone {
			err = m.tracker.RecordRPS(stats.Outcome(o))
		}
	case *reaction.Game:
		if ms := g.TakeTime(); ms > 0 {
			err = m.tracker.RecordReaction(ms)
		}
	case *tictactoe.Game:
		if o := g.TakeOutcome(); o != tictactoe.OutcomeNone {
			err = m.tracker.RecordTicTacToe(stats.Outcome(o))
		}
	case *slots.Game:
		if kind, payout, ok := g.TakeResult(); ok {
			err = m.tracker.RecordSlots(kind != slots.WinNone, payout)
		}
	case *colormatch.Game:
		if score, ok := g.TakeScore(); ok {
			err = m.tracker.RecordColorMatch(score)
		}
	case *memory.Game:
		if m.gameState.GameOver && !m.endSaved {
			err = m.tracker.RecordMemory(stats.Win, g.Moves())
			m.endSaved = true
		}
	case *snake.Game:
		if m.gameState.GameOver && !m.endSaved {
			err = m.tracker.RecordSnake(m.gameState.Score, g.Length())
			m.endSaved = true
		}
	}

	if err != nil {
		log.Warn("stats record failed", "game", m.game.ID(), "err", err)
	}
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user quit the program.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user backed out of the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run runs a single game until the user quits or backs out.
func Run(game registry.Game, board *leaderboard.Board, tracker *stats.Tracker, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, board, tracker, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
