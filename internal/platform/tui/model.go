package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodger/internal/core"
	"github.com/vovakirdan/dodger/internal/registry"
)

// footerHeight is the number of rows reserved under the playfield for help.
const footerHeight = 1

// Model is the Bubble Tea model for running a game.
//
// Frames are driven by TickMsg: each tick passes the real time since the
// previous tick to the game, so the game's timers keep wall-clock pace even
// when frames arrive late. Ticking stops at game over and resumes on restart.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      *KeyMapper
	help      help.Model
	logger    *log.Logger
	gameState core.GameState
	lastTick  time.Time
	started   bool
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The logger may be nil.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	playH := max(cfg.ScreenH-footerHeight, 0)
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, playH),
		config: cfg,
		keys:   NewKeyMapper(),
		help:   help.New(),
		logger: logger,
	}
}

// Init starts the tick loop. The game itself is reset on the first tick.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys reach the game as soon
// as they arrive, one action per key event.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionRestart:
		if m.started && m.gameState.GameOver {
			return m.restart()
		}
		return m, nil
	}

	if action.IsMovement() && m.started {
		m.game.HandleAction(action)
		m.gameState = m.game.State()
	}
	return m, nil
}

// restart starts a new session with a fresh seed and resumes ticking.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.lastTick = time.Time{}
	m.logger.Info("new session", "game", m.game.ID(), "seed", m.config.Seed)
	return m, tickCmd(m.config.TickRate)
}

// handleResize processes window resize events. The running session keeps
// going with the new viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	playH := max(msg.Height-footerHeight, 0)
	m.config.ScreenW = msg.Width
	m.config.ScreenH = playH
	m.screen.Resize(msg.Width, playH)
	m.help.Width = msg.Width

	if m.started {
		m.game.Resize(msg.Width, playH)
	}
	m.logger.Debug("resize", "width", msg.Width, "height", playH)
	return m, nil
}

// handleTick runs one frame with the real time elapsed since the last one.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.started {
		m.config.ScreenH = m.screen.Height()
		m.game.Reset(m.config)
		m.started = true
		m.logger.Info("new session", "game", m.game.ID(), "seed", m.config.Seed)
	}

	dt := frameInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result := m.game.Step(dt)
	m.gameState = result.State

	if m.gameState.GameOver {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// GameState returns the last state reported by the game.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
