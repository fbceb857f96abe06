package dodger

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodger/internal/config"
	"github.com/vovakirdan/dodger/internal/core"
	"github.com/vovakirdan/dodger/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives session events when set
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger new sessions report their events to.
// A nil logger disables event logging.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Session to the platform's game interface: it maps terminal
// cells to simulation pixels and draws snapshots into a screen buffer.
// Like every platform game it is driven from a single goroutine.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.DodgerConfig
	session  *Session
	viewport Viewport
}

// New creates a new Dodger game instance.
func New() *Game {
	return &Game{cfg: config.DefaultDodgerConfig()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "dodger"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dodger"
}

// Reset discards the current session and starts a new one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadDodger(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to default config", "error", err)
		}
		cfg = config.DefaultDodgerConfig()
	}
	g.cfg = cfg
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	if g.session != nil {
		g.session.Stop()
	}
	g.session = NewSession(cfg, runtime.Seed, g.currentViewport)
	if logger != nil {
		g.session.SetEventHandler(LogEvents(logger.With("seed", runtime.Seed)))
	}
	g.session.Start()
}

// Resize changes the visible area. The running session picks the new
// viewport up on its next spawn, cull or fall check.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.viewport = Viewport{
		Width:  float64(width * g.cfg.Render.CellWidth),
		Height: float64(height * g.cfg.Render.CellHeight),
	}
}

func (g *Game) currentViewport() Viewport {
	return g.viewport
}

// HandleAction forwards a movement action to the session as an intent.
// Returns whether the player state changed.
func (g *Game) HandleAction(a core.Action) bool {
	if g.session == nil {
		return false
	}
	in := IntentFromAction(a)
	if in == IntentNone {
		return false
	}
	return g.session.Intent(in)
}

// Step advances the session clock by dt and runs one frame.
func (g *Game) Step(dt time.Duration) core.StepResult {
	if g.session != nil {
		g.session.Tick(dt)
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Health:   g.session.HealthPercent(),
		GameOver: g.session.GameOver(),
	}
}

// Session exposes the running session, or nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Register the game with the registry
func init() {
	registry.Register("dodger", func() registry.Game {
		return New()
	})
}
