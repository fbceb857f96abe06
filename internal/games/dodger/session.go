// Package dodger implements a platform dodging game: the player stands on a
// platform, dodges projectiles coming from the top and right edges, and
// loses by running out of health or by walking off the edge.
//
// A Session owns the whole simulation state behind one mutex. Several
// independent timers (spawner, platform monitor, jump animation, jump
// restore) run on a virtual-time scheduler that the platform advances with
// real elapsed time; the motion and collision pass runs once per rendered
// frame; intents arrive one per key event. Each of these is one serialized
// mutation.
package dodger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/dodger/internal/config"
	"github.com/vovakirdan/dodger/internal/sched"
)

// Session is one play-through, from start to game over.
type Session struct {
	mu       sync.Mutex
	cfg      config.DodgerConfig
	sched    *sched.Scheduler
	spawner  *Spawner
	viewport ViewportFunc
	onEvent  func(Event)
	pending  []Event

	player      Player
	projectiles []Projectile
	health      Health
	frame       uint64

	spawnTimer sched.TimerID
	fallTimer  sched.TimerID
	started    bool
	stopped    bool
}

// NewSession creates a session. Nothing moves until Start is called.
// The configuration is expected to have passed Validate.
func NewSession(cfg config.DodgerConfig, seed int64, viewport ViewportFunc) *Session {
	if viewport == nil {
		viewport = FixedViewport(1280, 720)
	}
	return &Session{
		cfg:         cfg,
		sched:       sched.New(),
		spawner:     NewSpawner(seed, cfg.Projectiles),
		viewport:    viewport,
		player:      newPlayer(cfg.Player),
		projectiles: make([]Projectile, 0, 16),
		health:      NewHealth(cfg.Health.Max),
	}
}

// SetEventHandler sets the optional event handler. It runs outside the
// session lock, after the mutation that produced the events.
func (s *Session) SetEventHandler(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = fn
}

// Start arms the spawner and platform monitor timers. Idempotent.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true
	s.spawnTimer = s.sched.Every(s.cfg.Projectiles.SpawnInterval(), s.spawn)
	s.fallTimer = s.sched.Every(s.cfg.Falling.CheckInterval(), s.checkPlatform)
}

// Stop cancels every timer. Used when the hosting session ends; the
// simulation state stays readable through Snapshot.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.sched.CancelAll()
}

// Intent applies one player intent. Returns whether it changed state;
// intents are refused while falling, after a fall and after game over.
func (s *Session) Intent(in Intent) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	changed := s.applyIntent(in)
	events := s.drain()
	s.mu.Unlock()

	s.dispatch(events)
	return changed
}

// Advance moves the session clock forward and fires every timer that
// comes due.
func (s *Session) Advance(d time.Duration) {
	s.mu.Lock()
	if !s.stopped {
		s.sched.Advance(d)
	}
	events := s.drain()
	s.mu.Unlock()

	s.dispatch(events)
}

// Frame runs one motion and collision pass. Returns false once the game is
// over, meaning the caller should stop scheduling frames.
func (s *Session) Frame() bool {
	s.mu.Lock()
	ran := s.step()
	events := s.drain()
	s.mu.Unlock()

	s.dispatch(events)
	return ran
}

// Tick advances the clock by d and then renders one frame.
func (s *Session) Tick(d time.Duration) bool {
	s.Advance(d)
	return s.Frame()
}

// GameOver reports whether the session reached its terminal state.
func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health.GameOver()
}

// HealthPercent returns the remaining health as a percentage.
func (s *Session) HealthPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health.Percent()
}

// Elapsed returns the session's virtual time.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Now()
}

// Run drives the session in real time until the game ends or ctx is
// cancelled: every frameInterval it advances the clock by the measured
// elapsed time, runs a frame and passes the snapshot to onFrame.
func (s *Session) Run(ctx context.Context, frameInterval time.Duration, onFrame func(Snapshot)) error {
	if frameInterval <= 0 {
		return fmt.Errorf("dodger: non-positive frame interval %v", frameInterval)
	}
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Tick(now.Sub(last))
			last = now

			snap := s.Snapshot()
			if onFrame != nil {
				onFrame(snap)
			}
			if snap.GameOver {
				return nil
			}
		}
	}
}

// endGame stops every periodic timer once the terminal state is reached.
// Pending one-shots may still fire and find nothing to do.
func (s *Session) endGame() {
	s.sched.Cancel(s.spawnTimer)
	s.sched.Cancel(s.fallTimer)
	s.sched.Cancel(s.player.jumpTimer)
	s.emit(GameOverEvent{
		Cause:   s.health.Cause(),
		Elapsed: s.sched.Now(),
		Frames:  s.frame,
	})
}

// emit queues an event for dispatch. Must be called with s.mu held.
func (s *Session) emit(e Event) {
	if s.onEvent != nil {
		s.pending = append(s.pending, e)
	}
}

// drain takes the queued events and the handler to run them with.
func (s *Session) drain() eventBatch {
	if len(s.pending) == 0 {
		return eventBatch{}
	}
	b := eventBatch{events: s.pending, handler: s.onEvent}
	s.pending = nil
	return b
}

type eventBatch struct {
	events  []Event
	handler func(Event)
}

func (s *Session) dispatch(b eventBatch) {
	for _, e := range b.events {
		b.handler(e)
	}
}
