package dodger

import (
	"time"

	"github.com/charmbracelet/log"
)

// Event is something that happened inside the simulation. Sessions collect
// events while locked and hand them to the event handler after unlocking.
type Event interface {
	dodgerEvent()
}

// SpawnedEvent is emitted when the spawner creates a projectile.
type SpawnedEvent struct {
	Projectile Projectile
}

func (SpawnedEvent) dodgerEvent() {}

// HitEvent is emitted when a projectile hits the player.
type HitEvent struct {
	ProjectileID uint64
	Health       int // Health left after the hit
}

func (HitEvent) dodgerEvent() {}

// JumpedEvent is emitted when a jump starts.
type JumpedEvent struct {
	Top float64 // Height reached
}

func (JumpedEvent) dodgerEvent() {}

// FallStartedEvent is emitted when the player leaves the platform.
type FallStartedEvent struct {
	Pos Point
}

func (FallStartedEvent) dodgerEvent() {}

// FellEvent is emitted when the fall reaches the bottom of the screen.
type FellEvent struct {
	Pos Point
}

func (FellEvent) dodgerEvent() {}

// GameOverEvent is emitted exactly once per session.
type GameOverEvent struct {
	Cause   EndCause
	Elapsed time.Duration // Virtual time at which the game ended
	Frames  uint64
}

func (GameOverEvent) dodgerEvent() {}

// LogEvents returns an event handler that writes every event to l.
// Per-frame chatter goes to debug; state changes a player would notice go to info.
func LogEvents(l *log.Logger) func(Event) {
	return func(e Event) {
		switch ev := e.(type) {
		case SpawnedEvent:
			l.Debug("projectile spawned",
				"id", ev.Projectile.ID,
				"kind", ev.Projectile.Kind,
				"top", ev.Projectile.Pos.Top,
				"left", ev.Projectile.Pos.Left,
			)
		case HitEvent:
			l.Debug("player hit", "projectile", ev.ProjectileID, "health", ev.Health)
		case JumpedEvent:
			l.Debug("jump", "top", ev.Top)
		case FallStartedEvent:
			l.Info("player left the platform", "top", ev.Pos.Top, "left", ev.Pos.Left)
		case FellEvent:
			l.Info("player fell", "top", ev.Pos.Top, "left", ev.Pos.Left)
		case GameOverEvent:
			l.Info("game over", "cause", ev.Cause, "elapsed", ev.Elapsed, "frames", ev.Frames)
		}
	}
}
