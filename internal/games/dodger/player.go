package dodger

import (
	"github.com/vovakirdan/dodger/internal/config"
	"github.com/vovakirdan/dodger/internal/core"
	"github.com/vovakirdan/dodger/internal/sched"
)

// Player is the player-controlled sprite's state.
// Frames holds the current animation frame of every action, each in [1, count].
type Player struct {
	Pos     Point
	Action  Action
	Frames  [actionCount]int
	Jumping bool
	Falling bool
	Fallen  bool // Terminal: the player dropped to the bottom of the screen

	counts    [actionCount]int
	jumpGen   uint64 // Incremented per jump; stale restores compare against it
	jumpTimer sched.TimerID
}

// newPlayer creates a player at rest at the configured start position.
func newPlayer(cfg config.PlayerConfig) Player {
	p := Player{
		Pos:    Point{Top: cfg.StartTop, Left: cfg.StartLeft},
		Action: ActionIdle,
		counts: [actionCount]int{
			ActionIdle:  cfg.Frames.Idle,
			ActionLeft:  cfg.Frames.Left,
			ActionRight: cfg.Frames.Right,
			ActionJump:  cfg.Frames.Jump,
			ActionDock:  cfg.Frames.Dock,
		},
	}
	for i := range p.Frames {
		p.Frames[i] = 1
	}
	return p
}

// Frame returns the animation frame of the current action.
func (p Player) Frame() int {
	return p.Frames[p.Action]
}

// FrameCount returns the configured number of frames for an action.
func (p Player) FrameCount(a Action) int {
	return p.counts[a]
}

// advanceFrame steps an action's frame cyclically through [1, count].
func (p *Player) advanceFrame(a Action) {
	p.Frames[a] = p.Frames[a]%p.counts[a] + 1
}

// hitbox returns the player's collision rectangle (also its footprint).
func (p Player) hitbox(cfg config.PlayerConfig) core.RectF {
	return core.NewRectF(p.Pos.Top, p.Pos.Left, cfg.Width, cfg.Height)
}

// applyIntent runs one intent through the player state machine.
// Must be called with s.mu held. Returns whether the intent changed state.
func (s *Session) applyIntent(in Intent) bool {
	p := &s.player
	if p.Fallen || p.Falling || s.health.GameOver() {
		return false
	}

	pc := s.cfg.Player
	switch in {
	case IntentLeft:
		p.Action = ActionLeft
		p.Pos.Left -= pc.MoveStep
		p.advanceFrame(ActionLeft)
	case IntentRight:
		p.Action = ActionRight
		p.Pos.Left += pc.MoveStep
		p.advanceFrame(ActionRight)
	case IntentDuck:
		p.Action = ActionDock
		p.Pos.Top = core.ClampF(p.Pos.Top+pc.DuckStep, pc.JumpCeiling, pc.Baseline)
		p.advanceFrame(ActionDock)
	case IntentJump:
		return s.startJump()
	default:
		return false
	}
	return true
}

// startJump launches the jump and its two restore paths: the animation timer,
// which lands the player after one frame per jump frame, and the fixed-delay
// restore. Both write the same baseline. With the default timings the
// landing comes first, so the fixed-delay restore only moves the player when
// the animation runs past the delay.
func (s *Session) startJump() bool {
	p := &s.player
	if p.Jumping || p.Falling {
		return false
	}

	pc := s.cfg.Player
	p.Jumping = true
	p.Action = ActionJump
	p.Pos.Top = core.ClampF(p.Pos.Top-pc.JumpOffset, pc.JumpCeiling, p.Pos.Top)
	p.jumpGen++
	gen := p.jumpGen

	steps := 0
	p.jumpTimer = s.sched.Every(pc.JumpFrameInterval(), func() {
		p.advanceFrame(ActionJump)
		steps++
		if steps >= p.FrameCount(ActionJump) {
			s.landJump(gen)
		}
	})
	s.sched.After(pc.JumpRestoreDelay(), func() {
		s.restoreBaseline(gen)
	})

	s.emit(JumpedEvent{Top: p.Pos.Top})
	return true
}

// landJump ends the jump animation and returns the player to rest.
func (s *Session) landJump(gen uint64) {
	p := &s.player
	s.sched.Cancel(p.jumpTimer)
	if gen != p.jumpGen {
		return
	}
	p.Jumping = false
	p.Action = ActionIdle
	p.Frames[ActionIdle] = 1
	s.restoreBaseline(gen)
}

// restoreBaseline puts the player back at the resting height. A restore left
// over from an earlier jump, or one arriving after the player started falling
// or the game ended, changes nothing.
func (s *Session) restoreBaseline(gen uint64) {
	p := &s.player
	if gen != p.jumpGen || p.Falling || p.Fallen || s.health.GameOver() {
		return
	}
	p.Pos.Top = s.cfg.Player.Baseline
}
