package dodger

import (
	"fmt"

	"github.com/vovakirdan/dodger/internal/core"
)

// Intent is a discrete player command delivered by an input adapter.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentJump
	IntentDuck
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "move-left"
	case IntentRight:
		return "move-right"
	case IntentJump:
		return "jump"
	case IntentDuck:
		return "duck"
	default:
		return "none"
	}
}

// IntentFromAction maps a platform action to a player intent.
func IntentFromAction(a core.Action) Intent {
	switch a {
	case core.ActionLeft:
		return IntentLeft
	case core.ActionRight:
		return IntentRight
	case core.ActionJump:
		return IntentJump
	case core.ActionDuck:
		return IntentDuck
	default:
		return IntentNone
	}
}

// Action is the player's current animation action.
type Action int

const (
	ActionIdle Action = iota
	ActionLeft
	ActionRight
	ActionJump
	ActionDock
	actionCount
)

// String returns the sprite-sheet name of the action.
func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionDock:
		return "dock"
	default:
		return "unknown"
	}
}

// MarshalText encodes the action by name in JSON snapshots.
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || a >= actionCount {
		return nil, fmt.Errorf("dodger: invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// Direction is the axis a projectile travels along.
type Direction int

const (
	DirectionDown Direction = iota
	DirectionLeft
)

// Kind selects a projectile's sprite and spawn edge.
type Kind int

const (
	KindVertical Kind = iota
	KindHorizontal
)

// String returns the sprite suffix of the kind.
func (k Kind) String() string {
	if k == KindHorizontal {
		return "h"
	}
	return "v"
}

// MarshalText encodes the kind by sprite suffix in JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Point is a position in simulation pixels, anchored at the top-left corner.
type Point struct {
	Top  float64 `json:"top" msgpack:"top"`
	Left float64 `json:"left" msgpack:"left"`
}

// Viewport is the visible area in pixels.
type Viewport struct {
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

// ViewportFunc supplies the current viewport. It is polled whenever the
// simulation needs bounds and must not call back into the session.
type ViewportFunc func() Viewport

// FixedViewport returns a ViewportFunc that always reports the given size.
func FixedViewport(width, height float64) ViewportFunc {
	vp := Viewport{Width: width, Height: height}
	return func() Viewport { return vp }
}

// Projectile is a live bullet travelling across the screen.
type Projectile struct {
	ID        uint64
	Pos       Point
	Direction Direction
	Kind      Kind
	Speed     float64
}

// advance moves the projectile one frame along its direction.
func (p *Projectile) advance() {
	switch p.Direction {
	case DirectionDown:
		p.Pos.Top += p.Speed
	case DirectionLeft:
		p.Pos.Left -= p.Speed
	}
}

// hitbox returns the projectile's square collision rectangle.
func (p Projectile) hitbox(size float64) core.RectF {
	return core.NewRectF(p.Pos.Top, p.Pos.Left, size, size)
}

// offscreen reports whether the projectile has left the visible area.
func (p Projectile) offscreen(vp Viewport) bool {
	return p.Pos.Top > vp.Height || p.Pos.Left < 0
}
