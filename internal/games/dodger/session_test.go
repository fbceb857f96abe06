package dodger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dodger/internal/config"
)

const (
	testWidth  = 1280
	testHeight = 720
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	return newTestSessionWith(t, config.DefaultDodgerConfig(), seed)
}

func newTestSessionWith(t *testing.T, cfg config.DodgerConfig, seed int64) *Session {
	t.Helper()
	require.NoError(t, cfg.Validate())
	return NewSession(cfg, seed, FixedViewport(testWidth, testHeight))
}

// place puts a projectile directly into the session.
func place(s *Session, top, left float64, dir Direction) Projectile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.spawner.Next(s.viewport())
	p.Pos = Point{Top: top, Left: left}
	p.Direction = dir
	p.Kind = KindVertical
	if dir == DirectionLeft {
		p.Kind = KindHorizontal
	}
	s.projectiles = append(s.projectiles, p)
	return p
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(t, 1)
	snap := s.Snapshot()

	assert.Equal(t, Point{Top: 250, Left: 600}, snap.Player.Position)
	assert.Equal(t, ActionIdle, snap.Player.Action)
	assert.Equal(t, 1, snap.Player.Frame)
	assert.False(t, snap.Player.Jumping)
	assert.False(t, snap.Player.Falling)
	assert.False(t, snap.Player.Fallen)
	assert.Empty(t, snap.Projectiles)
	assert.Equal(t, 100, snap.HealthPercent)
	assert.False(t, snap.GameOver)
	assert.Empty(t, snap.EndCause)
	assert.Equal(t, Viewport{Width: testWidth, Height: testHeight}, snap.Viewport)
	assert.Equal(t, PlatformView{Left: 520, Right: 845, Top: 370}, snap.Platform)
}

func TestEndToEndVerticalHit(t *testing.T) {
	s := newTestSession(t, 1)
	p := place(s, 0, 610, DirectionDown)

	for iter := 0; iter < 50; iter++ {
		require.True(t, s.Frame())
	}
	snap := s.Snapshot()
	require.Len(t, snap.Projectiles, 1)
	assert.Equal(t, 50.0, snap.Projectiles[0].Position.Top)
	assert.Equal(t, 100, snap.HealthPercent)

	var hits []HitEvent
	s.SetEventHandler(func(e Event) {
		if h, ok := e.(HitEvent); ok {
			hits = append(hits, h)
		}
	})

	// Touching edges do not collide: at top 200 the bottom edge is exactly 250.
	for iter := 0; iter < 150; iter++ {
		s.Frame()
	}
	snap = s.Snapshot()
	require.Len(t, snap.Projectiles, 1)
	assert.Equal(t, 200.0, snap.Projectiles[0].Position.Top)
	assert.Equal(t, 100, snap.HealthPercent)

	s.Frame()
	snap = s.Snapshot()
	assert.Equal(t, uint64(201), snap.Frame)
	assert.Empty(t, snap.Projectiles)
	assert.Equal(t, 80, snap.HealthPercent)
	require.Len(t, hits, 1)
	assert.Equal(t, p.ID, hits[0].ProjectileID)
	assert.Equal(t, 80, hits[0].Health)

	for iter := 0; iter < 100; iter++ {
		s.Frame()
	}
	assert.Equal(t, 80, s.HealthPercent())
}

func TestOverlappingProjectileHitsOnce(t *testing.T) {
	s := newTestSession(t, 1)
	place(s, 260, 620, DirectionDown)

	s.Frame()
	assert.Equal(t, 80, s.HealthPercent())
	assert.Empty(t, s.Snapshot().Projectiles)

	s.Frame()
	assert.Equal(t, 80, s.HealthPercent())
}

func TestProjectileHitsFromEitherEdge(t *testing.T) {
	// Player hitbox spans top 250..380 and left 600..720.
	tests := []struct {
		name  string
		top   float64
		left  float64
		dir   Direction
		hitAt int // Frame of the hit; 0 means it never lands
	}{
		{"vertical from above", 199, 610, DirectionDown, 2},
		{"horizontal from the right", 300, 721, DirectionLeft, 2},
		{"horizontal level with the head", 251, 800, DirectionLeft, 81},
		{"horizontal grazing the top edge", 200, 721, DirectionLeft, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1)
			place(s, tt.top, tt.left, tt.dir)

			for frame := 1; frame <= 300; frame++ {
				s.Frame()
				if s.HealthPercent() < 100 {
					assert.Equal(t, tt.hitAt, frame, "hit frame")
					assert.Equal(t, 80, s.HealthPercent())
					assert.Empty(t, s.Snapshot().Projectiles)
					return
				}
			}
			assert.Zero(t, tt.hitAt, "projectile never hit")
			assert.Len(t, s.Snapshot().Projectiles, 1)
		})
	}
}

func TestOffscreenProjectilesRemoved(t *testing.T) {
	tests := []struct {
		name string
		top  float64
		left float64
		dir  Direction
	}{
		{"past bottom edge", testHeight, 10, DirectionDown},
		{"past left edge", 10, 0, DirectionLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1)
			place(s, tt.top, tt.left, tt.dir)

			s.Frame()
			assert.Empty(t, s.Snapshot().Projectiles)
			assert.Equal(t, 100, s.HealthPercent())
		})
	}
}

func TestProjectileOnEdgeKept(t *testing.T) {
	s := newTestSession(t, 1)
	place(s, testHeight-1, 10, DirectionDown)
	place(s, 10, 1, DirectionLeft)

	s.Frame()
	snap := s.Snapshot()
	require.Len(t, snap.Projectiles, 2)
	assert.Equal(t, float64(testHeight), snap.Projectiles[0].Position.Top)
	assert.Equal(t, 0.0, snap.Projectiles[1].Position.Left)
}

func TestHealthClampsAndEndsOnce(t *testing.T) {
	s := newTestSession(t, 1)

	var overs []GameOverEvent
	s.SetEventHandler(func(e Event) {
		if ev, ok := e.(GameOverEvent); ok {
			overs = append(overs, ev)
		}
	})

	for iter := 0; iter < 6; iter++ {
		place(s, 260, 620, DirectionDown)
	}
	leftover := s.Snapshot()

	assert.True(t, s.Frame())
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.HealthPercent)
	assert.True(t, snap.GameOver)
	assert.Equal(t, CauseHealth.String(), snap.EndCause)

	// Five hits end the game; the sixth projectile is left where it was.
	require.Len(t, snap.Projectiles, 1)
	assert.Equal(t, leftover.Projectiles[5], snap.Projectiles[0])

	require.Len(t, overs, 1)
	assert.Equal(t, CauseHealth, overs[0].Cause)
	assert.Equal(t, uint64(1), overs[0].Frames)
}

func TestHealthNonIncreasing(t *testing.T) {
	s := newTestSession(t, 7)
	s.Start()

	prev := s.HealthPercent()
	for i := 0; i < 5000; i++ {
		if i%37 == 0 {
			s.Intent(IntentJump)
		}
		s.Tick(16 * time.Millisecond)

		hp := s.HealthPercent()
		require.GreaterOrEqual(t, hp, 0)
		require.LessOrEqual(t, hp, 100)
		require.LessOrEqual(t, hp, prev)
		prev = hp
	}
}

func TestMoveIntents(t *testing.T) {
	s := newTestSession(t, 1)

	require.True(t, s.Intent(IntentRight))
	snap := s.Snapshot()
	assert.Equal(t, 610.0, snap.Player.Position.Left)
	assert.Equal(t, ActionRight, snap.Player.Action)
	assert.Equal(t, 2, snap.Player.Frame)

	// Right has five frames: four more intents wrap back to 1.
	for iter := 0; iter < 4; iter++ {
		s.Intent(IntentRight)
	}
	snap = s.Snapshot()
	assert.Equal(t, 650.0, snap.Player.Position.Left)
	assert.Equal(t, 1, snap.Player.Frame)

	require.True(t, s.Intent(IntentLeft))
	snap = s.Snapshot()
	assert.Equal(t, 640.0, snap.Player.Position.Left)
	assert.Equal(t, ActionLeft, snap.Player.Action)
	assert.Equal(t, 2, snap.Player.Frame)

	assert.False(t, s.Intent(IntentNone))
}

func TestDuckClampsToBaseline(t *testing.T) {
	s := newTestSession(t, 1)

	require.True(t, s.Intent(IntentDuck))
	snap := s.Snapshot()
	assert.Equal(t, 250.0, snap.Player.Position.Top)
	assert.Equal(t, ActionDock, snap.Player.Action)
	assert.Equal(t, 2, snap.Player.Frame)

	require.True(t, s.Intent(IntentJump))
	require.True(t, s.Intent(IntentDuck))
	assert.Equal(t, 200.0, s.Snapshot().Player.Position.Top)
}

func TestJumpSequence(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	require.True(t, s.Intent(IntentJump))
	snap := s.Snapshot()
	assert.True(t, snap.Player.Jumping)
	assert.Equal(t, ActionJump, snap.Player.Action)
	assert.Equal(t, 110.0, snap.Player.Position.Top)

	assert.False(t, s.Intent(IntentJump), "jump must not re-enter")

	s.Advance(600 * time.Millisecond)
	snap = s.Snapshot()
	assert.True(t, snap.Player.Jumping)
	assert.Equal(t, 7, snap.Player.Frame)
	assert.Equal(t, 110.0, snap.Player.Position.Top)
	assert.False(t, snap.Player.Falling, "jumping players are exempt from falling")

	s.Advance(100 * time.Millisecond)
	snap = s.Snapshot()
	assert.False(t, snap.Player.Jumping)
	assert.Equal(t, ActionIdle, snap.Player.Action)
	assert.Equal(t, 1, snap.Player.Frame)
	assert.Equal(t, 250.0, snap.Player.Position.Top)

	s.Advance(100 * time.Millisecond)
	snap = s.Snapshot()
	assert.Equal(t, 250.0, snap.Player.Position.Top)
	assert.False(t, s.sched.Active(s.player.jumpTimer))
}

func TestJumpCeiling(t *testing.T) {
	s := newTestSession(t, 1)
	s.player.Pos.Top = 120

	require.True(t, s.Intent(IntentJump))
	assert.Equal(t, 50.0, s.Snapshot().Player.Position.Top)
}

func TestStaleRestoreIgnored(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	require.True(t, s.Intent(IntentJump))
	s.Advance(750 * time.Millisecond)
	require.False(t, s.Snapshot().Player.Jumping)

	// The first jump's 800ms restore must not pull the second jump down.
	require.True(t, s.Intent(IntentJump))
	s.Advance(50 * time.Millisecond)
	snap := s.Snapshot()
	assert.True(t, snap.Player.Jumping)
	assert.Equal(t, 110.0, snap.Player.Position.Top)

	s.Advance(700 * time.Millisecond)
	snap = s.Snapshot()
	assert.False(t, snap.Player.Jumping)
	assert.Equal(t, 250.0, snap.Player.Position.Top)
}

func TestFixedDelayRestoreBeforeLanding(t *testing.T) {
	cfg := config.DefaultDodgerConfig()
	cfg.Player.JumpFrameMS = 150 // Seven frames land at 1050ms, after the 800ms restore
	s := newTestSessionWith(t, cfg, 1)
	s.Start()

	require.True(t, s.Intent(IntentJump))
	require.Equal(t, 110.0, s.Snapshot().Player.Position.Top)

	s.Advance(799 * time.Millisecond)
	assert.Equal(t, 110.0, s.Snapshot().Player.Position.Top)

	s.Advance(time.Millisecond)
	snap := s.Snapshot()
	assert.Equal(t, 250.0, snap.Player.Position.Top, "restore pulls the player down")
	assert.True(t, snap.Player.Jumping, "the animation is still running")
	assert.Equal(t, ActionJump, snap.Player.Action)
	assert.False(t, s.Intent(IntentJump), "no new jump until the animation lands")

	s.Advance(250 * time.Millisecond)
	snap = s.Snapshot()
	assert.False(t, snap.Player.Jumping)
	assert.Equal(t, ActionIdle, snap.Player.Action)
	assert.Equal(t, 250.0, snap.Player.Position.Top)
	assert.False(t, snap.Player.Falling)
	assert.False(t, s.sched.Active(s.player.jumpTimer))
}

func TestFallOffPlatform(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	var fell, overs int
	s.SetEventHandler(func(e Event) {
		switch e.(type) {
		case FellEvent:
			fell++
		case GameOverEvent:
			overs++
		}
	})

	// 600 - 30*10 = 300; 300+120 is left of the platform at 520.
	for iter := 0; iter < 30; iter++ {
		require.True(t, s.Intent(IntentLeft))
	}

	s.Advance(100 * time.Millisecond)
	snap := s.Snapshot()
	assert.True(t, snap.Player.Falling)
	assert.Equal(t, 260.0, snap.Player.Position.Top)
	assert.False(t, s.Intent(IntentRight), "intents are refused while falling")
	assert.False(t, s.Intent(IntentJump))

	for i := 2; i <= 33; i++ {
		s.Advance(100 * time.Millisecond)
		require.Equal(t, 250.0+float64(i*10), s.Snapshot().Player.Position.Top)
	}

	snap = s.Snapshot()
	assert.Equal(t, 580.0, snap.Player.Position.Top)
	assert.False(t, snap.GameOver)

	s.Advance(100 * time.Millisecond)
	snap = s.Snapshot()
	assert.Equal(t, float64(testHeight-130), snap.Player.Position.Top)
	assert.True(t, snap.Player.Fallen)
	assert.False(t, snap.Player.Falling)
	assert.Equal(t, 0, snap.HealthPercent)
	assert.True(t, snap.GameOver)
	assert.Equal(t, CauseFall.String(), snap.EndCause)

	s.Advance(time.Second)
	assert.Equal(t, 1, fell)
	assert.Equal(t, 1, overs)
}

func TestJumpingPlayerDoesNotFall(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	for iter := 0; iter < 30; iter++ {
		s.Intent(IntentLeft)
	}
	require.True(t, s.Intent(IntentJump))

	s.Advance(600 * time.Millisecond)
	snap := s.Snapshot()
	assert.False(t, snap.Player.Falling)
	assert.Equal(t, 110.0, snap.Player.Position.Top)

	// Landing off the platform starts the fall on the next check.
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 250.0, s.Snapshot().Player.Position.Top)
	s.Advance(100 * time.Millisecond)
	snap = s.Snapshot()
	assert.True(t, snap.Player.Falling)
	assert.Equal(t, 260.0, snap.Player.Position.Top)
}

func TestPlatformCheckIdempotent(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	before := s.Snapshot().Player
	for iter := 0; iter < 14; iter++ {
		s.Advance(100 * time.Millisecond)
		assert.Equal(t, before, s.Snapshot().Player)
	}
}

func TestPlatformEdgesInclusive(t *testing.T) {
	tests := []struct {
		name string
		left float64
		want bool
	}{
		{"left edge touching", 400, true},
		{"just left of platform", 399, false},
		{"right edge touching", 845, true},
		{"just right of platform", 846, false},
		{"centered", 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1)
			s.player.Pos.Left = tt.left
			assert.Equal(t, tt.want, s.onPlatform())
		})
	}
}

func TestSpawnSchedule(t *testing.T) {
	s := newTestSession(t, 3)
	s.Start()

	s.Advance(1499 * time.Millisecond)
	assert.Empty(t, s.Snapshot().Projectiles)

	s.Advance(time.Millisecond)
	assert.Len(t, s.Snapshot().Projectiles, 1)

	s.Advance(3 * time.Second)
	snap := s.Snapshot()
	require.Len(t, snap.Projectiles, 3)
	for i, p := range snap.Projectiles {
		assert.Equal(t, uint64(i+1), p.ID)
	}
}

func TestGameOverIsAbsorbing(t *testing.T) {
	s := newTestSession(t, 5)
	s.Start()

	for iter := 0; iter < 5; iter++ {
		place(s, 260, 620, DirectionDown)
	}
	place(s, 10, 10, DirectionDown)
	s.Frame()
	require.True(t, s.GameOver())

	before := s.Snapshot()
	require.Len(t, before.Projectiles, 1)

	s.Advance(10 * time.Second)
	assert.False(t, s.Frame())
	assert.False(t, s.Intent(IntentLeft))
	assert.False(t, s.Intent(IntentJump))
	assert.False(t, s.Intent(IntentDuck))

	after := s.Snapshot()
	assert.Equal(t, before.Projectiles, after.Projectiles)
	assert.Equal(t, before.Player, after.Player)
	assert.Equal(t, before.Frame, after.Frame)
	assert.Equal(t, 0, after.HealthPercent)
	assert.False(t, s.sched.Active(s.spawnTimer))
	assert.False(t, s.sched.Active(s.fallTimer))
}

func TestPendingRestoreAfterGameOver(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	require.True(t, s.Intent(IntentJump))
	for iter := 0; iter < 5; iter++ {
		place(s, 100, 620, DirectionDown)
	}
	s.Frame()
	require.True(t, s.GameOver())

	// The 800ms restore is still pending and must change nothing.
	s.Advance(time.Second)
	assert.Equal(t, 110.0, s.Snapshot().Player.Position.Top)
}

func TestStopCancelsTimers(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()
	s.Stop()

	s.Advance(5 * time.Second)
	assert.Empty(t, s.Snapshot().Projectiles)
	assert.False(t, s.Intent(IntentLeft))
	assert.False(t, s.Frame())
	assert.Equal(t, 0, s.sched.Len())
}

func TestEventHandlerRunsUnlocked(t *testing.T) {
	s := newTestSession(t, 1)
	s.Start()

	var snaps []Snapshot
	s.SetEventHandler(func(e Event) {
		if _, ok := e.(SpawnedEvent); ok {
			snaps = append(snaps, s.Snapshot())
		}
	})

	s.Advance(3 * time.Second)
	require.Len(t, snaps, 2)
	assert.Len(t, snaps[1].Projectiles, 2)
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := newTestSession(t, 12345)
		s.Start()
		for i := 0; i < 3000; i++ {
			switch i % 50 {
			case 0:
				s.Intent(IntentJump)
			case 20:
				s.Intent(IntentRight)
			case 40:
				s.Intent(IntentLeft)
			}
			s.Tick(16 * time.Millisecond)
		}
		return s.Snapshot()
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestRunStopsOnContext(t *testing.T) {
	s := newTestSession(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	frames := 0
	err := s.Run(ctx, time.Millisecond, func(Snapshot) { frames++ })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, frames)
	assert.Equal(t, 0, s.sched.Len())
}

func TestRunReturnsOnGameOver(t *testing.T) {
	s := newTestSession(t, 1)
	for iter := 0; iter < 5; iter++ {
		place(s, 260, 620, DirectionDown)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var last Snapshot
	err := s.Run(ctx, time.Millisecond, func(snap Snapshot) { last = snap })
	require.NoError(t, err)
	assert.True(t, last.GameOver)
}

func TestRunRejectsBadInterval(t *testing.T) {
	s := newTestSession(t, 1)
	assert.Error(t, s.Run(context.Background(), 0, nil))
}
