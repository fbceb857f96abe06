package dodger

// Snapshot is a read-only copy of everything a render adapter needs.
type Snapshot struct {
	Frame         uint64           `json:"frame" msgpack:"frame"`
	ElapsedMS     int64            `json:"elapsed_ms" msgpack:"elapsed_ms"`
	Player        PlayerView       `json:"player" msgpack:"player"`
	Projectiles   []ProjectileView `json:"projectiles" msgpack:"projectiles"`
	HealthPercent int              `json:"health_percent" msgpack:"health_percent"`
	GameOver      bool             `json:"game_over" msgpack:"game_over"`
	EndCause      string           `json:"end_cause,omitempty" msgpack:"end_cause,omitempty"`
	Viewport      Viewport         `json:"viewport" msgpack:"viewport"`
	Platform      PlatformView     `json:"platform" msgpack:"platform"`
}

// PlayerView is the player part of a snapshot. Action and Frame together
// select the sprite.
type PlayerView struct {
	Position Point   `json:"position" msgpack:"position"`
	Width    float64 `json:"width" msgpack:"width"`
	Height   float64 `json:"height" msgpack:"height"`
	Action   Action  `json:"action" msgpack:"action"`
	Frame    int     `json:"frame" msgpack:"frame"`
	Jumping  bool    `json:"jumping" msgpack:"jumping"`
	Falling  bool    `json:"falling" msgpack:"falling"`
	Fallen   bool    `json:"fallen" msgpack:"fallen"`
}

// ProjectileView is one visible projectile.
type ProjectileView struct {
	ID       uint64  `json:"id" msgpack:"id"`
	Position Point   `json:"position" msgpack:"position"`
	Size     float64 `json:"size" msgpack:"size"`
	Kind     Kind    `json:"kind" msgpack:"kind"`
}

// PlatformView is the platform region.
type PlatformView struct {
	Left  float64 `json:"left" msgpack:"left"`
	Right float64 `json:"right" msgpack:"right"`
	Top   float64 `json:"top" msgpack:"top"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.player
	snap := Snapshot{
		Frame:     s.frame,
		ElapsedMS: s.sched.Now().Milliseconds(),
		Player: PlayerView{
			Position: p.Pos,
			Width:    s.cfg.Player.Width,
			Height:   s.cfg.Player.Height,
			Action:   p.Action,
			Frame:    p.Frame(),
			Jumping:  p.Jumping,
			Falling:  p.Falling,
			Fallen:   p.Fallen,
		},
		Projectiles:   make([]ProjectileView, len(s.projectiles)),
		HealthPercent: s.health.Percent(),
		GameOver:      s.health.GameOver(),
		Viewport:      s.viewport(),
		Platform: PlatformView{
			Left:  s.cfg.Platform.Left,
			Right: s.cfg.Platform.Right,
			Top:   s.cfg.Platform.Top,
		},
	}
	if snap.GameOver {
		snap.EndCause = s.health.Cause().String()
	}
	for i, pr := range s.projectiles {
		snap.Projectiles[i] = ProjectileView{
			ID:       pr.ID,
			Position: pr.Pos,
			Size:     s.cfg.Projectiles.Size,
			Kind:     pr.Kind,
		}
	}
	return snap
}
