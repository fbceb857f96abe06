package dodger

// onPlatform reports whether the player's footprint overlaps the platform.
// Edges are inclusive; the platform extends down from its top without limit.
func (s *Session) onPlatform() bool {
	pc := s.cfg.Player
	pf := s.cfg.Platform
	pos := s.player.Pos
	return pos.Top+pc.Height >= pf.Top &&
		pos.Left+pc.Width >= pf.Left &&
		pos.Left <= pf.Right
}

// checkPlatform is the falling monitor timer callback. Must be called with s.mu held.
func (s *Session) checkPlatform() {
	if s.health.GameOver() {
		return
	}

	p := &s.player
	if s.onPlatform() {
		p.Falling = false
		p.Fallen = false
		return
	}
	if p.Jumping {
		return
	}

	if !p.Falling {
		p.Falling = true
		s.emit(FallStartedEvent{Pos: p.Pos})
	}

	floor := s.viewport().Height - s.cfg.Player.Height
	if p.Pos.Top+s.cfg.Falling.Step >= floor {
		p.Pos.Top = floor
		p.Fallen = true
		p.Falling = false
		if s.health.Deplete(CauseFall) {
			s.emit(FellEvent{Pos: p.Pos})
			s.endGame()
		}
		return
	}
	p.Pos.Top += s.cfg.Falling.Step
}
